package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	selfStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	mentionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	sentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	roomNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	conversationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Italic(true)

	unreadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// FormatMessage renders a message as "@author: text", highlighting messages
// that mention self
func FormatMessage(msg Message, self User) string {
	style := authorStyle
	if self.Username != "" && msg.FromUser.Username == self.Username {
		style = selfStyle
	}

	var b strings.Builder
	if t, ok := msg.SentAt(); ok {
		b.WriteString(sentStyle.Render(t.Local().Format("15:04")))
		b.WriteString(" ")
	}
	b.WriteString(style.Render("@" + msg.FromUser.Username))
	b.WriteString(": ")
	b.WriteString(msg.Text)
	if ShouldNotify(msg, self) {
		b.WriteString(" ")
		b.WriteString(mentionStyle.Render("●"))
	}
	return b.String()
}

// FormatRoom renders a room for a room list
func FormatRoom(room Room, active bool) string {
	marker := "  "
	if active {
		marker = selfStyle.Render("▸ ")
	}

	name := roomNameStyle.Render(room.Name)
	if room.OneToOne {
		name = conversationStyle.Render(room.Name)
	}
	if room.Mentions > 0 {
		name += " " + unreadStyle.Render(fmt.Sprintf("@%d", room.Mentions))
	}
	return marker + name
}
