package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/gitter-session/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export writes a heading for the room followed by its messages
func (e *MarkdownExporter) Export(transcript *internal.Transcript, w io.Writer) error {
	room := transcript.Room

	_, _ = fmt.Fprintf(w, "# %s\n\n", room.Name)

	if room.Topic != "" {
		_, _ = fmt.Fprintf(w, "> %s\n\n", room.Topic)
	}
	if room.OneToOne {
		_, _ = fmt.Fprintf(w, "**Conversation:** one-to-one  \n")
	}
	if room.URL != "" {
		_, _ = fmt.Fprintf(w, "**URL:** %s  \n", room.URL)
	}
	if transcript.ExportedAt != "" {
		_, _ = fmt.Fprintf(w, "**Exported:** %s  \n", transcript.ExportedAt)
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(transcript.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range transcript.Messages {
		sent := ""
		if msg.Sent != "" {
			sent = fmt.Sprintf(" (%s)", msg.Sent)
		}

		_, _ = fmt.Fprintf(w, "**@%s:**%s\n\n%s\n\n", msg.FromUser.Username, sent, escapeMarkdown(msg.Text))

		if i < len(transcript.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown escapes bold markers outside fenced code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "```"):
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		case inCodeBlock:
			result = append(result, line)
		default:
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
