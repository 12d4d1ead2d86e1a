// Package tui is the terminal front end of the sync engine. It drives the
// presenter on a fixed tick and feeds room switches and composed text back
// to the engine.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iksnae/gitter-session/internal"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

const chromeHeight = 4 // header, status, input, help

type tickMsg time.Time

type notificationMsg internal.Notification

// Queue accepts a value without blocking; Push reports false once the
// engine no longer accepts values
type Queue interface {
	Push(string) bool
}

// Options wires a Model to a running engine
type Options struct {
	Presenter     *internal.Presenter
	Catalog       *internal.RoomCatalog
	RoomRequests  Queue
	Outgoing      Queue
	Notifications <-chan internal.Notification
	TickInterval  time.Duration
	ActiveRoom    string
}

// Model is the bubbletea model of the chat window
type Model struct {
	presenter     *internal.Presenter
	catalog       *internal.RoomCatalog
	roomRequests  Queue
	outgoing      Queue
	notifications <-chan internal.Notification
	interval      time.Duration

	viewport viewport.Model
	input    textinput.Model

	lines       []string
	activeRoom  string
	pendingRoom string // last requested room not yet shown
	status      string
	width       int
	height      int
	closed      bool
}

// New creates a Model. TickInterval defaults to one second.
func New(opts Options) Model {
	in := textinput.New()
	in.Placeholder = "Type a message, /join <room>, /rooms or /quit"
	in.Prompt = "> "
	in.Focus()
	in.CharLimit = 0
	in.Width = 60

	interval := opts.TickInterval
	if interval <= 0 {
		interval = internal.DefaultTickInterval
	}

	return Model{
		presenter:     opts.Presenter,
		catalog:       opts.Catalog,
		roomRequests:  opts.RoomRequests,
		outgoing:      opts.Outgoing,
		notifications: opts.Notifications,
		interval:      interval,
		viewport:      viewport.New(80, 20),
		input:         in,
		activeRoom:    opts.ActiveRoom,
	}
}

// Init starts the presenter tick and the notification listener
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.interval), waitForNotification(m.notifications), textinput.Blink)
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForNotification(ch <-chan internal.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg(n)
	}
}

// Update handles ticks, notifications, window resizes and key presses
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.refresh()
		return m, nil

	case tickMsg:
		return m.onTick()

	case notificationMsg:
		m.status = msg.Body
		return m, waitForNotification(m.notifications)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			if room, ok := m.catalog.Next(m.targetRoom()); ok {
				m.requestRoom(room)
			}
			return m, nil
		case "ctrl+p":
			if room, ok := m.catalog.Prev(m.targetRoom()); ok {
				m.requestRoom(room)
			}
			return m, nil
		case "enter":
			return m.submit()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) onTick() (tea.Model, tea.Cmd) {
	result := m.presenter.Tick()
	if result.Closed {
		m.closed = true
		m.status = "Sync stopped"
		return m, nil
	}

	if result.Snapshot != nil {
		if result.RoomChanged {
			m.lines = nil
			m.activeRoom = result.Snapshot.RoomID
		}
		if m.pendingRoom == m.activeRoom {
			m.pendingRoom = ""
		}
		for _, msg := range result.Snapshot.Messages {
			m.lines = append(m.lines, internal.FormatMessage(msg, m.presenter.User()))
		}
		m.refresh()
	}

	return m, tick(m.interval)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if text == "" {
		return m, nil
	}

	if !strings.HasPrefix(text, "/") {
		if m.outgoing.Push(text) {
			m.status = ""
		} else {
			m.status = "Sync stopped, message not sent"
		}
		return m, nil
	}

	cmd, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/quit":
		return m, tea.Quit
	case "/rooms":
		for _, room := range m.catalog.Rooms() {
			m.lines = append(m.lines, internal.FormatRoom(room, room.ID == m.activeRoom))
		}
		m.refresh()
	case "/join":
		room, err := m.catalog.Find(arg)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.requestRoom(room)
	default:
		m.status = fmt.Sprintf("Unknown command %s", cmd)
	}
	return m, nil
}

func (m *Model) requestRoom(room internal.Room) {
	if !m.roomRequests.Push(room.ID) {
		m.status = "Sync stopped, cannot switch room"
		return
	}
	m.pendingRoom = room.ID
	m.status = "Switching to " + room.Name
}

// targetRoom is where the user is headed: the last requested room until its
// first snapshot arrives, then the active room
func (m Model) targetRoom() string {
	if m.pendingRoom != "" {
		return m.pendingRoom
	}
	return m.activeRoom
}

func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// View renders the header, message pane, status line and input
func (m Model) View() string {
	title := m.activeRoom
	if room, ok := m.catalog.Get(m.activeRoom); ok {
		title = room.Name
	}
	header := headerStyle.Render(title)
	if user := m.presenter.User(); user.Username != "" {
		header += " " + userStyle.Render("@"+user.Username)
	}

	return strings.Join([]string{
		header,
		m.viewport.View(),
		statusStyle.Render(m.status),
		m.input.View(),
		helpStyle.Render("ctrl+n/ctrl+p switch room · pgup/pgdown scroll · ctrl+c quit"),
	}, "\n")
}

// Lines returns the rendered message pane, for tests and log dumps
func (m Model) Lines() []string {
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// ActiveRoom returns the room shown in the message pane
func (m Model) ActiveRoom() string {
	return m.activeRoom
}

// Status returns the status line
func (m Model) Status() string {
	return m.status
}

// Closed reports whether the engine's snapshot stream has ended
func (m Model) Closed() bool {
	return m.closed
}
