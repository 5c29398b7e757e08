package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deeklead/apiary/internal/events"
)

// maxStreamEvents caps the retained event history.
const maxStreamEvents = 500

var titleCaser = cases.Title(language.English)

// Model is the bubbletea model for the watch TUI.
type Model struct {
	source   EventSource
	honeyCap int

	stream    []events.Event
	run       string
	honey     int
	returns   int
	raidsWon  int
	raidsLost int
	closed    bool

	// UI state
	keys     KeyMap
	help     help.Model
	showHelp bool
	paused   bool
	width    int
	height   int
}

// New creates a watch model reading from source. honeyCap sizes the
// honey gauge.
func New(source EventSource, honeyCap int) Model {
	return Model{
		source:   source,
		honeyCap: honeyCap,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		stream:   make([]events.Event, 0, maxStreamEvents),
	}
}

// eventMsg carries one event from the source.
type eventMsg events.Event

// sourceClosedMsg signals that the source has no more events.
type sourceClosedMsg struct{}

// Init starts listening for events.
func (m Model) Init() tea.Cmd {
	return m.waitForEvent
}

// waitForEvent blocks on the source channel.
func (m Model) waitForEvent() tea.Msg {
	e, ok := <-m.source.Events()
	if !ok {
		return sourceClosedMsg{}
	}
	return eventMsg(e)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case sourceClosedMsg:
		m.closed = true
		return m, nil

	case eventMsg:
		m.ingest(events.Event(msg))
		return m, m.waitForEvent

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.stream = m.stream[:0]
			return m, nil
		}
	}

	return m, nil
}

// ingest folds one event into the tallies and the stream.
func (m *Model) ingest(e events.Event) {
	if e.Run != "" {
		m.run = e.Run
	}

	switch e.Kind {
	case events.KindReturn:
		m.returns++
		if h, ok := payloadInt(e.Payload, "honey"); ok {
			m.honey = h
		}
	case events.KindRaidSuccess:
		m.raidsWon++
		m.honey = 0
	case events.KindRaidFailure:
		m.raidsLost++
	}

	if m.paused {
		return
	}
	m.stream = append(m.stream, e)
	if len(m.stream) > maxStreamEvents {
		m.stream = m.stream[len(m.stream)-maxStreamEvents:]
	}
}

// View renders the header, the event stream, and help.
func (m Model) View() string {
	var b strings.Builder

	title := headerStyle.Render("hv watch")
	if m.run != "" {
		title += " " + runStyle.Render("run "+shortRun(m.run))
	}
	if m.paused {
		title += " " + pausedStyle.Render("[paused]")
	}
	if m.closed {
		title += " " + runStyle.Render("(stream ended)")
	}
	b.WriteString(title)
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf(" honey %s %d/%d   returns %d   raids won %d lost %d\n",
		m.renderGauge(), m.honey, m.honeyCap, m.returns, m.raidsWon, m.raidsLost))

	b.WriteString(streamPanelStyle.Width(max(20, m.width-2)).Render(m.renderStream()))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return b.String()
}

// renderGauge draws the honey level bar.
func (m Model) renderGauge() string {
	const width = 20
	if m.honeyCap <= 0 {
		return ""
	}
	filled := m.honey * width / m.honeyCap
	if filled > width {
		filled = width
	}
	return gaugeFullStyle.Render(strings.Repeat("█", filled)) +
		gaugeEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// renderStream renders the most recent events that fit the window.
func (m Model) renderStream() string {
	rows := m.height - 6
	if rows < 3 {
		rows = 3
	}
	start := 0
	if len(m.stream) > rows {
		start = len(m.stream) - rows
	}

	if len(m.stream) == 0 {
		return runStyle.Render("waiting for events...")
	}

	lines := make([]string, 0, rows)
	for _, e := range m.stream[start:] {
		lines = append(lines, renderEvent(e))
	}
	return strings.Join(lines, "\n")
}

// renderEvent renders a single stream line.
func renderEvent(e events.Event) string {
	ts := e.Timestamp
	if len(ts) > 19 {
		ts = ts[11:19] // HH:MM:SS out of RFC3339
	}

	label := titleCaser.String(strings.ReplaceAll(string(e.Kind), "_", " "))
	return fmt.Sprintf("%s %s %s%s",
		timestampStyle.Render(ts),
		kindStyle(e.Kind).Render(fmt.Sprintf("%-13s", label)),
		actorStyle.Render(e.Actor),
		renderPayload(e.Payload))
}

// kindStyle picks the style for an event kind.
func kindStyle(k events.Kind) lipgloss.Style {
	switch k {
	case events.KindRelease:
		return kindReleaseStyle
	case events.KindReturn:
		return kindReturnStyle
	case events.KindRaidSuccess:
		return kindRaidWinStyle
	case events.KindRaidFailure:
		return kindRaidLossStyle
	case events.KindRecoveryStart, events.KindRecoveryEnd:
		return kindRecoveryStyle
	default:
		return kindShutdownStyle
	}
}

// renderPayload renders a compact key=value suffix.
func renderPayload(p map[string]interface{}) string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p))
	for _, k := range []string{"bee", "honey", "present", "hunt", "recovery"} {
		if v, ok := p[k]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return runStyle.Render(" " + strings.Join(parts, " "))
}

// payloadInt pulls an int out of a decoded JSON payload.
func payloadInt(p map[string]interface{}, key string) (int, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

// shortRun abbreviates a run UUID for the header.
func shortRun(run string) string {
	if len(run) > 8 {
		return run[:8]
	}
	return run
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
