package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/fillwire/metrics"
)

// StatsModel shows decode counters as stat boxes.
type StatsModel struct {
	snap     *metrics.Snapshot
	width    int
	height   int
	quitting bool
}

// NewStatsModel creates a new stats model. data must be a metrics.Snapshot
// or a pointer to one.
func NewStatsModel(data any) StatsModel {
	switch s := data.(type) {
	case metrics.Snapshot:
		return StatsModel{snap: &s}
	case *metrics.Snapshot:
		return StatsModel{snap: s}
	default:
		return StatsModel{}
	}
}

// Init implements tea.Model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}
	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return m.content() + "\n" + help
}

func (m StatsModel) static() string {
	return lipgloss.NewStyle().Padding(1, 2).Render(m.content())
}

func (m StatsModel) content() string {
	s := m.snap
	if s == nil {
		return "Invalid data type for stats_decode"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Decode Statistics"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statBox("Frames", s.FramesRead, false),
		statBox("Decoded", s.ResponsesDecoded, false),
		statBox("Bytes", s.BytesDecoded, false),
	))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statBox("Malformed", s.DecodeMalformed, true),
		statBox("Rejected", s.DecodeRejected, true),
		statBox("Truncated", s.FramesTruncated, true),
		statBox("Too Large", s.FramesTooLarge, true),
	))

	if s.Command != "" {
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render(fmt.Sprintf("%s %s", s.Tool, s.Command)))
	}
	return b.String()
}

func statBox(label string, n int64, failure bool) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		StatLabelStyle.Render(label),
		CounterStyle(failure, n).Render(fmt.Sprintf("%d", n)),
	)
	return StatBoxStyle.Render(content)
}

// RunStatsTUI runs the stats TUI.
func RunStatsTUI(data any) error {
	model := NewStatsModel(data)
	if model.snap == nil {
		return fmt.Errorf("stats TUI needs a metrics snapshot, got %T", data)
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
