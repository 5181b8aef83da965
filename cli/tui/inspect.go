package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/fillwire/cli/reader"
)

// InspectModel shows one response and lets the user step through its
// datasets.
type InspectModel struct {
	view     *reader.ResponseView
	selected int
	width    int
	height   int
	quitting bool
}

// NewInspectModel creates a new inspect model. data must be a
// *reader.ResponseView.
func NewInspectModel(data any) InspectModel {
	view, _ := data.(*reader.ResponseView)
	return InspectModel{view: view}
}

// Init implements tea.Model.
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			if m.view != nil && m.selected < len(m.view.Datasets)-1 {
				m.selected++
			}
		case key.Matches(msg, keys.Prev):
			if m.selected > 0 {
				m.selected--
			}
		}
	}

	return m, nil
}

// Selected returns the index of the highlighted dataset.
func (m InspectModel) Selected() int {
	return m.selected
}

// View implements tea.Model.
func (m InspectModel) View() string {
	if m.quitting {
		return ""
	}
	help := HelpStyle.Render("↑/↓ select dataset • q quit")
	return m.content() + "\n" + help
}

func (m InspectModel) static() string {
	return lipgloss.NewStyle().Padding(1, 2).Render(m.content())
}

func (m InspectModel) content() string {
	v := m.view
	if v == nil {
		return "Invalid data type for inspect_response"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Fill Response"))
	b.WriteString("\n\n")

	row(&b, "Datasets", optional(v.Datasets != nil, fmt.Sprintf("%d", len(v.Datasets))))
	if v.SaveInfo != nil {
		row(&b, "Save Info", ValueStyle.Render(v.SaveInfo.Types))
		row(&b, "  Required", idList(v.SaveInfo.Required))
		row(&b, "  Optional", idList(v.SaveInfo.Optional))
	} else {
		row(&b, "Save Info", absent())
	}
	if v.ClientState != nil {
		row(&b, "Client State", ValueStyle.Render(fmt.Sprintf("%d bytes", v.ClientState.Bytes)))
	} else {
		row(&b, "Client State", absent())
	}
	if a := v.Authentication; a != nil {
		row(&b, "Auth", WarningStyle.Render(fmt.Sprintf("%s (%s)", a.Target, a.Layout)))
		row(&b, "  Field IDs", idList(a.FieldIDs))
	} else {
		row(&b, "Auth", absent())
	}
	row(&b, "Ignored IDs", idList(v.IgnoredIDs))

	if len(v.Datasets) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Datasets"))
		b.WriteString("\n")
		for i, ds := range v.Datasets {
			line := fmt.Sprintf("%s (%d fields)", ds.ID, len(ds.Fields))
			if i == m.selected {
				b.WriteString(SelectedStyle.Render("▸ " + line))
			} else {
				b.WriteString("  " + ValueStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.renderDataset(v.Datasets[m.selected]))
	}

	return BoxStyle.Render(b.String())
}

func (m InspectModel) renderDataset(ds reader.DatasetView) string {
	var b strings.Builder
	row(&b, "ID", ValueStyle.Render(ds.ID))
	row(&b, "Presentation", optional(ds.Presentation != "", ds.Presentation))
	if ds.Authenticated {
		row(&b, "Auth", WarningStyle.Render("gated"))
	}
	for _, f := range ds.Fields {
		value := f.Value
		if f.Presentation != "" {
			value += " [" + f.Presentation + "]"
		}
		row(&b, "  "+f.Field, ValueStyle.Render(value))
	}
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", LabelStyle.Render(label+":"), value)
}

func absent() string {
	return MutedStyle.Render("-")
}

func optional(present bool, value string) string {
	if !present {
		return absent()
	}
	return ValueStyle.Render(value)
}

func idList(ids []string) string {
	switch {
	case ids == nil:
		return absent()
	case len(ids) == 0:
		return MutedStyle.Render("(empty)")
	default:
		return ValueStyle.Render(strings.Join(ids, ", "))
	}
}

// keyMap defines key bindings.
type keyMap struct {
	Quit key.Binding
	Next key.Binding
	Prev key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Next: key.NewBinding(
		key.WithKeys("down", "j", "tab"),
		key.WithHelp("↓", "next dataset"),
	),
	Prev: key.NewBinding(
		key.WithKeys("up", "k", "shift+tab"),
		key.WithHelp("↑", "previous dataset"),
	),
}

// RunInspectTUI runs the inspect TUI.
func RunInspectTUI(data any) error {
	if _, ok := data.(*reader.ResponseView); !ok {
		return fmt.Errorf("inspect TUI needs a response view, got %T", data)
	}
	p := tea.NewProgram(NewInspectModel(data), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
