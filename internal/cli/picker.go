package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"theograph/internal/graph"
)

// Styles for the interactive picker
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// candidateItem is one resolution candidate in the picker list
type candidateItem struct {
	candidate graph.Candidate
}

func (i candidateItem) Title() string { return i.candidate.Name }
func (i candidateItem) Description() string {
	return fmt.Sprintf("id: %s · matched via %s · score %.2f", i.candidate.ID, i.candidate.Via, i.candidate.Score)
}
func (i candidateItem) FilterValue() string { return i.candidate.Name }

// pickerKeyMap holds the picker key bindings
type pickerKeyMap struct {
	confirm key.Binding
	abort   key.Binding
}

func newPickerKeyMap() *pickerKeyMap {
	return &pickerKeyMap{
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		abort: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc/q", "cancel"),
		),
	}
}

// pickerModel is the model for single-candidate selection
type pickerModel struct {
	list     list.Model
	items    []candidateItem
	choice   string
	quitting bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		keys := newPickerKeyMap()
		switch {
		case key.Matches(msg, keys.confirm):
			idx := m.list.Index()
			if idx >= 0 && idx < len(m.items) {
				m.choice = m.items[idx].candidate.ID
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.abort):
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("\n[enter] select • [esc] cancel")
	return fmt.Sprintf("%s%s", m.list.View(), help)
}

// PickCandidate shows an interactive list of resolution candidates and
// returns the chosen person id, or empty if cancelled.
func PickCandidate(name string, candidates []graph.Candidate) (string, error) {
	items := make([]candidateItem, len(candidates))
	listItems := make([]list.Item, len(candidates))
	for i, c := range candidates {
		items[i] = candidateItem{candidate: c}
		listItems[i] = items[i]
	}

	const defaultHeight = 14
	l := list.New(listItems, list.NewDefaultDelegate(), 0, defaultHeight)
	l.Title = fmt.Sprintf("%q matches several people", name)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	m := pickerModel{list: l, items: items}

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return "", err
	}

	return result.(pickerModel).choice, nil
}
