package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// demoEntry is one row of the interactive picker. Name doubles as the
// subcommand to run.
type demoEntry struct {
	Name string
	Desc string
}

var demoEntries = []demoEntry{
	{Name: "plot", Desc: "Frucht graph, static scene"},
	{Name: "diffusion", Desc: "color diffusion animation"},
	{Name: "life", Desc: "Game of Life on a grid"},
}

// DemoListModel is the bubbletea model for the demo picker shown when
// graph3d runs without a subcommand.
type DemoListModel struct {
	Entries  []demoEntry
	Cursor   int
	Selected string
}

// NewDemoListModel creates a new demo picker model.
func NewDemoListModel() DemoListModel {
	return DemoListModel{Entries: demoEntries}
}

func (m DemoListModel) Init() tea.Cmd {
	return nil
}

func (m DemoListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Entries[m.Cursor].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DemoListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pick a demo"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, e := range m.Entries {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-12s %s", cursor, e.Name, listDimStyle.Render(e.Desc))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// runPicker shows the demo picker and runs the chosen subcommand with its
// default flags.
func (c *CLI) runPicker(root *cobra.Command) error {
	p := tea.NewProgram(NewDemoListModel())
	out, err := p.Run()
	if err != nil {
		return err
	}
	final, ok := out.(DemoListModel)
	if !ok || final.Selected == "" {
		return nil
	}
	for _, sub := range root.Commands() {
		if sub.Name() == final.Selected {
			sub.SetContext(root.Context())
			return sub.RunE(sub, nil)
		}
	}
	return nil
}
