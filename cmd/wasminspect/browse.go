package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func browseCmd() *cli.Command {
	var (
		strictSize  bool
		skipUnknown bool
	)

	return &cli.Command{
		Name:      "browse",
		Usage:     "Browse decoded functions interactively",
		ArgsUsage: "<file>",
		Flags:     decodeFlags(&strictSize, &skipUnknown, false),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			s, err := newSession(cmd, formatText, strictSize, skipUnknown)
			if err != nil {
				return err
			}
			defer s.close()

			p := tea.NewProgram(newBrowseModel(s, path), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
}

type browseModel struct {
	err      error
	session  *session
	filename string
	funcs    []funcEntry
	visible  []int
	filter   textinput.Model
	selected int
	loaded   bool
}

type loadedMsg struct {
	err   error
	funcs []funcEntry
}

func newBrowseModel(s *session, filename string) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "filter by signature"
	ti.Prompt = "/ "
	ti.Width = 40
	return &browseModel{
		session:  s,
		filename: filename,
		filter:   ti,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadModule
}

func (m *browseModel) loadModule() tea.Msg {
	mod, _, err := m.session.decodeFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{funcs: newReport(m.filename, mod).Functions}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "enter":
				m.filter.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			return m, m.filter.Focus()

		case "esc":
			m.filter.SetValue("")
			m.applyFilter()
		}

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.funcs = msg.funcs
		m.applyFilter()
	}

	return m, nil
}

// applyFilter recomputes the visible rows and keeps the selection in range.
func (m *browseModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, f := range m.funcs {
		if query == "" || strings.Contains(strings.ToLower(entryText(f)), query) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if !m.loaded {
		return "Decoding module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("wasminspect"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.filter.Focused() || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(helpStyle.Render("no functions"))
		b.WriteString("\n")
	}
	for row, idx := range m.visible {
		line := formatEntry(m.funcs[idx])
		if row == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d • ↑/↓ select • / filter • esc clear • q quit",
		len(m.visible), len(m.funcs))))

	return b.String()
}

func formatEntry(f funcEntry) string {
	return fmt.Sprintf("func %d  type %d  %s", f.Index, f.TypeIndex, typeStyle.Render(entrySignature(f)))
}

// entryText is the unstyled row used for filtering.
func entryText(f funcEntry) string {
	return fmt.Sprintf("func %d  type %d  %s", f.Index, f.TypeIndex, entrySignature(f))
}

func entrySignature(f funcEntry) string {
	if f.Signature == "" {
		return "<invalid type index>"
	}
	return f.Signature
}
