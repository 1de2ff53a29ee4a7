package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/aot-runtime/host"
	"github.com/wippyai/aot-runtime/loader"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	moduleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectModule modelState = iota
	stateInputName
	stateShowResult
)

type entryInfo struct {
	name string
	kind string
}

type interactiveModel struct {
	err      error
	ldr      *loader.Context
	host     *host.Host
	entries  []entryInfo
	input    textinput.Model
	result   string
	selected int
	state    modelState
}

func newInteractiveModel(c *loader.Context, h *host.Host) *interactiveModel {
	var entries []entryInfo
	for _, e := range c.Table().Entries() {
		kind := e.Payload.Kind()
		if e.Package {
			kind += ", package"
		}
		entries = append(entries, entryInfo{name: e.Name, kind: kind})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	ti := textinput.New()
	ti.Placeholder = "dotted.module.name"
	ti.Prompt = "import "
	ti.Width = 40

	return &interactiveModel{
		ldr:     c,
		host:    h,
		entries: entries,
		input:   ti,
		state:   stateSelectModule,
	}
}

type importResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) importModule(name string) tea.Cmd {
	return func() tea.Msg {
		mod, err := m.host.ImportModule(context.Background(), name)
		if err != nil {
			return importResultMsg{err: err}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "<module '%s' from '%s'>", mod.Name(), mod.File())
		if sp := mod.SearchPath(); sp != nil {
			fmt.Fprintf(&b, "\nsearch path: %v", sp)
		}
		fmt.Fprintf(&b, "\ncached modules: %d", m.host.Cache().Len())
		return importResultMsg{result: b.String()}
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputName {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectModule && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectModule && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "n":
			if m.state == stateSelectModule {
				m.state = stateInputName
				m.input.SetValue("")
				m.input.Focus()
				return m, textinput.Blink
			}

		case "enter":
			switch m.state {
			case stateSelectModule:
				if len(m.entries) > 0 {
					return m, m.importModule(m.entries[m.selected].name)
				}
			case stateInputName:
				name := strings.TrimSpace(m.input.Value())
				m.input.Blur()
				if name == "" {
					m.state = stateSelectModule
					return m, nil
				}
				return m, m.importModule(name)
			case stateShowResult:
				m.state = stateSelectModule
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputName:
				m.input.Blur()
				m.state = stateSelectModule
			case stateShowResult:
				m.state = stateSelectModule
				m.result = ""
				m.err = nil
			}
		}
	case importResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputName {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Module Loader"))
	fmt.Fprintf(&b, " %d descriptors\n\n", len(m.entries))

	switch m.state {
	case stateSelectModule:
		b.WriteString("Select a module to import:\n\n")
		for i, e := range m.entries {
			line := e.name + " " + kindStyle.Render("("+e.kind+")")
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + moduleStyle.Render(e.name) + " " + kindStyle.Render("("+e.kind+")"))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter import • n import by name • q quit"))

	case stateInputName:
		b.WriteString("Import by name:\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter import • esc back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(c *loader.Context, h *host.Host) error {
	p := tea.NewProgram(newInteractiveModel(c, h), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
