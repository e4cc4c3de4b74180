package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/bbgo/barretenberg"
	"github.com/wippyai/bbgo/bindgen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err       error
	session   *session
	open      func() (*session, error)
	filename  string
	initFuncs string
	result    []string
	inputs    []textinput.Model
	selected  int
	focusIdx  int
	state     modelState
}

type loadedMsg struct {
	err     error
	session *session
}

type callResultMsg struct {
	err    error
	result []string
}

func newInteractiveModel(filename, initFuncs string, open func() (*session, error)) *interactiveModel {
	return &interactiveModel{
		filename:  filename,
		initFuncs: initFuncs,
		open:      open,
		state:     stateSelectFunc,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

func (m *interactiveModel) load() tea.Msg {
	s, err := m.open()
	if err != nil {
		return loadedMsg{err: err}
	}
	if err := s.callAll(context.Background(), m.initFuncs); err != nil {
		_ = s.close(context.Background())
		return loadedMsg{err: err}
	}
	return loadedMsg{session: s}
}

func (m *interactiveModel) methods() []bindgen.Method {
	if m.session == nil {
		return nil
	}
	return m.session.methods
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.shutdown()
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				m.shutdown()
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.methods())-1 {
				m.selected++
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				if len(m.methods()) == 0 {
					return m, nil
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callFunction
				}
				m.state = stateInputArgs
				return m, nil

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = nil
				m.err = nil
				return m, nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = nil
				m.err = nil
			}
			return m, nil
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session = msg.session

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) shutdown() {
	if m.session != nil {
		_ = m.session.close(context.Background())
		m.session = nil
	}
}

func (m *interactiveModel) prepareInputs() {
	f := m.methods()[m.selected]
	m.inputs = make([]textinput.Model, len(f.Params))
	for i, p := range f.Params {
		ti := textinput.New()
		ti.Placeholder = p.Kind.String()
		ti.Prompt = p.Name + ": "
		ti.Width = 66
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callFunction() tea.Msg {
	if m.session == nil {
		return callResultMsg{err: fmt.Errorf("module not loaded")}
	}
	f := m.methods()[m.selected]
	texts := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		texts[i] = input.Value()
	}
	out, err := m.session.call(context.Background(), f, texts)
	return callResultMsg{result: out, err: err}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.session == nil {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("bbrun"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function to call:\n\n")
		for i, f := range m.methods() {
			line := m.formatFunc(f)
			switch {
			case i == m.selected:
				b.WriteString(selectedStyle.Render("> " + line))
			case !m.session.available(f):
				b.WriteString("  " + missingStyle.Render(line))
			default:
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		f := m.methods()[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(f.Export)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(kindStyle.Render(f.Params[i].Kind.String()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		f := m.methods()[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(f.Export)))
		switch {
		case m.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		case len(m.result) == 0:
			b.WriteString(resultStyle.Render("ok"))
		default:
			b.WriteString(resultStyle.Render(strings.Join(m.result, "\n")))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatFunc(f bindgen.Method) string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + ": " + kindStyle.Render(p.Kind.String())
	}
	results := make([]string, len(f.Results))
	for i, r := range f.Results {
		results[i] = kindStyle.Render(r.Kind.String())
	}
	out := funcStyle.Render(f.Export) + "(" + strings.Join(params, ", ") + ")"
	if len(results) > 0 {
		out += " -> " + strings.Join(results, ", ")
	}
	return out
}

func runInteractive(filename, schemaFile, initFuncs string, opts []barretenberg.Option) error {
	open := func() (*session, error) {
		return openSession(context.Background(), filename, schemaFile, opts...)
	}
	p := tea.NewProgram(newInteractiveModel(filename, initFuncs, open), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
