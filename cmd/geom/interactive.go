package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	geoengine "github.com/sciagent/geo-engine"
	"github.com/sciagent/geo-engine/bridge"
	"github.com/sciagent/geo-engine/registry"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	hintStyle = lipgloss.NewStyle().
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

type interactiveModel struct {
	err      error
	cfg      bridge.Config
	eng      *bridge.Engine
	result   string
	ops      []opInfo
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type opInfo struct {
	name   string
	params []paramInfo
	call   func(ctx context.Context, e *bridge.Engine, args []string) (string, error)
}

type paramInfo struct {
	name string
	hint string
}

type modelState int

const (
	stateSelectOp modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(cfg bridge.Config) *interactiveModel {
	return &interactiveModel{
		cfg:   cfg,
		ops:   operations(),
		state: stateSelectOp,
	}
}

type loadedMsg struct {
	err error
	eng *bridge.Engine
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadEngine
}

func (m *interactiveModel) loadEngine() tea.Msg {
	eng, err := bridge.New(context.Background(), m.cfg)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{eng: eng}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateInputArgs && msg.String() == "q" {
				break
			}
			if m.eng != nil {
				m.eng.Close(context.Background())
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectOp && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectOp && m.selected < len(m.ops)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectOp:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callOperation
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callOperation

			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectOp
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.eng = msg.eng

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

func (m *interactiveModel) prepareInputs() {
	op := m.ops[m.selected]
	m.inputs = make([]textinput.Model, len(op.params))
	for i, p := range op.params {
		ti := textinput.New()
		ti.Placeholder = p.hint
		ti.Prompt = p.name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callOperation() tea.Msg {
	if m.eng == nil {
		return callResultMsg{err: fmt.Errorf("engine not loaded")}
	}

	op := m.ops[m.selected]
	args := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		args[i] = input.Value()
	}

	result, err := op.call(context.Background(), m.eng, args)
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: result}
}

func operations() []opInfo {
	return []opInfo{
		{
			name:   "greet",
			params: []paramInfo{{name: "name", hint: "string"}},
			call: func(_ context.Context, e *bridge.Engine, args []string) (string, error) {
				return e.Greet(args[0]), nil
			},
		},
		{
			name: "demo",
			call: func(ctx context.Context, e *bridge.Engine, _ []string) (string, error) {
				h, err := e.CreateDemoDataset(ctx)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("dataset handle %d", h), nil
			},
		},
		{
			name:   "load",
			params: []paramInfo{{name: "source", hint: "path or identifier"}},
			call: func(ctx context.Context, e *bridge.Engine, args []string) (string, error) {
				h, err := e.LoadDataset(ctx, args[0])
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("dataset handle %d", h), nil
			},
		},
		{
			name:   "info",
			params: []paramInfo{{name: "handle", hint: "dataset handle"}},
			call: func(ctx context.Context, e *bridge.Engine, args []string) (string, error) {
				h, err := parseHandle(args[0])
				if err != nil {
					return "", err
				}
				info, err := e.GetDataInfo(ctx, h)
				if err != nil {
					return "", err
				}
				return formatInfo(info), nil
			},
		},
		{
			name: "slice",
			params: []paramInfo{
				{name: "handle", hint: "dataset handle"},
				{name: "origin", hint: "x,y,z"},
				{name: "normal", hint: "x,y,z"},
			},
			call: func(ctx context.Context, e *bridge.Engine, args []string) (string, error) {
				return applyPlaneOp(ctx, args, e.ApplySlice)
			},
		},
		{
			name: "clip",
			params: []paramInfo{
				{name: "handle", hint: "dataset handle"},
				{name: "origin", hint: "x,y,z"},
				{name: "normal", hint: "x,y,z"},
			},
			call: func(ctx context.Context, e *bridge.Engine, args []string) (string, error) {
				return applyPlaneOp(ctx, args, e.ApplyClip)
			},
		},
		{
			name: "contour",
			params: []paramInfo{
				{name: "handle", hint: "dataset handle"},
				{name: "value", hint: "isovalue"},
			},
			call: func(ctx context.Context, e *bridge.Engine, args []string) (string, error) {
				h, err := parseHandle(args[0])
				if err != nil {
					return "", err
				}
				value, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return "", fmt.Errorf("parse isovalue %q: %w", args[1], err)
				}
				nh, err := e.ApplyContour(ctx, h, value)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("dataset handle %d", nh), nil
			},
		},
		{
			name:   "elevation",
			params: []paramInfo{{name: "handle", hint: "dataset handle"}},
			call: func(ctx context.Context, e *bridge.Engine, args []string) (string, error) {
				h, err := parseHandle(args[0])
				if err != nil {
					return "", err
				}
				nh, err := e.ApplyElevation(ctx, h)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("dataset handle %d", nh), nil
			},
		},
		{
			name:   "release",
			params: []paramInfo{{name: "handle", hint: "dataset handle"}},
			call: func(_ context.Context, e *bridge.Engine, args []string) (string, error) {
				h, err := parseHandle(args[0])
				if err != nil {
					return "", err
				}
				if !e.ReleaseDataset(h) {
					return fmt.Sprintf("handle %d was not live", h), nil
				}
				return fmt.Sprintf("released handle %d", h), nil
			},
		},
		{
			name: "datasets",
			call: func(_ context.Context, e *bridge.Engine, _ []string) (string, error) {
				kinds := e.Datasets()
				if len(kinds) == 0 {
					return "no datasets", nil
				}
				handles := make([]registry.Handle, 0, len(kinds))
				for h := range kinds {
					handles = append(handles, h)
				}
				sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
				var b strings.Builder
				for _, h := range handles {
					kind := "derived"
					if kinds[h] == registry.KindSource {
						kind = "source"
					}
					fmt.Fprintf(&b, "handle %d (%s)\n", h, kind)
				}
				return b.String(), nil
			},
		},
	}
}

func applyPlaneOp(ctx context.Context, args []string,
	op func(context.Context, registry.Handle, geoengine.Vec3, geoengine.Vec3) (registry.Handle, error)) (string, error) {

	h, err := parseHandle(args[0])
	if err != nil {
		return "", err
	}
	origin, err := parseVec3(args[1])
	if err != nil {
		return "", err
	}
	normal, err := parseVec3(args[2])
	if err != nil {
		return "", err
	}
	nh, err := op(ctx, h, origin, normal)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("dataset handle %d", nh), nil
}

func parseHandle(s string) (registry.Handle, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parse handle %q: %w", s, err)
	}
	return registry.Handle(v), nil
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.eng == nil {
		return "Loading geometry module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Geometry Engine"))
	if m.cfg.ModulePath != "" {
		b.WriteString(" ")
		b.WriteString(m.cfg.ModulePath)
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectOp:
		b.WriteString("Select an operation:\n\n")
		for i, op := range m.ops {
			cursor := "  "
			if i == m.selected {
				cursor = "> "
				b.WriteString(selectedStyle.Render(cursor + formatOp(op)))
			} else {
				b.WriteString(cursor + formatOp(op))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))

	case stateInputArgs:
		op := m.ops[m.selected]
		b.WriteString(fmt.Sprintf("Running %s\n\n", opStyle.Render(op.name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(hintStyle.Render(op.params[i].hint))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter run • esc back"))

	case stateShowResult:
		op := m.ops[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", opStyle.Render(op.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(strings.TrimRight(m.result, "\n")))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func formatOp(op opInfo) string {
	var params []string
	for _, p := range op.params {
		params = append(params, p.name+": "+hintStyle.Render(p.hint))
	}
	return opStyle.Render(op.name) + "(" + strings.Join(params, ", ") + ")"
}

func runInteractive(cfg bridge.Config) error {
	p := tea.NewProgram(newInteractiveModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
