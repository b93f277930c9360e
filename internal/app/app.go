// Package app hosts the event loop, the sole mutator of ControllerState
// (spec §4.6). It adapts bubbletea's tea.Program to the core's
// per-event sequence and owns the scoped terminal acquisition.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shellhist/search-tui/internal/controller"
	"github.com/shellhist/search-tui/internal/logging"
	"github.com/shellhist/search-tui/internal/tui/renderer"
)

// UpdateChecker looks up an available newer version, once, off the
// event loop's critical path (spec §6's "update check" capability).
type UpdateChecker func() (string, bool)

// Model is the bubbletea program driving one search session.
type Model struct {
	ctrl    *controller.Controller
	view    renderer.SearchView
	checker UpdateChecker

	width, height int
	originalEmpty bool

	outcome     controller.Outcome
	done        bool
	updateMsg   string
	checkedOnce bool
}

// New builds a Model ready to run. It records in originalEmpty whether
// ctrl's query was empty at construction, a bit EvalContext needs for
// the lifetime of the session.
func New(ctrl *controller.Controller, view renderer.SearchView, checker UpdateChecker) Model {
	return Model{
		ctrl:          ctrl,
		view:          view,
		checker:       checker,
		originalEmpty: ctrl.State.Search.Empty(),
	}
}

type updateCheckMsg struct {
	version string
	found   bool
}

func checkForUpdateCmd(checker UpdateChecker) tea.Cmd {
	if checker == nil {
		return nil
	}
	return func() tea.Msg {
		version, found := checker()
		return updateCheckMsg{version: version, found: found}
	}
}

// Init starts the one-shot update-available lookup (spec §4.6, §5).
func (m Model) Init() tea.Cmd {
	return checkForUpdateCmd(m.checker)
}

// Update implements the per-event sequence of spec §4.6 steps 1-8: a
// key event resolves through the controller, which snapshots state,
// evaluates conditions, applies the resulting action, and re-queries
// if the query changed. bubbletea's own input reader coalesces bursts
// of rapidly-arriving events ahead of each Update call, matching the
// "drain immediately-available events before re-rendering" behavior.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ctrl.State.ViewportRows = resultsRows(m.height, m.view)
		return m, nil

	case updateCheckMsg:
		m.checkedOnce = true
		if msg.found {
			m.updateMsg = msg.version
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Paste {
			m.ctrl.InsertPaste(string(msg.Runes))
			return m, nil
		}
		key, ok := fromTeaKey(msg)
		if !ok {
			return m, nil
		}
		out, terminal, err := m.ctrl.HandleKey(key, m.originalEmpty)
		if err != nil {
			m.done = true
			m.outcome = controller.Outcome{Text: ""}
			return m, tea.Quit
		}
		if terminal {
			m.done = true
			m.outcome = out
			return m, tea.Quit
		}
		m.ctrl.State.ClearTransient()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if m.ctrl.State.Tab == controller.TabInspect {
		var cmd tea.Cmd
		m.ctrl.State.DetailView, cmd = m.ctrl.State.DetailView.Update(msg)
		_ = cmd // viewport.Update never returns a command for mouse wheel input
		return m
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ctrl.State.Selected = clampSelected(m.ctrl.State.Selected-1, len(m.ctrl.State.Results))
	case tea.MouseButtonWheelDown:
		m.ctrl.State.Selected = clampSelected(m.ctrl.State.Selected+1, len(m.ctrl.State.Results))
	}
	return m
}

func clampSelected(idx, length int) int {
	if length == 0 {
		return 0
	}
	if idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}

// View renders the current frame. It never mutates state (spec §4.5).
func (m Model) View() string {
	if m.done {
		return ""
	}
	ctx := renderer.NewRenderContext(m.width, m.height)
	out, _ := m.view.Render(ctx, m.ctrl.State)
	return out
}

// Outcome returns the string to hand back to the host shell bridge
// once the program has exited (spec §6's return contract).
func (m Model) Outcome() controller.Outcome {
	return m.outcome
}

func resultsRows(height int, view renderer.SearchView) int {
	rows := height
	if view.ShowHelp {
		rows--
	}
	if view.ShowTabs {
		rows--
	}
	rows -= 2 // input line + preview separator, a conservative floor
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Run owns the scoped terminal acquisition: bubbletea's alt-screen,
// raw mode, mouse support and bracketed paste are released on every
// exit path, including a panic unwinding through tea.Program.Run
// (spec §4.6 terminal teardown, §7 fatal-error propagation).
func Run(ctrl *controller.Controller, view renderer.SearchView, checker UpdateChecker, logger *logging.Logger) (controller.Outcome, error) {
	model := New(ctrl, view, checker)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := program.Run()
	if err != nil {
		if logger != nil {
			logger.Error("event loop exited with error", "error", err)
		}
		return controller.Outcome{}, err
	}

	finalModel, ok := final.(Model)
	if !ok {
		return controller.Outcome{}, nil
	}
	return finalModel.Outcome(), nil
}
