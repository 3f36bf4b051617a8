// Package tui renders the interactive task board.
//
// The board is the stateful face of the client: it loads the full task
// list, lets each task be edited field-by-field through partial updates,
// and re-fetches the whole list after every successful mutation. Display
// state never changes optimistically; it only moves on a confirmed
// re-fetch, so the board can never drift from the server.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskpilot/internal/service"
	"taskpilot/internal/taskview"
)

// loadState is the lifecycle of the task list: loading on entry and after
// every mutation, then loaded or errored. There is no automatic retry.
type loadState int

const (
	stateLoading loadState = iota
	stateLoaded
	stateErrored
)

// mode is the current input mode. Everything except modeNormal is modal:
// one edit at a time, Enter commits, Esc cancels and reverts.
type mode int

const (
	modeNormal mode = iota
	modeEditDescription
	modeEditDueDate
	modePickPriority
	modeAddTag
	modeRemoveTag
	modeAddSub
	modeToggleSub
	modeRemoveSub
	modeFilterTags
	modeAddTitle
	modeAddDue
	modeConfirmDelete
	modeReport
)

// Messages from async commands back into Update.
type (
	tasksLoadedMsg    struct{ tasks []service.Task }
	loadFailedMsg     struct{ err error }
	mutationDoneMsg   struct{}
	mutationFailedMsg struct{ err error }
	reportMsg         struct {
		title  string
		report service.AgentReport
	}
	reportFailedMsg struct{ err error }
)

// Model is the board's state.
type Model struct {
	ctx context.Context
	svc service.Service

	state   loadState
	loadErr string

	tasks   []service.Task // last confirmed fetch, wholesale-replaced
	view    taskview.View
	visible []service.Task // derived via taskview.Apply

	cursor   int
	expanded map[int64]bool

	mode     mode
	input    textinput.Model
	editID   int64  // task being edited in a modal mode
	addTitle string // stashed between the two add steps
	busy     bool   // a mutation is in flight; input is ignored until it lands

	reportTitle string
	reportBody  string

	flash string // transient error/info line, cleared on next action

	width  int
	height int
}

// New creates the board model.
func New(ctx context.Context, svc service.Service) Model {
	input := textinput.New()
	input.CharLimit = 256
	return Model{
		ctx:      ctx,
		svc:      svc,
		state:    stateLoading,
		view:     taskview.DefaultView(),
		expanded: make(map[int64]bool),
		input:    input,
	}
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return m.fetchCmd()
}

// Run opens the board and blocks until the user quits.
func Run(ctx context.Context, svc service.Service) error {
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.svc.ListTasks(m.ctx)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (m Model) updateCmd(id int64, patch service.TaskPatch) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.UpdateTask(m.ctx, id, patch); err != nil {
			return mutationFailedMsg{err: err}
		}
		return mutationDoneMsg{}
	}
}

func (m Model) createCmd(t service.NewTask) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.CreateTask(m.ctx, t); err != nil {
			return mutationFailedMsg{err: err}
		}
		return mutationDoneMsg{}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.DeleteTask(m.ctx, id); err != nil {
			return mutationFailedMsg{err: err}
		}
		return mutationDoneMsg{}
	}
}

func (m Model) summaryCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := m.svc.Summary(m.ctx)
		if err != nil {
			return reportFailedMsg{err: err}
		}
		return reportMsg{title: "Project Summary", report: report}
	}
}

func (m Model) recommendCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := m.svc.Recommendations(m.ctx)
		if err != nil {
			return reportFailedMsg{err: err}
		}
		return reportMsg{title: "Task Recommendations", report: report}
	}
}

// selected returns the task under the cursor.
func (m Model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return service.Task{}, false
	}
	return m.visible[m.cursor], true
}

// refreshView recomputes the derived view and clamps the cursor.
func (m *Model) refreshView() {
	m.visible = taskview.Apply(m.tasks, m.view)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
