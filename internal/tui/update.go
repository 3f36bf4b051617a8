package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskpilot/internal/service"
	"taskpilot/internal/taskview"
)

// Update drives the board state machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		// Wholesale replacement of the previous list. No merging: the
		// fetched set is the only truth the board ever displays.
		m.state = stateLoaded
		m.tasks = msg.tasks
		m.busy = false
		m.refreshView()
		return m, nil

	case loadFailedMsg:
		m.state = stateErrored
		m.loadErr = msg.err.Error()
		m.busy = false
		return m, nil

	case mutationDoneMsg:
		// Stay busy through the re-fetch so edits stay serialized:
		// at most one request is ever outstanding per board.
		return m, m.fetchCmd()

	case mutationFailedMsg:
		// No optimistic change was applied, so there is nothing to
		// roll back; the error is shown and the list stands as-is.
		m.busy = false
		m.mode = modeNormal
		m.flash = msg.err.Error()
		return m, nil

	case reportMsg:
		m.busy = false
		m.mode = modeReport
		m.reportTitle = msg.title
		text := msg.report.Summary
		if text == "" {
			text = msg.report.Recommendations
		}
		m.reportBody = strings.TrimSpace(text)
		return m, nil

	case reportFailedMsg:
		m.busy = false
		m.mode = modeNormal
		m.flash = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.busy {
			// A request is in flight; input stays modal until it lands.
			return m, nil
		}
		m.flash = ""
		if m.mode == modeNormal {
			return m.updateNormal(msg)
		}
		return m.updateModal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "enter":
		if t, ok := m.selected(); ok {
			m.expanded[t.ID] = !m.expanded[t.ID]
		}

	case "o":
		m.view.Key = nextSortKey(m.view.Key)
		m.refreshView()
	case "r":
		if m.view.Direction == taskview.Ascending {
			m.view.Direction = taskview.Descending
		} else {
			m.view.Direction = taskview.Ascending
		}
		m.refreshView()
	case "f":
		return m.openInput(modeFilterTags, strings.Join(m.view.Tags, ", "), "tags (comma separated, empty clears)")

	case "R":
		m.state = stateLoading
		m.busy = true
		return m, m.fetchCmd()

	case "c":
		if t, ok := m.selected(); ok {
			completed := !t.Completed
			return m.startMutation(m.updateCmd(t.ID, service.TaskPatch{Completed: &completed}))
		}

	case "e":
		if t, ok := m.selected(); ok {
			m.editID = t.ID
			return m.openInput(modeEditDescription, t.Description, "description")
		}
	case "D":
		if t, ok := m.selected(); ok {
			m.editID = t.ID
			return m.openInput(modeEditDueDate, t.DueDate, "due date (YYYY-MM-DD)")
		}
	case "p":
		if t, ok := m.selected(); ok {
			m.editID = t.ID
			m.mode = modePickPriority
		}
	case "t":
		if t, ok := m.selected(); ok {
			m.editID = t.ID
			return m.openInput(modeAddTag, "", "new tag")
		}
	case "x":
		if t, ok := m.selected(); ok && len(t.Tags) > 0 {
			m.editID = t.ID
			return m.openInput(modeRemoveTag, "", "tag to remove")
		}
	case "s":
		if t, ok := m.selected(); ok {
			m.editID = t.ID
			return m.openInput(modeAddSub, "", "new sub-item")
		}
	case "S":
		if t, ok := m.selected(); ok && len(t.MiniTasks) > 0 {
			m.editID = t.ID
			return m.openInput(modeToggleSub, "", "sub-item to toggle")
		}
	case "X":
		if t, ok := m.selected(); ok && len(t.MiniTasks) > 0 {
			m.editID = t.ID
			return m.openInput(modeRemoveSub, "", "sub-item to remove")
		}

	case "a":
		return m.openInput(modeAddTitle, "", "title")

	case "d":
		if t, ok := m.selected(); ok {
			// First step arms the confirmation; the delete itself only
			// goes out from modeConfirmDelete.
			m.editID = t.ID
			m.mode = modeConfirmDelete
		}

	case "g":
		m.busy = true
		return m, m.summaryCmd()
	case "G":
		m.busy = true
		return m, m.recommendCmd()
	}

	return m, nil
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			return m.startMutation(m.deleteCmd(m.editID))
		case "n", "esc":
			m.mode = modeNormal
		}
		return m, nil

	case modePickPriority:
		switch msg.String() {
		case "l", "1":
			return m.sendPriority(service.PriorityLow)
		case "m", "2":
			return m.sendPriority(service.PriorityMedium)
		case "h", "3":
			return m.sendPriority(service.PriorityHigh)
		case "esc":
			// Closing the picker changes nothing.
			m.mode = modeNormal
		}
		return m, nil

	case modeReport:
		if msg.String() == "esc" || msg.String() == "q" {
			// The report is discarded on close, never cached.
			m.mode = modeNormal
			m.reportTitle = ""
			m.reportBody = ""
		}
		return m, nil
	}

	// Text-input modes.
	switch msg.Type {
	case tea.KeyEscape:
		// Cancel reverts: the input is thrown away and the displayed
		// value stays whatever the last fetch said.
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		return m.commitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitInput validates and submits the current text input. Validation
// failures never produce a request: the mode stays open with a message.
func (m Model) commitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	trimmed := strings.TrimSpace(value)

	switch m.mode {
	case modeEditDescription:
		// Empty is a valid save; the wire encoding of "no description"
		// is handled below the service interface.
		return m.startMutation(m.updateCmd(m.editID, service.TaskPatch{Description: &value}))

	case modeEditDueDate:
		due, ok := taskview.ParseDueDate(trimmed)
		if !ok {
			m.flash = "invalid date"
			return m, nil
		}
		return m.startMutation(m.updateCmd(m.editID, service.TaskPatch{DueDate: &due}))

	case modeAddTag:
		if trimmed == "" {
			return m, nil
		}
		t, ok := m.taskByID(m.editID)
		if !ok {
			m.mode = modeNormal
			return m, nil
		}
		if t.HasTag(trimmed) {
			m.flash = "tag already exists: " + trimmed
			return m, nil
		}
		tags := append(append([]string{}, t.Tags...), trimmed)
		return m.startMutation(m.updateCmd(t.ID, service.TaskPatch{Tags: &tags}))

	case modeRemoveTag:
		t, ok := m.taskByID(m.editID)
		if !ok {
			m.mode = modeNormal
			return m, nil
		}
		if !t.HasTag(trimmed) {
			m.flash = "no such tag: " + trimmed
			return m, nil
		}
		tags := make([]string, 0, len(t.Tags))
		for _, have := range t.Tags {
			if have != trimmed {
				tags = append(tags, have)
			}
		}
		return m.startMutation(m.updateCmd(t.ID, service.TaskPatch{Tags: &tags}))

	case modeAddSub, modeToggleSub, modeRemoveSub:
		return m.commitSubItem(trimmed)

	case modeFilterTags:
		var tags []string
		for _, tag := range strings.Split(trimmed, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		m.view.Tags = tags
		m.mode = modeNormal
		m.input.Blur()
		m.refreshView()
		return m, nil

	case modeAddTitle:
		if trimmed == "" {
			m.flash = "title required"
			return m, nil
		}
		m.addTitle = trimmed
		return m.openInput(modeAddDue, "", "due date (YYYY-MM-DD)")

	case modeAddDue:
		due, ok := taskview.ParseDueDate(trimmed)
		if !ok {
			m.flash = "invalid date"
			return m, nil
		}
		t := service.NewTask{Title: m.addTitle, DueDate: due}
		m.addTitle = ""
		return m.startMutation(m.createCmd(t))
	}

	m.mode = modeNormal
	return m, nil
}

func (m Model) commitSubItem(name string) (tea.Model, tea.Cmd) {
	if name == "" {
		return m, nil
	}
	t, ok := m.taskByID(m.editID)
	if !ok {
		m.mode = modeNormal
		return m, nil
	}

	items := make(map[string]bool, len(t.MiniTasks)+1)
	for k, v := range t.MiniTasks {
		items[k] = v
	}
	_, exists := items[name]

	switch m.mode {
	case modeAddSub:
		// The name is the identity, so a second entry with the same
		// name is structurally impossible; reject before any request.
		if exists {
			m.flash = "sub-item already exists: " + name
			return m, nil
		}
		items[name] = false
	case modeToggleSub:
		if !exists {
			m.flash = "no such sub-item: " + name
			return m, nil
		}
		items[name] = !items[name]
	case modeRemoveSub:
		if !exists {
			m.flash = "no such sub-item: " + name
			return m, nil
		}
		delete(items, name)
	}

	return m.startMutation(m.updateCmd(t.ID, service.TaskPatch{MiniTasks: &items}))
}

func (m Model) sendPriority(p service.Priority) (tea.Model, tea.Cmd) {
	return m.startMutation(m.updateCmd(m.editID, service.TaskPatch{Priority: &p}))
}

// openInput switches into a text-input mode seeded with value.
func (m Model) openInput(target mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = target
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

// startMutation closes any modal and issues the request. The board stays
// busy until the follow-up re-fetch lands.
func (m Model) startMutation(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.input.Blur()
	m.busy = true
	return m, cmd
}

func (m Model) taskByID(id int64) (service.Task, bool) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

func nextSortKey(key taskview.SortKey) taskview.SortKey {
	switch key {
	case taskview.SortDueDate:
		return taskview.SortPriority
	case taskview.SortPriority:
		return taskview.SortTitle
	default:
		return taskview.SortDueDate
	}
}
