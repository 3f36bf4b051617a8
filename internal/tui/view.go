package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskpilot/internal/service"
	"taskpilot/internal/taskview"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	detailStyle   = lipgloss.NewStyle().Faint(true).PaddingLeft(6)
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	priorityStyle = map[service.Priority]lipgloss.Style{
		service.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		service.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		service.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
	flashStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	reportStyle = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder())
)

// View renders the board.
func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return "\n  loading tasks...\n"
	case stateErrored:
		return fmt.Sprintf("\n  %s\n\n  %s\n",
			flashStyle.Render("could not load tasks: "+m.loadErr),
			helpStyle.Render("R retry  q quit"))
	}

	if m.mode == modeReport {
		return m.viewReport()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString("\n  no tasks\n")
	} else {
		for i, t := range m.visible {
			b.WriteString(m.viewRow(i, t))
			if m.expanded[t.ID] {
				b.WriteString(m.viewDetail(t))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewHeader() string {
	dir := "asc"
	if m.view.Direction == taskview.Descending {
		dir = "desc"
	}
	header := fmt.Sprintf("  tasks  (%d shown, sort: %s %s", len(m.visible), m.view.Key, dir)
	if len(m.view.Tags) > 0 {
		header += ", tags: " + strings.Join(m.view.Tags, ",")
	}
	header += ")"
	if m.busy {
		header += "  working..."
	}
	return headerStyle.Render(header) + "\n"
}

func (m Model) viewRow(i int, t service.Task) string {
	marker := "  "
	if i == m.cursor {
		marker = "> "
	}
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}

	title := t.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	if t.Completed {
		title = doneStyle.Render(title)
	}

	pri := "-     "
	if t.Priority != "" {
		pri = fmt.Sprintf("%-6s", t.Priority)
		if style, ok := priorityStyle[t.Priority]; ok {
			pri = style.Render(pri)
		}
	}

	tags := ""
	for _, tag := range t.Tags {
		tags += "  " + tagStyle.Render("#"+tag)
	}

	line := fmt.Sprintf("%s%s %-10s  %s  %s%s", marker, box, shortDate(t.DueDate), pri, title, tags)
	if i == m.cursor {
		line = cursorStyle.Render(line)
	}
	return line + "\n"
}

func (m Model) viewDetail(t service.Task) string {
	var lines []string
	if t.Description != "" {
		lines = append(lines, t.Description)
	} else {
		lines = append(lines, "(no description)")
	}
	for _, name := range sortedNames(t.MiniTasks) {
		box := "[ ]"
		if t.MiniTasks[name] {
			box = "[x]"
		}
		lines = append(lines, box+" "+name)
	}
	return detailStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) viewFooter() string {
	if m.flash != "" {
		return flashStyle.Render("  "+m.flash) + "\n" + m.viewPromptOrHelp()
	}
	return m.viewPromptOrHelp()
}

func (m Model) viewPromptOrHelp() string {
	switch m.mode {
	case modeNormal:
		return helpStyle.Render("  enter expand  c done  e notes  D due  p priority  t/x tag  s/S/X sub  a add  d delete  o sort  r reverse  f filter  g/G report  R reload  q quit") + "\n"
	case modeConfirmDelete:
		return promptStyle.Render(fmt.Sprintf("  delete task %d permanently? (y/n)", m.editID)) + "\n"
	case modePickPriority:
		return promptStyle.Render("  priority: (l)ow (m)edium (h)igh, esc to cancel") + "\n"
	default:
		return promptStyle.Render("  "+m.input.Placeholder+": ") + m.input.View() + "\n"
	}
}

func (m Model) viewReport() string {
	body := m.reportBody
	if body == "" {
		body = "generating..."
	}
	content := headerStyle.Render(m.reportTitle) + "\n\n" + body
	width := m.width - 8
	if width > 72 {
		width = 72
	}
	if width > 0 {
		content = lipgloss.NewStyle().Width(width).Render(content)
	}
	return reportStyle.Render(content) + "\n" + helpStyle.Render("  esc close") + "\n"
}

func shortDate(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	if s == "" {
		return "-"
	}
	return s
}

func sortedNames(m map[string]bool) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
