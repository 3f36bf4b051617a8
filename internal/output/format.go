// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"taskpilot/internal/service"
)

// FormatTaskLine formats a one-line task row for the list command.
// Format: "{ID:>4}  [{x| }] {DUE:<10}  {PRIORITY:<6}  {TITLE}{ #tags}\n"
func FormatTaskLine(w io.Writer, task service.Task) {
	box := " "
	if task.Completed {
		box = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %-10s  %-6s  %s%s\n",
		task.ID, box, displayDate(task.DueDate), displayPriority(task.Priority),
		normalizeTitle(task.Title), tagSuffix(task.Tags))
}

// FormatTaskDetail formats the expanded view of a single task.
func FormatTaskDetail(w io.Writer, task service.Task) {
	status := "open"
	if task.Completed {
		status = "done"
	}
	fmt.Fprintf(w, "%d  %s\n", task.ID, normalizeTitle(task.Title))
	fmt.Fprintf(w, "  status:    %s\n", status)
	fmt.Fprintf(w, "  due:       %s\n", displayDate(task.DueDate))
	if task.CreatedAt != "" {
		fmt.Fprintf(w, "  created:   %s\n", displayDate(task.CreatedAt))
	}
	fmt.Fprintf(w, "  priority:  %s\n", displayPriority(task.Priority))
	fmt.Fprintf(w, "  tags:      %s\n", displayTags(task.Tags))
	if task.Description == "" {
		fmt.Fprintf(w, "  notes:     (no description)\n")
	} else {
		fmt.Fprintf(w, "  notes:     %s\n", normalizeTitle(task.Description))
	}
	if len(task.MiniTasks) > 0 {
		fmt.Fprintln(w, "  subtasks:")
		for _, name := range sortedKeys(task.MiniTasks) {
			box := " "
			if task.MiniTasks[name] {
				box = "x"
			}
			fmt.Fprintf(w, "    [%s] %s\n", box, name)
		}
	}
}

// FormatReport formats an agent report with its metadata counters.
func FormatReport(w io.Writer, title string, report service.AgentReport) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
	text := report.Summary
	if text == "" {
		text = report.Recommendations
	}
	fmt.Fprintln(w, strings.TrimSpace(text))
	fmt.Fprintln(w)

	m := report.Metadata
	if m.TotalTasks > 0 {
		fmt.Fprintf(w, "tasks: %d total, %d completed, %d pending (%.1f%% done)\n",
			m.TotalTasks, m.CompletedTasks, m.PendingTasks, m.CompletionRate)
	}
	if m.TotalPendingTasks > 0 {
		fmt.Fprintf(w, "pending: %d (%d high priority, %d overdue)\n",
			m.TotalPendingTasks, m.HighPriorityTasks, m.OverdueTasks)
	}
	if report.GeneratedAt != "" {
		fmt.Fprintf(w, "generated at %s\n", report.GeneratedAt)
	}
}

// displayDate shows only the calendar date of a backend timestamp.
func displayDate(s string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if s == "" {
		return "-"
	}
	return s
}

func displayPriority(p service.Priority) string {
	if p == "" {
		return "-"
	}
	return string(p)
}

func displayTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

func tagSuffix(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tag := range tags {
		b.WriteString("  #")
		b.WriteString(tag)
	}
	return b.String()
}

// sortedKeys returns mini-task names in a stable order for display.
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeTitle normalizes a title for single-line display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
