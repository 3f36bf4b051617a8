// Package taskview computes derived, ordered views of a task set.
//
// Apply is a pure function: it never mutates its input and identical inputs
// always produce identical output. The caller re-applies it after every
// re-fetch rather than patching a previous view.
package taskview

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskpilot/internal/service"
)

// SortKey selects the primary sort attribute.
type SortKey string

// Supported sort keys.
const (
	SortDueDate  SortKey = "due_date"
	SortPriority SortKey = "priority"
	SortTitle    SortKey = "title"
)

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.TrimSpace(s)) {
	case SortDueDate:
		return SortDueDate, true
	case SortPriority:
		return SortPriority, true
	case SortTitle:
		return SortTitle, true
	}
	return "", false
}

// Direction is the sort direction.
type Direction int

// Sort directions.
const (
	Ascending Direction = iota
	Descending
)

// View describes how to order and filter a task set.
type View struct {
	Key       SortKey
	Direction Direction

	// Tags is the inclusion set. When non-empty, only tasks carrying at
	// least one of these tags are kept (OR semantics). Empty means no
	// filtering.
	Tags []string
}

// DefaultView matches the initial view of the task board: due date
// ascending, no tag filter.
func DefaultView() View {
	return View{Key: SortDueDate, Direction: Ascending}
}

// Apply returns a new slice with the view's filter and ordering applied.
// The sort is stable and ties on the primary key break by ascending task
// ID, so the result is fully deterministic regardless of input order.
func Apply(tasks []service.Task, v View) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesTags(t, v.Tags) {
			out = append(out, t)
		}
	}

	cmp := comparator(v.Key)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if v.Direction == Descending {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		// Direction flips the primary comparison only.
		return out[i].ID < out[j].ID
	})
	return out
}

// matchesTags reports whether the task passes the inclusion set.
// A task is kept if it carries ANY of the selected tags.
func matchesTags(t service.Task, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

func comparator(key SortKey) func(a, b service.Task) int {
	switch key {
	case SortPriority:
		return func(a, b service.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		}
	case SortTitle:
		c := collate.New(language.Und)
		return func(a, b service.Task) int {
			return c.CompareString(a.Title, b.Title)
		}
	default: // SortDueDate
		return func(a, b service.Task) int {
			ta := parseWhen(a.DueDate)
			tb := parseWhen(b.DueDate)
			if ta.Equal(tb) {
				return 0
			}
			if ta.Before(tb) {
				return -1
			}
			return 1
		}
	}
}

// dueDateFormats are the timestamp shapes the backend and the date editor
// produce, most specific first.
var dueDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseWhen parses a due date. Unparseable dates compare as the maximum
// instant, so they sort after every valid date in ascending order.
func parseWhen(s string) time.Time {
	for _, layout := range dueDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Unix(1<<62, 0)
}

// ParseDueDate validates a user-supplied due date and normalizes it to the
// wire format. Used by editors to reject invalid dates before any request
// is sent.
func ParseDueDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dueDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02T15:04:05"), true
		}
	}
	return "", false
}
