// Package service defines the backend-agnostic interface for task operations.
package service

// Priority is a task priority level.
type Priority string

// Priority levels, in ascending rank order.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns the sort rank of a priority: high=3, medium=2, low=1,
// unset (or unknown) =0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Task represents a single task item as served by the backend.
type Task struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	DueDate     string          `json:"due_date"`
	Completed   bool            `json:"completed"`
	CreatedAt   string          `json:"created_at,omitempty"`
	Priority    Priority        `json:"priority,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	MiniTasks   map[string]bool `json:"mini_tasks,omitempty"`
}

// HasTag reports whether the task carries the given tag.
func (t Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// NewTask holds the fields for task creation. Title and DueDate are
// required; the server assigns the ID.
type NewTask struct {
	Title       string   `json:"title"`
	DueDate     string   `json:"due_date"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// TaskPatch is a partial update. Only non-nil fields are sent; the server
// leaves everything else untouched. Note that a pointer to an empty slice
// or map still marshals (as [] or {}), which is how tags and mini-tasks are
// emptied without ever sending null.
type TaskPatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	DueDate     *string          `json:"due_date,omitempty"`
	Priority    *Priority        `json:"priority,omitempty"`
	Completed   *bool            `json:"completed,omitempty"`
	Tags        *[]string        `json:"tags,omitempty"`
	MiniTasks   *map[string]bool `json:"mini_tasks,omitempty"`
}

// IsZero reports whether the patch carries no fields.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Priority == nil && p.Completed == nil && p.Tags == nil &&
		p.MiniTasks == nil
}

// AgentReport is one AI-generated report. Exactly one of Summary and
// Recommendations is set, depending on which endpoint produced it.
// Reports are ephemeral: generated per request, never cached.
type AgentReport struct {
	Summary         string         `json:"summary,omitempty"`
	Recommendations string         `json:"recommendations,omitempty"`
	Metadata        ReportMetadata `json:"metadata"`
	GeneratedAt     string         `json:"generated_at"`
	PromptType      string         `json:"prompt_type"`
}

// ReportMetadata holds the task-aggregate counters attached to a report.
// The summary and recommendations endpoints populate different subsets.
type ReportMetadata struct {
	TotalTasks        int     `json:"total_tasks,omitempty"`
	CompletedTasks    int     `json:"completed_tasks,omitempty"`
	PendingTasks      int     `json:"pending_tasks,omitempty"`
	TotalPendingTasks int     `json:"total_pending_tasks,omitempty"`
	CompletionRate    float64 `json:"completion_rate,omitempty"`
	HighPriorityTasks int     `json:"high_priority_tasks,omitempty"`
	OverdueTasks      int     `json:"overdue_tasks,omitempty"`
	OverdueTaskIDs    []int64 `json:"overdue_task_ids,omitempty"`
}
