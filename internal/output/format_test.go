package output_test

import (
	"bytes"
	"testing"

	"taskpilot/internal/output"
	"taskpilot/internal/service"
)

func TestFormatTaskLine_Basic(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskLine(&buf, service.Task{
		ID:      1,
		Title:   "Buy milk",
		DueDate: "2025-02-01T00:00:00",
	})

	expected := "   1  [ ] 2025-02-01  -       Buy milk\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTaskLine_CompletedWithPriorityAndTags(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskLine(&buf, service.Task{
		ID:        12,
		Title:     "Write report",
		DueDate:   "2025-03-01T09:00:00",
		Completed: true,
		Priority:  service.PriorityHigh,
		Tags:      []string{"work", "q1"},
	})

	expected := "  12  [x] 2025-03-01  high    Write report  #work  #q1\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTaskLine_UntitledAndMultiline(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskLine(&buf, service.Task{ID: 3, Title: "  ", DueDate: "2025-01-01"})
	output.FormatTaskLine(&buf, service.Task{ID: 4, Title: "two\nlines", DueDate: "2025-01-01"})

	expected := "   3  [ ] 2025-01-01  -       (untitled)\n" +
		"   4  [ ] 2025-01-01  -       two lines\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTaskDetail_Full(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskDetail(&buf, service.Task{
		ID:          5,
		Title:       "Plan trip",
		DueDate:     "2025-07-01T00:00:00",
		CreatedAt:   "2025-04-15T12:00:00",
		Completed:   true,
		Priority:    service.PriorityMedium,
		Tags:        []string{"travel", "family"},
		Description: "Book everything early.",
		MiniTasks:   map[string]bool{"hotel": true, "flights": false},
	})

	expected := "5  Plan trip\n" +
		"  status:    done\n" +
		"  due:       2025-07-01\n" +
		"  created:   2025-04-15\n" +
		"  priority:  medium\n" +
		"  tags:      travel, family\n" +
		"  notes:     Book everything early.\n" +
		"  subtasks:\n" +
		"    [ ] flights\n" +
		"    [x] hotel\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTaskDetail_Placeholders(t *testing.T) {
	var buf bytes.Buffer
	output.FormatTaskDetail(&buf, service.Task{ID: 6, Title: "Bare", DueDate: ""})

	expected := "6  Bare\n" +
		"  status:    open\n" +
		"  due:       -\n" +
		"  priority:  -\n" +
		"  tags:      -\n" +
		"  notes:     (no description)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatReport_Summary(t *testing.T) {
	var buf bytes.Buffer
	output.FormatReport(&buf, "Project Summary", service.AgentReport{
		Summary: "Steady progress.\n",
		Metadata: service.ReportMetadata{
			TotalTasks:     10,
			CompletedTasks: 4,
			PendingTasks:   6,
			CompletionRate: 40.0,
		},
		GeneratedAt: "2025-05-01T08:00:00",
	})

	expected := "Project Summary\n" +
		"---------------\n" +
		"Steady progress.\n" +
		"\n" +
		"tasks: 10 total, 4 completed, 6 pending (40.0% done)\n" +
		"generated at 2025-05-01T08:00:00\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatReport_Recommendations(t *testing.T) {
	var buf bytes.Buffer
	output.FormatReport(&buf, "Task Recommendations", service.AgentReport{
		Recommendations: "Start with the overdue items.",
		Metadata: service.ReportMetadata{
			TotalPendingTasks: 6,
			HighPriorityTasks: 2,
			OverdueTasks:      1,
		},
	})

	expected := "Task Recommendations\n" +
		"--------------------\n" +
		"Start with the overdue items.\n" +
		"\n" +
		"pending: 6 (2 high priority, 1 overdue)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
