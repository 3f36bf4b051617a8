// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"taskpilot/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Mutations behave like the real backend: partial updates touch only the
// fields the patch carries, and IDs are assigned sequentially from 1.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int64

	// Reports returned by the agent endpoints.
	SummaryReport   service.AgentReport
	RecommendReport service.AgentReport

	// Error injection for testing.
	ListTasksErr       error
	CreateTaskErr      error
	UpdateTaskErr      error
	DeleteTaskErr      error
	SummaryErr         error
	RecommendationsErr error

	// Call counters, for asserting that a rejected edit never reached
	// the backend.
	ListCalls   int
	UpdateCalls int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 1}
}

// AddTask seeds a task, assigning the next ID. Returns the assigned ID.
func (f *FakeService) AddTask(t service.Task) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.nextID
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t.ID
}

// Task returns a copy of the stored task with the given ID.
func (f *FakeService) Task(id int64) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.ListCalls++
	f.mu.Unlock()
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, t service.NewTask) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	created := service.Task{
		ID:          f.nextID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Tags:        append([]string(nil), t.Tags...),
	}
	f.nextID++
	f.tasks = append(f.tasks, created)
	return created, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int64, patch service.TaskPatch) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	for i, t := range f.tasks {
		if t.ID != id {
			continue
		}
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.DueDate != nil {
			t.DueDate = *patch.DueDate
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		if patch.Tags != nil {
			t.Tags = append([]string(nil), *patch.Tags...)
		}
		if patch.MiniTasks != nil {
			items := make(map[string]bool, len(*patch.MiniTasks))
			for k, v := range *patch.MiniTasks {
				items[k] = v
			}
			t.MiniTasks = items
		}
		f.tasks[i] = t
		return t, nil
	}
	return service.Task{}, fmt.Errorf("task %d: %w", id, service.ErrNotFound)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task %d: %w", id, service.ErrNotFound)
}

// Summary implements service.Service.
func (f *FakeService) Summary(ctx context.Context) (service.AgentReport, error) {
	if f.SummaryErr != nil {
		return service.AgentReport{}, f.SummaryErr
	}
	return f.SummaryReport, nil
}

// Recommendations implements service.Service.
func (f *FakeService) Recommendations(ctx context.Context) (service.AgentReport, error) {
	if f.RecommendationsErr != nil {
		return service.AgentReport{}, f.RecommendationsErr
	}
	return f.RecommendReport, nil
}
