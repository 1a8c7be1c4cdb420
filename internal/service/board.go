package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/campuspulse/console/internal/models"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidStatus = errors.New("invalid task status")
)

// Board is the console-local operations board. Tasks exist only in memory
// for the lifetime of the process and are never synchronized with the
// feedback service: a task stays open locally even after its source record
// is resolved server-side, which is intentional.
type Board struct {
	mu     sync.Mutex
	nextID int64
	tasks  []models.Task
}

func NewBoard() *Board {
	return &Board{}
}

// Escalate creates a TODO task from a feed record. Priority is CRITICAL
// exactly when the record's sentiment is negative. Escalation is purely
// additive and always succeeds.
func (b *Board) Escalate(rec models.FeedbackRecord) models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++

	priority := models.PriorityNormal
	if rec.SentimentLabel == models.SentimentNegative {
		priority = models.PriorityCritical
	}
	task := models.Task{
		ID:             b.nextID,
		SourceRecordID: rec.ID,
		Title:          fmt.Sprintf("%s: %s", rec.Category, rec.StudentID),
		Description:    rec.Text,
		Status:         models.TaskTodo,
		Priority:       priority,
		Location:       rec.Location,
	}
	b.tasks = append(b.tasks, task)
	return task
}

// Advance moves a task to any status in the enumerated set; the board is an
// unconstrained kanban, so every transition between known statuses is legal.
func (b *Board) Advance(id int64, status models.TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks[i].Status = status
			return nil
		}
	}
	return ErrTaskNotFound
}

// TasksByStatus lists one bucket in insertion order.
func (b *Board) TasksByStatus(status models.TaskStatus) []models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Task{}
	for _, t := range b.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (b *Board) Remove(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}
