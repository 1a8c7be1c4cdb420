package service

import (
	"errors"
	"testing"

	"github.com/campuspulse/console/internal/models"
)

func TestEscalateNegativeRecordIsCritical(t *testing.T) {
	b := NewBoard()
	task := b.Escalate(models.FeedbackRecord{
		ID:             42,
		StudentID:      "S9",
		Category:       "Hostel",
		Location:       "Hostel B",
		Text:           "heating broken",
		SentimentLabel: models.SentimentNegative,
	})
	if task.Priority != models.PriorityCritical {
		t.Fatalf("expected CRITICAL priority, got %s", task.Priority)
	}
	if task.Status != models.TaskTodo {
		t.Fatalf("expected TODO status, got %s", task.Status)
	}
	if task.Title != "Hostel: S9" {
		t.Fatalf("unexpected title: %s", task.Title)
	}
	if task.SourceRecordID != 42 {
		t.Fatalf("expected back-reference to record 42, got %d", task.SourceRecordID)
	}
}

func TestEscalatePositiveRecordIsNormal(t *testing.T) {
	b := NewBoard()
	task := b.Escalate(models.FeedbackRecord{ID: 1, SentimentLabel: models.SentimentPositive})
	if task.Priority != models.PriorityNormal {
		t.Fatalf("expected NORMAL priority, got %s", task.Priority)
	}
}

func TestEscalateIDsAreMonotonic(t *testing.T) {
	b := NewBoard()
	first := b.Escalate(models.FeedbackRecord{ID: 1})
	second := b.Escalate(models.FeedbackRecord{ID: 2})
	if second.ID <= first.ID {
		t.Fatalf("expected monotonic ids, got %d then %d", first.ID, second.ID)
	}
}

func TestAdvanceAnyTransitionIsLegal(t *testing.T) {
	b := NewBoard()
	task := b.Escalate(models.FeedbackRecord{ID: 1})
	for _, status := range []models.TaskStatus{models.TaskDone, models.TaskTodo, models.TaskDoing} {
		if err := b.Advance(task.ID, status); err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
	}
	if got := b.TasksByStatus(models.TaskDoing); len(got) != 1 {
		t.Fatalf("expected task in DOING, got %+v", got)
	}
}

func TestAdvanceUnknownTask(t *testing.T) {
	b := NewBoard()
	if err := b.Advance(99, models.TaskDone); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestAdvanceRejectsUnknownStatus(t *testing.T) {
	b := NewBoard()
	task := b.Escalate(models.FeedbackRecord{ID: 1})
	if err := b.Advance(task.ID, models.TaskStatus("SHIPPED")); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestTasksByStatusKeepsInsertionOrder(t *testing.T) {
	b := NewBoard()
	first := b.Escalate(models.FeedbackRecord{ID: 1, StudentID: "S1"})
	second := b.Escalate(models.FeedbackRecord{ID: 2, StudentID: "S2"})
	third := b.Escalate(models.FeedbackRecord{ID: 3, StudentID: "S3"})
	if err := b.Advance(second.ID, models.TaskDoing); err != nil {
		t.Fatalf("advance: %v", err)
	}

	todo := b.TasksByStatus(models.TaskTodo)
	if len(todo) != 2 || todo[0].ID != first.ID || todo[1].ID != third.ID {
		t.Fatalf("unexpected TODO bucket: %+v", todo)
	}
}

func TestRemoveTask(t *testing.T) {
	b := NewBoard()
	task := b.Escalate(models.FeedbackRecord{ID: 1})
	if err := b.Remove(task.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := b.Remove(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound on second remove, got %v", err)
	}
	if got := b.TasksByStatus(models.TaskTodo); len(got) != 0 {
		t.Fatalf("expected empty board, got %+v", got)
	}
}
