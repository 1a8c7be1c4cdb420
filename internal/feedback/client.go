package feedback

import (
	"context"
	"io"

	"github.com/campuspulse/console/internal/models"
)

// Submission is one manually entered feedback record.
type Submission struct {
	StudentID string `json:"student_id" validate:"required"`
	Category  string `json:"category"`
	Location  string `json:"location"`
	Text      string `json:"text" validate:"required"`
}

// Client is the outbound adapter for the external feedback-analytics
// service. The service owns all record state; the console never patches a
// record locally and instead re-fetches the snapshot after mutations.
type Client interface {
	FetchSnapshot(ctx context.Context) (models.Snapshot, error)
	SubmitFeedback(ctx context.Context, sub Submission) error
	UploadBatch(ctx context.Context, filename string, file io.Reader) (int, error)
	ResolveFeedback(ctx context.Context, id int64, note string) error
}
