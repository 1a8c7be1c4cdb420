package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/campuspulse/console/internal/feedback"
)

// ValidationError is a locally rejected input, reported without a network
// round trip.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Gateway issues record-level mutations against the feedback service. It
// never updates the cached snapshot itself: after a successful mutation it
// forces a fresh snapshot fetch so the dashboard reflects server state
// rather than a client-side approximation.
type Gateway struct {
	API       feedback.Client
	Poller    *Poller
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func (g *Gateway) SubmitRecord(ctx context.Context, sub feedback.Submission) error {
	if err := g.Validator.Struct(sub); err != nil {
		return &ValidationError{Reason: err.Error()}
	}
	if err := g.API.SubmitFeedback(ctx, sub); err != nil {
		return err
	}
	g.refreshAfter(ctx, "submit")
	return nil
}

// SubmitBatch uploads a spreadsheet of records. A missing file is a local
// validation failure and never reaches the service.
func (g *Gateway) SubmitBatch(ctx context.Context, file *multipart.FileHeader) (int, error) {
	if file == nil {
		return 0, &ValidationError{Reason: "no file selected"}
	}
	f, err := file.Open()
	if err != nil {
		return 0, &ValidationError{Reason: fmt.Sprintf("cannot read upload: %v", err)}
	}
	defer f.Close()

	count, err := g.API.UploadBatch(ctx, file.Filename, f)
	if err != nil {
		return 0, err
	}
	g.refreshAfter(ctx, "batch upload")
	return count, nil
}

func (g *Gateway) ResolveRecord(ctx context.Context, id int64, note string) error {
	if note == "" {
		note = "Issue addressed by operations."
	}
	if err := g.API.ResolveFeedback(ctx, id, note); err != nil {
		return err
	}
	g.refreshAfter(ctx, "resolve")
	return nil
}

func (g *Gateway) refreshAfter(ctx context.Context, op string) {
	if g.Poller == nil {
		return
	}
	if err := g.Poller.Refresh(ctx); err != nil {
		g.Logger.Warn().Err(err).Str("op", op).Msg("post-mutation refresh failed")
	}
}
