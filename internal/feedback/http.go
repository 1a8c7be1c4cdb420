package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/campuspulse/console/internal/models"
)

// HTTPClient talks to the real feedback-analytics service.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

func (h *HTTPClient) httpClient() *http.Client {
	if h.Client == nil {
		h.Client = &http.Client{Timeout: 15 * time.Second}
	}
	return h.Client
}

func (h *HTTPClient) FetchSnapshot(ctx context.Context) (models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+"/dashboard-data", nil)
	if err != nil {
		return models.Snapshot{}, err
	}
	resp, err := h.httpClient().Do(req)
	if err != nil {
		return models.Snapshot{}, &ConnectivityError{Op: "snapshot fetch", Err: err}
	}
	defer resp.Body.Close()

	if err := classifyStatus("snapshot fetch", resp); err != nil {
		return models.Snapshot{}, err
	}
	var snap models.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return models.Snapshot{}, &ConnectivityError{Op: "snapshot decode", Err: err}
	}
	snap.Normalize()
	return snap, nil
}

func (h *HTTPClient) SubmitFeedback(ctx context.Context, sub Submission) error {
	b, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/feedback", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient().Do(req)
	if err != nil {
		return &ConnectivityError{Op: "feedback submit", Err: err}
	}
	defer resp.Body.Close()
	return classifyStatus("feedback submit", resp)
}

func (h *HTTPClient) UploadBatch(ctx context.Context, filename string, file io.Reader) (int, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/upload-feedback", &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := h.httpClient().Do(req)
	if err != nil {
		return 0, &ConnectivityError{Op: "batch upload", Err: err}
	}
	defer resp.Body.Close()

	if err := classifyStatus("batch upload", resp); err != nil {
		return 0, err
	}
	var result struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, &ConnectivityError{Op: "batch upload decode", Err: err}
	}
	return result.Count, nil
}

func (h *HTTPClient) ResolveFeedback(ctx context.Context, id int64, note string) error {
	b, err := json.Marshal(map[string]string{"note": note})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/feedback/%d/resolve", h.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient().Do(req)
	if err != nil {
		return &ConnectivityError{Op: "resolve", Err: err}
	}
	defer resp.Body.Close()
	return classifyStatus("resolve", resp)
}

// classifyStatus maps a non-2xx response to the error taxonomy: a JSON
// body with a "detail" field is a service-side validation rejection whose
// message is kept verbatim, everything else is a connectivity failure.
func classifyStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &ServiceValidationError{Detail: payload.Detail}
	}
	return &ConnectivityError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status)}
}
