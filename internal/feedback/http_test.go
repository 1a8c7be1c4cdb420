package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchSnapshotDecodesOrderedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/dashboard-data" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{
			"total": 2,
			"unique_students": 2,
			"resolved_count": 5,
			"sentiment_counts": {"POSITIVE": 1, "NEGATIVE": 1, "NEUTRAL": 0},
			"location_stats": {"Canteen": 1, "Library": 1},
			"category_distribution": {"Facilities": 2},
			"temporal_trends": {"2024-05-02": {"POSITIVE": 1}, "2024-05-01": {"NEGATIVE": 1}},
			"ai_summary": "fine",
			"recent_feed": [{"id": 1, "student_id": "S1", "text": "ok", "status": "PENDING"}]
		}`)
	}))
	defer srv.Close()

	client := &HTTPClient{BaseURL: srv.URL}
	snap, err := client.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snap.LocationStats[0].Name != "Canteen" || snap.LocationStats[1].Name != "Library" {
		t.Fatalf("location order not preserved: %+v", snap.LocationStats)
	}
	if snap.TemporalTrends[0].Date != "2024-05-02" {
		t.Fatalf("trend order not preserved: %+v", snap.TemporalTrends)
	}
	// resolved_count above total is clamped on decode
	if snap.ResolvedCount != 2 {
		t.Fatalf("expected clamped resolved_count 2, got %d", snap.ResolvedCount)
	}
	if len(snap.RecentFeed) != 1 || snap.RecentFeed[0].StudentID != "S1" {
		t.Fatalf("unexpected feed: %+v", snap.RecentFeed)
	}
}

func TestFetchSnapshotServerErrorIsConnectivity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := &HTTPClient{BaseURL: srv.URL}
	_, err := client.FetchSnapshot(context.Background())
	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectivityError, got %v", err)
	}
}

func TestFetchSnapshotUnreachableIsConnectivity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := &HTTPClient{BaseURL: srv.URL}
	_, err := client.FetchSnapshot(context.Background())
	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectivityError, got %v", err)
	}
}

func TestDetailSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"detail": "Missing required columns: student_id"}`)
	}))
	defer srv.Close()

	client := &HTTPClient{BaseURL: srv.URL}
	_, err := client.UploadBatch(context.Background(), "records.csv", strings.NewReader("x"))
	var svcErr *ServiceValidationError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceValidationError, got %v", err)
	}
	if svcErr.Detail != "Missing required columns: student_id" {
		t.Fatalf("detail not surfaced verbatim: %q", svcErr.Detail)
	}
}

func TestSubmitFeedbackRequestShape(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &HTTPClient{BaseURL: srv.URL}
	err := client.SubmitFeedback(context.Background(), Submission{
		StudentID: "S1", Category: "Hostel", Location: "Hostel A", Text: "no hot water",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/feedback" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
	if gotBody.StudentID != "S1" || gotBody.Text != "no hot water" {
		t.Fatalf("unexpected body: %+v", gotBody)
	}
}

func TestResolveFeedbackRequestShape(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &HTTPClient{BaseURL: srv.URL}
	if err := client.ResolveFeedback(context.Background(), 42, "handled by warden"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/feedback/42/resolve" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
	if gotBody["note"] != "handled by warden" {
		t.Fatalf("unexpected note: %+v", gotBody)
	}
}

func TestUploadBatchMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "records.csv" {
			t.Fatalf("unexpected filename: %s", header.Filename)
		}
		io.WriteString(w, `{"status": "success", "count": 2}`)
	}))
	defer srv.Close()

	client := &HTTPClient{BaseURL: srv.URL}
	count, err := client.UploadBatch(context.Background(), "records.csv", strings.NewReader("student_id,category,text\n"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
}
