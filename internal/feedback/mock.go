package feedback

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/campuspulse/console/internal/models"
	"github.com/campuspulse/console/internal/utils"
)

const recentFeedLimit = 15

// MockClient is a stateful in-process stand-in for the feedback service,
// used when FEEDBACK_API_URL is not configured. It keeps records in memory
// and aggregates them into a Snapshot the same way the real service does,
// so the whole console works end to end without the upstream.
type MockClient struct {
	mu      sync.Mutex
	nextID  int64
	records []models.FeedbackRecord
}

var seedTexts = []string{
	"The library is clean and the staff are helpful",
	"Wifi in Hostel A is broken again, nothing loads",
	"Great placement talk this week, very useful",
	"Canteen food quality is poor and the queue is slow",
	"Sports complex equipment is excellent",
	"Lecture rooms in Main Block are crowded and noisy",
	"Lab sessions are well organised",
	"Hostel B bathrooms are dirty most mornings",
}

// NewMockClient seeds count deterministic records derived from an FNV hash,
// spread over the trailing week.
func NewMockClient(count int) *MockClient {
	m := &MockClient{}
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		h := utils.HashStringToUint64(fmt.Sprintf("seed-%d", i))
		text := seedTexts[h%uint64(len(seedTexts))]
		label, score := classifySentiment(text)
		day := now.AddDate(0, 0, -int(h%7))
		m.add(models.FeedbackRecord{
			StudentID:      fmt.Sprintf("S%03d", int(h/3)%400),
			Category:       models.Categories[int(h/5)%len(models.Categories)],
			Location:       models.Locations[int(h/11)%len(models.Locations)],
			Text:           text,
			Status:         models.RecordPending,
			SentimentLabel: label,
			SentimentScore: score,
			CreatedAt:      day.Format(time.RFC3339),
		})
	}
	return m
}

func (m *MockClient) add(r models.FeedbackRecord) models.FeedbackRecord {
	m.nextID++
	r.ID = m.nextID
	if r.Location == "" {
		r.Location = "Main Block"
	}
	if r.CreatedAt == "" {
		r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	m.records = append(m.records, r)
	return r
}

func (m *MockClient) FetchSnapshot(ctx context.Context) (models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := models.Snapshot{
		SentimentCounts: map[string]int{
			models.SentimentPositive: 0,
			models.SentimentNegative: 0,
			models.SentimentNeutral:  0,
		},
		CategoryDistribution: models.CountSeries{},
		LocationStats:        models.CountSeries{},
		TemporalTrends:       models.TrendSeries{},
		RecentFeed:           []models.FeedbackRecord{},
	}

	students := map[string]bool{}
	catIdx := map[string]int{}
	locIdx := map[string]int{}
	trendIdx := map[string]int{}
	var negCategories []string
	negSeen := map[string]bool{}
	firstNegText := ""

	// Newest first, matching the service's created_at desc ordering; the
	// distribution and trend key order follows from it.
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		snap.Total++
		if !students[r.StudentID] {
			students[r.StudentID] = true
			snap.UniqueStudents++
		}
		if r.Resolved() {
			snap.ResolvedCount++
		}
		snap.SentimentCounts[r.SentimentLabel]++

		if idx, ok := catIdx[r.Category]; ok {
			snap.CategoryDistribution[idx].Value++
		} else {
			catIdx[r.Category] = len(snap.CategoryDistribution)
			snap.CategoryDistribution = append(snap.CategoryDistribution, models.NamedCount{Name: r.Category, Value: 1})
		}
		if idx, ok := locIdx[r.Location]; ok {
			snap.LocationStats[idx].Value++
		} else {
			locIdx[r.Location] = len(snap.LocationStats)
			snap.LocationStats = append(snap.LocationStats, models.NamedCount{Name: r.Location, Value: 1})
		}

		date := r.CreatedAt
		if len(date) >= 10 {
			date = date[:10]
		}
		idx, ok := trendIdx[date]
		if !ok {
			idx = len(snap.TemporalTrends)
			trendIdx[date] = idx
			snap.TemporalTrends = append(snap.TemporalTrends, models.TrendEntry{Date: date})
		}
		switch r.SentimentLabel {
		case models.SentimentPositive:
			snap.TemporalTrends[idx].Counts.Positive++
		case models.SentimentNegative:
			snap.TemporalTrends[idx].Counts.Negative++
		default:
			snap.TemporalTrends[idx].Counts.Neutral++
		}

		if r.SentimentLabel == models.SentimentNegative {
			if firstNegText == "" {
				firstNegText = r.Text
			}
			if !negSeen[r.Category] {
				negSeen[r.Category] = true
				negCategories = append(negCategories, r.Category)
			}
		}

		if len(snap.RecentFeed) < recentFeedLimit {
			snap.RecentFeed = append(snap.RecentFeed, r)
		}
	}

	if len(negCategories) > 0 {
		theme := firstNegText
		if len(theme) > 50 {
			theme = theme[:50]
		}
		snap.AISummary = fmt.Sprintf("Critical focus areas: %s. Recurring theme: %s...", strings.Join(negCategories, ", "), theme)
	} else {
		snap.AISummary = "Sentiment trajectory is stable. No critical issues detected."
	}
	return snap, nil
}

func (m *MockClient) SubmitFeedback(ctx context.Context, sub Submission) error {
	label, score := classifySentiment(sub.Text)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(models.FeedbackRecord{
		StudentID:      sub.StudentID,
		Category:       sub.Category,
		Location:       sub.Location,
		Text:           sub.Text,
		Status:         models.RecordPending,
		SentimentLabel: label,
		SentimentScore: score,
	})
	return nil
}

func (m *MockClient) UploadBatch(ctx context.Context, filename string, file io.Reader) (int, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return 0, &ServiceValidationError{Detail: "Invalid file format. Please upload CSV."}
	}
	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return 0, &ServiceValidationError{Detail: "Empty or unreadable CSV file."}
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"student_id", "category", "text"} {
		if _, ok := cols[required]; !ok {
			return 0, &ServiceValidationError{Detail: fmt.Sprintf("Missing required column: %s", required)}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, &ServiceValidationError{Detail: fmt.Sprintf("CSV parse error: %v", err)}
		}
		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		text := field("text")
		label, score := classifySentiment(text)
		m.add(models.FeedbackRecord{
			StudentID:      field("student_id"),
			Category:       field("category"),
			Location:       field("location"),
			Text:           text,
			Status:         models.RecordPending,
			SentimentLabel: label,
			SentimentScore: score,
		})
		count++
	}
	return count, nil
}

func (m *MockClient) ResolveFeedback(ctx context.Context, id int64, note string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].Status = models.RecordResolved
			return nil
		}
	}
	return &ServiceValidationError{Detail: "Feedback not found"}
}

var negativeWords = []string{"bad", "poor", "broken", "dirty", "slow", "worst", "crowded", "noisy", "issue", "problem"}
var positiveWords = []string{"good", "great", "excellent", "clean", "helpful", "useful", "amazing", "well organised"}

// classifySentiment is a crude keyword stand-in for the service's model.
func classifySentiment(text string) (string, float64) {
	lower := strings.ToLower(text)
	neg, pos := 0, 0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	switch {
	case neg > pos:
		return models.SentimentNegative, 0.9
	case pos > neg:
		return models.SentimentPositive, 0.9
	default:
		return models.SentimentNeutral, 0.5
	}
}
