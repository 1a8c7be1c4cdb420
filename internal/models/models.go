package models

// Sentiment labels as emitted by the upstream analytics service.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// Record statuses on the wire. Anything that is not RESOLVED counts as open.
const (
	RecordPending  = "PENDING"
	RecordResolved = "RESOLVED"
)

// Option sets the submission form is constrained to.
var (
	Categories = []string{"Academics", "Facilities", "Sports", "Hostel", "Placements"}
	Locations  = []string{"Main Block", "Hostel A", "Hostel B", "Sports Complex", "Library", "Canteen"}
)

type FeedbackRecord struct {
	ID             int64   `json:"id"`
	StudentID      string  `json:"student_id"`
	Category       string  `json:"category"`
	Location       string  `json:"location"`
	Text           string  `json:"text"`
	Status         string  `json:"status"`
	SentimentLabel string  `json:"sentiment_label"`
	SentimentScore float64 `json:"sentiment_score"`
	CreatedAt      string  `json:"created_at"`
}

func (r FeedbackRecord) Resolved() bool {
	return r.Status == RecordResolved
}

// Snapshot is one full aggregate payload from GET /dashboard-data. It is
// replaced wholesale on every successful fetch and never mutated in place.
type Snapshot struct {
	Total                int              `json:"total"`
	UniqueStudents       int              `json:"unique_students"`
	ResolvedCount        int              `json:"resolved_count"`
	SentimentCounts      map[string]int   `json:"sentiment_counts"`
	CategoryDistribution CountSeries      `json:"category_distribution"`
	LocationStats        CountSeries      `json:"location_stats"`
	TemporalTrends       TrendSeries      `json:"temporal_trends"`
	AISummary            string           `json:"ai_summary"`
	RecentFeed           []FeedbackRecord `json:"recent_feed"`
}

// Normalize enforces the payload invariants: no negative counts, and
// resolved_count never above total.
func (s *Snapshot) Normalize() {
	if s.Total < 0 {
		s.Total = 0
	}
	if s.UniqueStudents < 0 {
		s.UniqueStudents = 0
	}
	if s.ResolvedCount < 0 {
		s.ResolvedCount = 0
	}
	if s.ResolvedCount > s.Total {
		s.ResolvedCount = s.Total
	}
	for k, v := range s.SentimentCounts {
		if v < 0 {
			s.SentimentCounts[k] = 0
		}
	}
	for i := range s.CategoryDistribution {
		if s.CategoryDistribution[i].Value < 0 {
			s.CategoryDistribution[i].Value = 0
		}
	}
	for i := range s.LocationStats {
		if s.LocationStats[i].Value < 0 {
			s.LocationStats[i].Value = 0
		}
	}
}

type TaskStatus string

const (
	TaskTodo  TaskStatus = "TODO"
	TaskDoing TaskStatus = "DOING"
	TaskDone  TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskDoing, TaskDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityCritical TaskPriority = "CRITICAL"
	PriorityNormal   TaskPriority = "NORMAL"
)

// Task is a console-local board entry created by escalating a feed record.
// SourceRecordID is a back-reference only: a task never tracks or follows
// the server-side status of the record it came from.
type Task struct {
	ID             int64        `json:"id"`
	SourceRecordID int64        `json:"source_record_id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	Location       string       `json:"location"`
}
