package service

import (
	"strings"

	"github.com/campuspulse/console/internal/models"
)

// FilterFeed returns the records visible under the given search term and
// role. A record passes when the term occurs case-insensitively in its text
// or student id (an empty term always passes), and the role is SuperAdmin
// or equals the record's category exactly. The input feed is never mutated.
func FilterFeed(feed []models.FeedbackRecord, searchTerm, role string) []models.FeedbackRecord {
	term := strings.ToLower(searchTerm)
	out := make([]models.FeedbackRecord, 0, len(feed))
	for _, r := range feed {
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Text), term) &&
			!strings.Contains(strings.ToLower(r.StudentID), term) {
			continue
		}
		if role != RoleSuperAdmin && r.Category != role {
			continue
		}
		out = append(out, r)
	}
	return out
}
