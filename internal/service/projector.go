package service

import "github.com/campuspulse/console/internal/models"

// Chart projections. Each function is a pure derivation over one snapshot:
// no projector mutates its input, and projecting the same snapshot twice
// yields identical output.

// TrendPoint is one point of the sentiment polarity timeline.
type TrendPoint struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
}

// SentimentDistribution always yields the three labels in a fixed order so
// chart legends stay stable; missing counts default to zero.
func SentimentDistribution(snap models.Snapshot) []models.NamedCount {
	return []models.NamedCount{
		{Name: "Positive", Value: snap.SentimentCounts[models.SentimentPositive]},
		{Name: "Negative", Value: snap.SentimentCounts[models.SentimentNegative]},
		{Name: "Neutral", Value: snap.SentimentCounts[models.SentimentNeutral]},
	}
}

// TemporalTrend preserves the snapshot's date order. A single point would
// render as a dot rather than a line segment, so it gets a synthetic zero
// anchor in front.
func TemporalTrend(snap models.Snapshot) []TrendPoint {
	points := make([]TrendPoint, 0, len(snap.TemporalTrends)+1)
	for _, e := range snap.TemporalTrends {
		points = append(points, TrendPoint{
			Date:     e.Date,
			Positive: e.Counts.Positive,
			Negative: e.Counts.Negative,
		})
	}
	if len(points) == 1 {
		points = append([]TrendPoint{{Date: "Start"}}, points...)
	}
	return points
}

func GeoDistribution(snap models.Snapshot) []models.NamedCount {
	out := make([]models.NamedCount, len(snap.LocationStats))
	copy(out, snap.LocationStats)
	return out
}

func CategoryDistribution(snap models.Snapshot) []models.NamedCount {
	out := make([]models.NamedCount, len(snap.CategoryDistribution))
	copy(out, snap.CategoryDistribution)
	return out
}

// ResolutionRate is resolved over total in [0,1]. The divisor floor of 1
// keeps an empty snapshot at rate 0 instead of dividing by zero.
func ResolutionRate(snap models.Snapshot) float64 {
	total := snap.Total
	if total < 1 {
		total = 1
	}
	return float64(snap.ResolvedCount) / float64(total)
}
