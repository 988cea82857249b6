package services

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"dinepro-backend/models"
)

// AnalyticsData is the dashboard summary for one period window.
//
// Counting levels intentionally differ: TotalFeedback counts visits, while
// Contacted (and the Pending bucket) count feedback documents, because staff
// follow up with a customer, not with an individual visit.
type AnalyticsData struct {
	TotalFeedback       int             `json:"totalFeedback"`
	Contacted           int             `json:"contacted"`
	AverageRating       float64         `json:"averageRating"`
	ResponseRate        int             `json:"responseRate"`
	TopCategory         string          `json:"topCategory"`
	WeeklyTrends        []TrendPoint    `json:"weeklyTrends"`
	CategoryPerformance []CategoryScore `json:"categoryPerformance"`
	FeedbackVolume      []VolumeBucket  `json:"feedbackVolume"`
}

// TrendPoint carries the per-day category means, rounded to one decimal.
type TrendPoint struct {
	Date          string  `json:"date"`
	FoodQuality   float64 `json:"foodQuality"`
	FoodTaste     float64 `json:"foodTaste"`
	StaffBehavior float64 `json:"staffBehavior"`
	Hygiene       float64 `json:"hygiene"`
	Ambience      float64 `json:"ambience"`
	ServiceSpeed  float64 `json:"serviceSpeed"`
}

// CategoryScore is an unrounded category mean.
type CategoryScore struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
}

type VolumeBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type categoryAccum struct {
	sums   [6]int
	counts [6]int
}

func (a *categoryAccum) add(r models.Ratings) {
	for i, v := range r.Values() {
		// A zero score can only come from rows written outside the
		// validated path; exclude it rather than drag the mean down.
		if v >= 1 {
			a.sums[i] += v
			a.counts[i]++
		}
	}
}

func (a *categoryAccum) means() [6]float64 {
	var m [6]float64
	for i := range a.sums {
		if a.counts[i] > 0 {
			m[i] = float64(a.sums[i]) / float64(a.counts[i])
		}
	}
	return m
}

// BuildAnalytics computes the dashboard summary over all visits with
// createdAt >= windowStart. Stateless: recomputed from the given feedbacks on
// every call, nothing cached.
func BuildAnalytics(feedbacks []models.Feedback, windowStart time.Time) AnalyticsData {
	totalVisits := 0
	documents := 0
	contacted := 0

	var overall categoryAccum
	byDate := make(map[string]*categoryAccum)

	for _, fb := range feedbacks {
		inWindow := 0
		for _, visit := range fb.Visits {
			if visit.CreatedAt.Before(windowStart) {
				continue
			}
			inWindow++
			overall.add(visit.Ratings)

			day := byDate[visit.DateKey]
			if day == nil {
				day = &categoryAccum{}
				byDate[visit.DateKey] = day
			}
			day.add(visit.Ratings)
		}
		if inWindow == 0 {
			continue
		}
		documents++
		if fb.ContactedAt != nil {
			contacted++
		}
		totalVisits += inWindow
	}

	means := overall.means()

	performance := make([]CategoryScore, len(models.RatingCategories))
	sumMeans := 0.0
	topIdx := 0
	for i, category := range models.RatingCategories {
		performance[i] = CategoryScore{Category: category, Average: means[i]}
		sumMeans += means[i]
		if means[i] > means[topIdx] {
			topIdx = i
		}
	}

	topCategory := ""
	if totalVisits > 0 {
		topCategory = categoryLabel(models.RatingCategories[topIdx])
	}

	responseRate := 0
	if totalVisits > 0 {
		responseRate = int(math.Round(float64(contacted) / float64(totalVisits) * 100))
	}

	trends := make([]TrendPoint, 0, len(byDate))
	for date, accum := range byDate {
		m := accum.means()
		trends = append(trends, TrendPoint{
			Date:          date,
			FoodQuality:   round1(m[0]),
			FoodTaste:     round1(m[1]),
			StaffBehavior: round1(m[2]),
			Hygiene:       round1(m[3]),
			Ambience:      round1(m[4]),
			ServiceSpeed:  round1(m[5]),
		})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Date < trends[j].Date })

	return AnalyticsData{
		TotalFeedback:       totalVisits,
		Contacted:           contacted,
		AverageRating:       round1(sumMeans / float64(len(models.RatingCategories))),
		ResponseRate:        responseRate,
		TopCategory:         topCategory,
		WeeklyTrends:        trends,
		CategoryPerformance: performance,
		FeedbackVolume: []VolumeBucket{
			{Name: "Contacted", Value: contacted},
			{Name: "Pending", Value: documents - contacted},
		},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// categoryLabel turns a camelCase category name into a space-separated
// lower-case label, e.g. "foodQuality" -> "food quality".
func categoryLabel(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
