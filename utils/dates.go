package utils

import "time"

const DateKeyLayout = "2006-01-02"

// DateKey truncates a timestamp to its UTC calendar date. All dedup and
// trend grouping runs on this granularity.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// PeriodWindowStart returns the start of the analytics window: 7 days back
// for "week", 30 days back for anything else.
func PeriodWindowStart(now time.Time, period string) time.Time {
	if period == "week" {
		return now.AddDate(0, 0, -7)
	}
	return now.AddDate(0, 0, -30)
}
