package insights

import (
	"math"
	"sort"
	"time"

	"github.com/desertthunder/watchlog/internal/models"
)

// TopChannelCount is how many channels the dashboard ranking keeps.
const TopChannelCount = 5

var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Analyze reduces a watch history to the dashboard summary for a window of
// windowDays days.
//
// An empty record list yields zero totals, a 0 daily average, and an empty
// breakdown with topCategory "No data". Percentages always sum to ~100 for
// non-empty input and are defined as 0 when total watch time is 0.
func Analyze(records []models.WatchRecord, windowDays int) models.DashboardSummary {
	total := 0
	for _, r := range records {
		total += r.WatchMinutes
	}

	var dailyAverage float64
	if len(records) > 0 && windowDays > 0 {
		dailyAverage = math.Round(float64(total)/float64(windowDays)*10) / 10
	}

	breakdown := categoryBreakdown(records, total)

	topCategory := "No data"
	if len(breakdown) > 0 {
		topCategory = breakdown[0].Category
	}

	return models.DashboardSummary{
		TotalWatchTime:    total,
		DailyAverage:      dailyAverage,
		TopCategory:       topCategory,
		CategoryBreakdown: breakdown,
		TopChannels:       TopChannels(records, TopChannelCount),
		DailyPattern:      dailyPattern(records),
	}
}

// categoryBreakdown groups records by category name, sorted descending by
// minutes. Ties keep first-appearance order so the result is stable.
func categoryBreakdown(records []models.WatchRecord, total int) []models.CategorySummary {
	minutes := make(map[string]int)
	var order []string

	for _, r := range records {
		if _, seen := minutes[r.CategoryName]; !seen {
			order = append(order, r.CategoryName)
		}
		minutes[r.CategoryName] += r.WatchMinutes
	}

	breakdown := make([]models.CategorySummary, 0, len(order))
	for _, name := range order {
		var pct float64
		if total > 0 {
			pct = float64(minutes[name]) / float64(total) * 100
		}
		breakdown = append(breakdown, models.CategorySummary{
			Category:   name,
			Minutes:    minutes[name],
			Percentage: pct,
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Minutes > breakdown[j].Minutes
	})

	return breakdown
}

// TopChannels ranks channels by total minutes descending and truncates to n.
// Ties keep first-appearance order.
func TopChannels(records []models.WatchRecord, n int) []models.ChannelSummary {
	minutes := make(map[string]int)
	var order []string

	for _, r := range records {
		if _, seen := minutes[r.ChannelName]; !seen {
			order = append(order, r.ChannelName)
		}
		minutes[r.ChannelName] += r.WatchMinutes
	}

	ranking := make([]models.ChannelSummary, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, models.ChannelSummary{Channel: name, Minutes: minutes[name]})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Minutes > ranking[j].Minutes
	})

	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}

	return ranking
}

// dailyPattern sums minutes per weekday, Monday through Sunday, with one
// entry for every weekday even when no records fall on it.
func dailyPattern(records []models.WatchRecord) []models.DailyPattern {
	totals := make(map[string]int, len(weekdays))
	for _, r := range records {
		totals[weekdayName(r.WatchedAt)] += r.WatchMinutes
	}

	pattern := make([]models.DailyPattern, len(weekdays))
	for i, day := range weekdays {
		pattern[i] = models.DailyPattern{Day: day, Minutes: totals[day]}
	}

	return pattern
}

// weekdayName maps a timestamp to the Monday-first weekday name.
func weekdayName(t time.Time) string {
	// time.Weekday is Sunday-first; shift so Monday is index 0.
	return weekdays[(int(t.Weekday())+6)%7]
}
