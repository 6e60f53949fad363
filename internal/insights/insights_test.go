package insights

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/desertthunder/watchlog/internal/models"
)

func record(channel, category string, minutes int, watchedAt time.Time) models.WatchRecord {
	return models.WatchRecord{
		ChannelName:  channel,
		CategoryName: category,
		WatchMinutes: minutes,
		WatchedAt:    watchedAt,
	}
}

func TestGenerator(t *testing.T) {
	end := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("record count stays within bounds", func(t *testing.T) {
		gen := NewGenerator(DefaultPool(), rand.New(rand.NewSource(1)))
		for i := 0; i < 20; i++ {
			records := gen.GenerateAt(30, end)
			if len(records) < minRecords || len(records) > maxRecords {
				t.Fatalf("expected between %d and %d records, got %d", minRecords, maxRecords, len(records))
			}
		}
	})

	t.Run("durations stay within bounds", func(t *testing.T) {
		gen := NewGenerator(DefaultPool(), rand.New(rand.NewSource(2)))
		for _, r := range gen.GenerateAt(30, end) {
			if r.WatchMinutes < minWatchTime || r.WatchMinutes > maxWatchTime {
				t.Errorf("watch time %d outside [%d, %d]", r.WatchMinutes, minWatchTime, maxWatchTime)
			}
		}
	})

	t.Run("timestamps stay within the window", func(t *testing.T) {
		days := 7
		start := end.AddDate(0, 0, -days)
		gen := NewGenerator(DefaultPool(), rand.New(rand.NewSource(3)))

		for _, r := range gen.GenerateAt(days, end) {
			if r.WatchedAt.Before(start) || r.WatchedAt.After(end) {
				t.Errorf("watched_at %v outside window [%v, %v]", r.WatchedAt, start, end)
			}
		}
	})

	t.Run("seeded generator is deterministic", func(t *testing.T) {
		first := NewGenerator(DefaultPool(), rand.New(rand.NewSource(42))).GenerateAt(30, end)
		second := NewGenerator(DefaultPool(), rand.New(rand.NewSource(42))).GenerateAt(30, end)

		if len(first) != len(second) {
			t.Fatalf("expected identical lengths, got %d and %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("records diverge at index %d: %+v vs %+v", i, first[i], second[i])
			}
		}
	})

	t.Run("draws names from the provided pool", func(t *testing.T) {
		pool := models.NamePool{
			Channels:   []string{"Solo Channel"},
			Categories: []models.Category{{ID: 20, Name: "Gaming"}},
		}
		gen := NewGenerator(pool, rand.New(rand.NewSource(4)))

		for _, r := range gen.GenerateAt(30, end) {
			if r.ChannelName != "Solo Channel" {
				t.Fatalf("expected channel from pool, got %q", r.ChannelName)
			}
			if r.CategoryName != "Gaming" || r.CategoryID != 20 {
				t.Fatalf("expected category from pool, got %q (%d)", r.CategoryName, r.CategoryID)
			}
		}
	})

	t.Run("empty pool falls back to defaults", func(t *testing.T) {
		gen := NewGenerator(models.NamePool{}, rand.New(rand.NewSource(5)))
		records := gen.GenerateAt(30, end)
		if len(records) == 0 {
			t.Fatal("expected records from default pool")
		}
	})
}

func TestAnalyze(t *testing.T) {
	monday := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, time.June, 8, 10, 0, 0, 0, time.UTC)

	t.Run("example from the dashboard contract", func(t *testing.T) {
		records := []models.WatchRecord{
			record("A", "Tech", 60, monday),
			record("B", "Music", 40, sunday),
		}

		summary := Analyze(records, 30)

		if summary.TotalWatchTime != 100 {
			t.Errorf("expected total 100, got %d", summary.TotalWatchTime)
		}
		if summary.TopCategory != "Tech" {
			t.Errorf("expected top category Tech, got %s", summary.TopCategory)
		}
		if len(summary.CategoryBreakdown) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(summary.CategoryBreakdown))
		}
		if summary.CategoryBreakdown[0].Percentage != 60 {
			t.Errorf("expected Tech at 60%%, got %v", summary.CategoryBreakdown[0].Percentage)
		}
		if summary.CategoryBreakdown[1].Percentage != 40 {
			t.Errorf("expected Music at 40%%, got %v", summary.CategoryBreakdown[1].Percentage)
		}
	})

	t.Run("category minutes sum to total", func(t *testing.T) {
		gen := NewGenerator(DefaultPool(), rand.New(rand.NewSource(7)))
		records := gen.GenerateAt(30, sunday)
		summary := Analyze(records, 30)

		sum := 0
		for _, c := range summary.CategoryBreakdown {
			sum += c.Minutes
		}
		if sum != summary.TotalWatchTime {
			t.Errorf("category minutes sum %d != total %d", sum, summary.TotalWatchTime)
		}
	})

	t.Run("percentages sum to 100 within tolerance", func(t *testing.T) {
		gen := NewGenerator(DefaultPool(), rand.New(rand.NewSource(8)))
		records := gen.GenerateAt(90, sunday)
		summary := Analyze(records, 90)

		sum := 0.0
		for _, c := range summary.CategoryBreakdown {
			sum += c.Percentage
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Errorf("percentages sum to %v, expected ~100", sum)
		}
	})

	t.Run("daily average divides by window days", func(t *testing.T) {
		records := []models.WatchRecord{
			record("A", "Tech", 70, monday),
		}
		summary := Analyze(records, 7)
		if summary.DailyAverage != 10 {
			t.Errorf("expected daily average 10, got %v", summary.DailyAverage)
		}
	})

	t.Run("daily average rounds to one decimal", func(t *testing.T) {
		records := []models.WatchRecord{
			record("A", "Tech", 100, monday),
		}
		summary := Analyze(records, 30)
		if summary.DailyAverage != 3.3 {
			t.Errorf("expected daily average 3.3, got %v", summary.DailyAverage)
		}
	})

	t.Run("channel ranking is descending with stable ties", func(t *testing.T) {
		records := []models.WatchRecord{
			record("First", "Tech", 30, monday),
			record("Second", "Tech", 30, monday),
			record("Big", "Tech", 90, monday),
		}

		channels := Analyze(records, 7).TopChannels
		if len(channels) != 3 {
			t.Fatalf("expected 3 channels, got %d", len(channels))
		}
		if channels[0].Channel != "Big" {
			t.Errorf("expected Big first, got %s", channels[0].Channel)
		}
		// Equal minutes keep insertion order.
		if channels[1].Channel != "First" || channels[2].Channel != "Second" {
			t.Errorf("tie broken unstably: %s, %s", channels[1].Channel, channels[2].Channel)
		}
	})

	t.Run("channel ranking truncates to top five", func(t *testing.T) {
		var records []models.WatchRecord
		for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
			records = append(records, record(name, "Tech", 10, monday))
		}

		channels := Analyze(records, 7).TopChannels
		if len(channels) != TopChannelCount {
			t.Errorf("expected %d channels, got %d", TopChannelCount, len(channels))
		}
	})

	t.Run("daily pattern covers all weekdays", func(t *testing.T) {
		records := []models.WatchRecord{
			record("A", "Tech", 25, monday),
			record("B", "Tech", 35, sunday),
		}

		pattern := Analyze(records, 7).DailyPattern
		if len(pattern) != 7 {
			t.Fatalf("expected 7 weekday entries, got %d", len(pattern))
		}
		if pattern[0].Day != "Monday" || pattern[0].Minutes != 25 {
			t.Errorf("expected Monday 25, got %s %d", pattern[0].Day, pattern[0].Minutes)
		}
		if pattern[6].Day != "Sunday" || pattern[6].Minutes != 35 {
			t.Errorf("expected Sunday 35, got %s %d", pattern[6].Day, pattern[6].Minutes)
		}
		for _, p := range pattern[1:6] {
			if p.Minutes != 0 {
				t.Errorf("expected %s to be 0, got %d", p.Day, p.Minutes)
			}
		}
	})

	t.Run("empty record list yields zeros without panic", func(t *testing.T) {
		summary := Analyze(nil, 30)

		if summary.TotalWatchTime != 0 {
			t.Errorf("expected total 0, got %d", summary.TotalWatchTime)
		}
		if summary.DailyAverage != 0 {
			t.Errorf("expected daily average 0, got %v", summary.DailyAverage)
		}
		if summary.TopCategory != "No data" {
			t.Errorf("expected top category 'No data', got %s", summary.TopCategory)
		}
		if len(summary.CategoryBreakdown) != 0 {
			t.Errorf("expected empty breakdown, got %d entries", len(summary.CategoryBreakdown))
		}
		if len(summary.DailyPattern) != 7 {
			t.Errorf("expected 7 weekday entries, got %d", len(summary.DailyPattern))
		}
	})

	t.Run("zero total watch time defines percentages as zero", func(t *testing.T) {
		records := []models.WatchRecord{
			record("A", "Tech", 0, monday),
		}
		summary := Analyze(records, 7)
		if len(summary.CategoryBreakdown) != 1 {
			t.Fatalf("expected 1 category, got %d", len(summary.CategoryBreakdown))
		}
		if pct := summary.CategoryBreakdown[0].Percentage; pct != 0 || math.IsNaN(pct) {
			t.Errorf("expected percentage 0, got %v", pct)
		}
	})
}
