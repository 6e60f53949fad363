package insights

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/desertthunder/watchlog/internal/models"
)

const (
	minRecords   = 50
	maxRecords   = 150
	minWatchTime = 5   // minutes
	maxWatchTime = 120 // minutes
)

// Generator produces pseudo-random watch histories from a name pool.
//
// Not safe for concurrent use; handlers create one per request around a
// shared pool snapshot.
type Generator struct {
	pool models.NamePool
	rng  *rand.Rand
}

// NewGenerator creates a Generator drawing names from pool.
//
// A nil rng gets a time-seeded source; tests pass a seeded one for
// deterministic output.
func NewGenerator(pool models.NamePool, rng *rand.Rand) *Generator {
	if len(pool.Channels) == 0 {
		pool.Channels = defaultChannels
	}
	if len(pool.Categories) == 0 {
		pool.Categories = defaultCategories
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Generator{pool: pool, rng: rng}
}

// Generate produces a synthetic watch history covering the last days days.
//
// Between 50 and 150 records are drawn, each with a uniform duration in
// [5, 120] minutes and a timestamp uniform across the window ending now.
func (g *Generator) Generate(days int) []models.WatchRecord {
	return g.GenerateAt(days, time.Now())
}

// GenerateAt is Generate with an explicit window end, for tests that need a
// fixed reference time.
func (g *Generator) GenerateAt(days int, end time.Time) []models.WatchRecord {
	if days <= 0 {
		days = 30
	}

	start := end.AddDate(0, 0, -days)
	windowSeconds := int64(end.Sub(start) / time.Second)

	count := minRecords + g.rng.Intn(maxRecords-minRecords+1)
	records := make([]models.WatchRecord, count)

	for i := range records {
		category := g.pool.Categories[g.rng.Intn(len(g.pool.Categories))]
		channel := g.pool.Channels[g.rng.Intn(len(g.pool.Channels))]

		records[i] = models.WatchRecord{
			VideoID:      fmt.Sprintf("video_%d", i),
			Title:        fmt.Sprintf("Sample Video %d by %s", i, channel),
			ChannelName:  channel,
			CategoryID:   category.ID,
			CategoryName: category.Name,
			WatchMinutes: minWatchTime + g.rng.Intn(maxWatchTime-minWatchTime+1),
			WatchedAt:    start.Add(time.Duration(g.rng.Int63n(windowSeconds)) * time.Second),
		}
	}

	return records
}
