package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchChannel Phase = iota
	FetchSubscriptions
	FetchCategories
	BuildPool
)

func (p Phase) String() string {
	switch p {
	case FetchChannel:
		return "fetch_channel"
	case FetchSubscriptions:
		return "fetch_subscriptions"
	case FetchCategories:
		return "fetch_categories"
	case BuildPool:
		return "build_pool"
	default:
		return ""
	}
}

func fetchChannelUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchChannel,
		Step:    step,
		Total:   total,
		Message: "Fetching channel info from YouTube...",
	}
}

func fetchSubscriptionsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSubscriptions,
		Step:    step,
		Total:   total,
		Message: "Fetching subscriptions...",
	}
}

func fetchCategoriesUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCategories,
		Step:    step,
		Total:   total,
		Message: "Fetching video categories...",
	}
}

func buildPoolUpdate(step, total int, channels, categories int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BuildPool,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Seeded pool with %d channels and %d categories", channels, categories),
	}
}
