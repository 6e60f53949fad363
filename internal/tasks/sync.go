package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/watchlog/internal/insights"
	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/services"
	"github.com/desertthunder/watchlog/internal/shared"
)

// SyncResult contains all data from a sync operation.
type SyncResult struct {
	Status      string          // success, partial_success, or error
	Message     string          // Human-readable outcome
	ChannelName string          // Authenticated user's channel, when fetched
	Note        string          // Detail on degraded outcomes
	Pool        models.NamePool // Pool to seed the generator with
}

// SyncStatus converts the result into the API's sync response body.
func (r *SyncResult) SyncStatus() models.SyncStatus {
	return models.SyncStatus{
		Status:      r.Status,
		Message:     r.Message,
		ChannelName: r.ChannelName,
		Note:        r.Note,
	}
}

// SyncEngine defines the sync operation against the external data service.
type SyncEngine interface {
	// Sync fetches channel, subscription, and category names for the given
	// access token and assembles a generator pool. Collaborator failures
	// degrade the status instead of returning an error; err is non-nil only
	// for programming errors such as a missing service.
	Sync(ctx context.Context, progress chan<- ProgressUpdate, accessToken string) (*SyncResult, error)
}

// ProfileSync implements SyncEngine over a [services.YouTubeAPI].
type ProfileSync struct {
	youtube services.YouTubeAPI
	region  string
}

var _ SyncEngine = (*ProfileSync)(nil)

// NewProfileSync creates a ProfileSync. An empty region defaults to US when
// fetching categories.
func NewProfileSync(youtube services.YouTubeAPI, region string) *ProfileSync {
	return &ProfileSync{youtube: youtube, region: region}
}

const syncSteps = 4

// Sync runs the fetch-and-seed pipeline.
//
// The channel lookup is the gate: if it fails the whole sync reports "error"
// and the caller keeps fully synthetic data. Subscription or category
// failures downgrade to "partial_success" with the remaining names applied.
func (p *ProfileSync) Sync(ctx context.Context, progress chan<- ProgressUpdate, accessToken string) (*SyncResult, error) {
	if p.youtube == nil {
		return nil, fmt.Errorf("%w: youtube service not initialized", shared.ErrServiceUnavailable)
	}

	result := &SyncResult{Pool: insights.DefaultPool()}

	if err := p.youtube.Authenticate(ctx, map[string]string{"access_token": accessToken}); err != nil {
		result.Status = models.SyncError
		result.Message = "YouTube authentication failed"
		result.Note = fmt.Sprintf("using fully synthetic data: %v", err)
		return result, nil
	}

	p.sendProgress(progress, fetchChannelUpdate(1, syncSteps))
	channel, err := p.youtube.Channel(ctx)
	if err != nil {
		result.Status = models.SyncError
		result.Message = "Could not reach the YouTube Data API"
		result.Note = fmt.Sprintf("using fully synthetic data: %v", err)
		return result, nil
	}
	result.ChannelName = channel.Title

	degraded := false

	p.sendProgress(progress, fetchSubscriptionsUpdate(2, syncSteps))
	subscriptions, err := p.youtube.Subscriptions(ctx)
	if err != nil {
		degraded = true
		result.Note = appendNote(result.Note, fmt.Sprintf("subscriptions unavailable: %v", err))
	} else if len(subscriptions) > 0 {
		result.Pool.Channels = subscriptions
	}

	p.sendProgress(progress, fetchCategoriesUpdate(3, syncSteps))
	categories, err := p.youtube.Categories(ctx, p.region)
	if err != nil {
		degraded = true
		result.Note = appendNote(result.Note, fmt.Sprintf("categories unavailable: %v", err))
	} else if len(categories) > 0 {
		result.Pool.Categories = categories
	}

	p.sendProgress(progress, buildPoolUpdate(4, syncSteps, len(result.Pool.Channels), len(result.Pool.Categories)))

	if degraded {
		result.Status = models.SyncPartialSuccess
		result.Message = "Synced channel info; some data fell back to defaults"
	} else {
		result.Status = models.SyncSuccess
		result.Message = fmt.Sprintf("Synced YouTube data for %s", channel.Title)
	}

	return result, nil
}

// sendProgress sends an update without blocking when no listener is attached.
func (p *ProfileSync) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func appendNote(existing, addition string) string {
	if existing == "" {
		return addition
	}
	return existing + "; " + addition
}
