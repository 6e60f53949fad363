// YouTube Data API v3 client
//
// Response types based on https://developers.google.com/youtube/v3/docs
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/watchlog/internal/models"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// ChannelInfo describes the authenticated user's channel.
type ChannelInfo struct {
	ID              string
	Title           string
	SubscriberCount string
	VideoCount      string
}

// PlaylistInfo describes one of the user's playlists.
type PlaylistInfo struct {
	ID        string
	Title     string
	ItemCount int
}

// YouTubeAPI defines the external-data collaborator the sync task depends on.
type YouTubeAPI interface {
	// Authenticate stores the Google access token used on subsequent requests.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// Channel retrieves the authenticated user's own channel.
	Channel(ctx context.Context) (*ChannelInfo, error)

	// Subscriptions retrieves the names of channels the user subscribes to.
	Subscriptions(ctx context.Context) ([]string, error)

	// Playlists retrieves the user's playlists.
	Playlists(ctx context.Context) ([]PlaylistInfo, error)

	// Categories retrieves the video categories assignable in a region.
	Categories(ctx context.Context, region string) ([]models.Category, error)

	// Name returns the service name for logging.
	Name() string
}

// YouTubeService implements [YouTubeAPI] against the real Data API.
type YouTubeService struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

var _ YouTubeAPI = (*YouTubeService)(nil)

// NewYouTubeService creates a new Data API client. An empty baseURL uses the
// production endpoint.
func NewYouTubeService(baseURL string, client *http.Client) *YouTubeService {
	if baseURL == "" {
		baseURL = defaultYouTubeBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &YouTubeService{baseURL: baseURL, httpClient: client}
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube Data API"
}

// Authenticate stores the access token for subsequent requests.
//
// Expects credentials["access_token"] from the user's session.
func (y *YouTubeService) Authenticate(ctx context.Context, credentials map[string]string) error {
	token, ok := credentials["access_token"]
	if !ok || token == "" {
		return fmt.Errorf("missing access_token in credentials")
	}

	y.accessToken = token
	return nil
}

func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if y.accessToken == "" {
		return fmt.Errorf("not authenticated: call Authenticate first")
	}

	apiURL := y.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+y.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("youtube API error (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("youtube API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Channel retrieves the authenticated user's own channel.
//
// Calls GET /channels?part=snippet,statistics&mine=true.
func (y *YouTubeService) Channel(ctx context.Context) (*ChannelInfo, error) {
	var listResp struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title string `json:"title"`
			} `json:"snippet"`
			Statistics struct {
				SubscriberCount string `json:"subscriberCount"`
				VideoCount      string `json:"videoCount"`
			} `json:"statistics"`
		} `json:"items"`
	}

	params := url.Values{}
	params.Set("part", "snippet,statistics")
	params.Set("mine", "true")

	if err := y.doRequest(ctx, "/channels", params, &listResp); err != nil {
		return nil, err
	}
	if len(listResp.Items) == 0 {
		return nil, fmt.Errorf("no channel found for authenticated user")
	}

	item := listResp.Items[0]
	return &ChannelInfo{
		ID:              item.ID,
		Title:           item.Snippet.Title,
		SubscriberCount: item.Statistics.SubscriberCount,
		VideoCount:      item.Statistics.VideoCount,
	}, nil
}

// Subscriptions retrieves the names of subscribed channels.
//
// Calls GET /subscriptions?part=snippet&mine=true, following page tokens.
func (y *YouTubeService) Subscriptions(ctx context.Context) ([]string, error) {
	var names []string
	pageToken := ""

	for {
		var listResp struct {
			Items []struct {
				Snippet struct {
					Title string `json:"title"`
				} `json:"snippet"`
			} `json:"items"`
			NextPageToken string `json:"nextPageToken"`
		}

		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("mine", "true")
		params.Set("maxResults", "50")
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		if err := y.doRequest(ctx, "/subscriptions", params, &listResp); err != nil {
			return nil, err
		}

		for _, item := range listResp.Items {
			names = append(names, item.Snippet.Title)
		}

		if listResp.NextPageToken == "" {
			return names, nil
		}
		pageToken = listResp.NextPageToken
	}
}

// Playlists retrieves the user's playlists.
//
// Calls GET /playlists?part=snippet,contentDetails&mine=true.
func (y *YouTubeService) Playlists(ctx context.Context) ([]PlaylistInfo, error) {
	var listResp struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title string `json:"title"`
			} `json:"snippet"`
			ContentDetails struct {
				ItemCount int `json:"itemCount"`
			} `json:"contentDetails"`
		} `json:"items"`
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("mine", "true")
	params.Set("maxResults", "50")

	if err := y.doRequest(ctx, "/playlists", params, &listResp); err != nil {
		return nil, err
	}

	playlists := make([]PlaylistInfo, len(listResp.Items))
	for i, item := range listResp.Items {
		playlists[i] = PlaylistInfo{
			ID:        item.ID,
			Title:     item.Snippet.Title,
			ItemCount: item.ContentDetails.ItemCount,
		}
	}

	return playlists, nil
}

// Categories retrieves video categories assignable in the given region.
//
// Calls GET /videoCategories?part=snippet&regionCode={region}. An empty
// region defaults to US.
func (y *YouTubeService) Categories(ctx context.Context, region string) ([]models.Category, error) {
	if region == "" {
		region = "US"
	}

	var listResp struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title      string `json:"title"`
				Assignable bool   `json:"assignable"`
			} `json:"snippet"`
		} `json:"items"`
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("regionCode", region)

	if err := y.doRequest(ctx, "/videoCategories", params, &listResp); err != nil {
		return nil, err
	}

	var categories []models.Category
	for _, item := range listResp.Items {
		if !item.Snippet.Assignable {
			continue
		}
		var id int
		fmt.Sscanf(item.ID, "%d", &id)
		categories = append(categories, models.Category{ID: id, Name: item.Snippet.Title})
	}

	return categories, nil
}
