// API client for a running WatchLog server
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/watchlog/internal/models"
)

// APIService provides methods for making HTTP requests to the WatchLog API.
type APIService struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewAPIService creates a new API client. An empty baseURL targets a local
// server on the default port.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{baseURL: baseURL, httpClient: client}
}

// SetToken stores the JWT sent as a bearer header on subsequent requests.
func (a *APIService) SetToken(token string) {
	a.token = token
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

func (a *APIService) do(ctx context.Context, method, path string, body []byte) (*APIResponse, error) {
	fullURL := a.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	var jsonData any
	if err := json.Unmarshal(respBody, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPost, path, data)
}

// decode performs a request and unmarshals a 2xx JSON body into result.
func (a *APIService) decode(ctx context.Context, method, path string, result any) error {
	resp, err := a.do(ctx, method, path, nil)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(resp.Body, &errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Dashboard fetches the aggregated summary for a lookback window.
func (a *APIService) Dashboard(ctx context.Context, days int) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	path := fmt.Sprintf("/api/dashboard?days=%d", days)
	if err := a.decode(ctx, http.MethodGet, path, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Videos fetches raw watch records.
func (a *APIService) Videos(ctx context.Context, days, limit int) ([]models.WatchRecord, error) {
	var records []models.WatchRecord
	path := fmt.Sprintf("/api/videos?days=%d&limit=%d", days, limit)
	if err := a.decode(ctx, http.MethodGet, path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Categories fetches the available category list.
func (a *APIService) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := a.decode(ctx, http.MethodGet, "/api/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Sync triggers an external fetch and pool regeneration on the server.
func (a *APIService) Sync(ctx context.Context) (*models.SyncStatus, error) {
	var status models.SyncStatus
	if err := a.decode(ctx, http.MethodPost, "/api/sync-youtube-data", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Me fetches the authenticated user's profile.
func (a *APIService) Me(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := a.decode(ctx, http.MethodGet, "/api/auth/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
