// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"

	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/services"
)

// MockYouTubeAPI is a configurable test double for [services.YouTubeAPI].
//
// Zero value behaves as a healthy service returning fixed names; set the
// error fields to simulate collaborator failures.
type MockYouTubeAPI struct {
	AuthenticateErr  error
	ChannelErr       error
	SubscriptionsErr error
	CategoriesErr    error
	PlaylistsErr     error

	ChannelTitle      string
	SubscriptionNames []string
	CategoryList      []models.Category
	PlaylistList      []services.PlaylistInfo

	LastToken string
}

var _ services.YouTubeAPI = (*MockYouTubeAPI)(nil)

func (m *MockYouTubeAPI) Authenticate(ctx context.Context, credentials map[string]string) error {
	if m.AuthenticateErr != nil {
		return m.AuthenticateErr
	}
	m.LastToken = credentials["access_token"]
	return nil
}

func (m *MockYouTubeAPI) Channel(ctx context.Context) (*services.ChannelInfo, error) {
	if m.ChannelErr != nil {
		return nil, m.ChannelErr
	}
	title := m.ChannelTitle
	if title == "" {
		title = "Mock Channel"
	}
	return &services.ChannelInfo{ID: "UC-mock", Title: title}, nil
}

func (m *MockYouTubeAPI) Subscriptions(ctx context.Context) ([]string, error) {
	if m.SubscriptionsErr != nil {
		return nil, m.SubscriptionsErr
	}
	return m.SubscriptionNames, nil
}

func (m *MockYouTubeAPI) Playlists(ctx context.Context) ([]services.PlaylistInfo, error) {
	if m.PlaylistsErr != nil {
		return nil, m.PlaylistsErr
	}
	return m.PlaylistList, nil
}

func (m *MockYouTubeAPI) Categories(ctx context.Context, region string) ([]models.Category, error) {
	if m.CategoriesErr != nil {
		return nil, m.CategoriesErr
	}
	return m.CategoryList, nil
}

func (m *MockYouTubeAPI) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	MaxWrites int
	written   int
	Target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.MaxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.Target.Write(p)
}
