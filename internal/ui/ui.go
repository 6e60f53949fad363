package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/services"
	"github.com/desertthunder/watchlog/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	DashboardView ViewState = iota
	VideoListView
	SyncView
)

// maxBarWidth caps the bar chart width regardless of terminal size.
const maxBarWidth = 40

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	api       *services.APIService
	width     int
	height    int
	days      int
	summary   *models.DashboardSummary
	videoList list.Model
	sync      *models.SyncStatus
	loading   bool
	err       error
	help      help.Model
	keys      keyMap
}

// videoItem wraps [models.WatchRecord] to implement list.Item.
type videoItem struct {
	record models.WatchRecord
}

func (i videoItem) FilterValue() string { return i.record.Title }
func (i videoItem) Title() string       { return i.record.Title }
func (i videoItem) Description() string {
	return fmt.Sprintf("%s • %s • %s",
		i.record.ChannelName,
		i.record.CategoryName,
		shared.FormatMinutes(i.record.WatchMinutes),
	)
}

type summaryFetchedMsg struct {
	summary *models.DashboardSummary
	err     error
}

type videosFetchedMsg struct {
	records []models.WatchRecord
	err     error
}

type syncCompleteMsg struct {
	status *models.SyncStatus
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, api *services.APIService) *Model {
	return &Model{
		ctx:  ctx,
		view: DashboardView,
		api:  api,
		days: 30,
		help: help.New(),
		keys: newKeyMap(),
	}
}

// Init initializes the TUI by fetching the default dashboard window.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.fetchSummary()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.videoList.Width() == 0 {
			m.videoList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case DashboardView:
			return m.handleDashboardKeys(msg)
		case VideoListView:
			return m.handleVideoListKeys(msg)
		case SyncView:
			return m.handleSyncKeys(msg)
		}

	case summaryFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.summary = msg.summary
		return m, nil

	case videosFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.view = DashboardView
			return m, nil
		}
		items := make([]list.Item, len(msg.records))
		for i, record := range msg.records {
			items[i] = videoItem{record: record}
		}
		m.videoList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.videoList.Title = fmt.Sprintf("Watch History (%d days)", m.days)
		m.videoList.SetSize(m.width-4, m.height-8)
		m.view = VideoListView
		return m, nil

	case syncCompleteMsg:
		m.loading = false
		m.sync = msg.status
		m.err = msg.err
		m.view = SyncView
		return m, nil
	}

	if m.view == VideoListView {
		var cmd tea.Cmd
		m.videoList, cmd = m.videoList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case DashboardView:
		return m.renderDashboard()
	case VideoListView:
		return m.renderVideoList()
	case SyncView:
		return m.renderSync()
	default:
		return ""
	}
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "1":
		return m.switchWindow(7)
	case "2":
		return m.switchWindow(30)
	case "3":
		return m.switchWindow(90)
	case "r":
		m.loading = true
		return m, m.fetchSummary()
	case "v":
		m.loading = true
		return m, m.fetchVideos()
	case "s":
		m.loading = true
		return m, m.startSync()
	}
	return m, nil
}

func (m *Model) handleVideoListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = DashboardView
		return m, nil
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return m, cmd
}

func (m *Model) handleSyncKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.view = DashboardView
		m.loading = true
		return m, m.fetchSummary()
	}
	return m, nil
}

func (m *Model) switchWindow(days int) (tea.Model, tea.Cmd) {
	if m.days == days {
		return m, nil
	}
	m.days = days
	m.loading = true
	return m, m.fetchSummary()
}

func (m *Model) fetchSummary() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.api.Dashboard(m.ctx, m.days)
		return summaryFetchedMsg{summary: summary, err: err}
	}
}

func (m *Model) fetchVideos() tea.Cmd {
	return func() tea.Msg {
		records, err := m.api.Videos(m.ctx, m.days, 50)
		return videosFetchedMsg{records: records, err: err}
	}
}

func (m *Model) startSync() tea.Cmd {
	return func() tea.Msg {
		status, err := m.api.Sync(m.ctx)
		return syncCompleteMsg{status: status, err: err}
	}
}

func (m *Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(fmt.Sprintf("WatchLog Dashboard • last %d days", m.days)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if m.loading {
		b.WriteString(styles.help.Render("Loading..."))
		b.WriteString("\n\n")
	} else if m.summary != nil {
		b.WriteString(fmt.Sprintf("Total watch time: %s\n", styles.ok.Render(shared.FormatMinutes(m.summary.TotalWatchTime))))
		b.WriteString(fmt.Sprintf("Daily average:    %.1f min\n", m.summary.DailyAverage))
		b.WriteString(fmt.Sprintf("Top category:     %s\n\n", m.summary.TopCategory))

		b.WriteString(styles.label.Render("Categories"))
		b.WriteString("\n")
		b.WriteString(m.renderCategoryBars())

		b.WriteString("\n")
		b.WriteString(styles.label.Render("Daily pattern"))
		b.WriteString("\n")
		b.WriteString(m.renderDailyBars())

		b.WriteString("\n")
		b.WriteString(styles.label.Render("Top channels"))
		b.WriteString("\n")
		for i, channel := range m.summary.TopChannels {
			b.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, channel.Channel, shared.FormatMinutes(channel.Minutes)))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

// renderCategoryBars draws a horizontal bar per category scaled to the
// largest category's minutes.
func (m *Model) renderCategoryBars() string {
	if m.summary == nil || len(m.summary.CategoryBreakdown) == 0 {
		return styles.help.Render("No data") + "\n"
	}

	peak := m.summary.CategoryBreakdown[0].Minutes
	for _, category := range m.summary.CategoryBreakdown {
		if category.Minutes > peak {
			peak = category.Minutes
		}
	}

	var b strings.Builder
	for _, category := range m.summary.CategoryBreakdown {
		bar := scaleBar(category.Minutes, peak)
		b.WriteString(fmt.Sprintf("%-18s %s %.1f%%\n", category.Category, styles.bar.Render(bar), category.Percentage))
	}
	return b.String()
}

func (m *Model) renderDailyBars() string {
	if m.summary == nil || len(m.summary.DailyPattern) == 0 {
		return styles.help.Render("No data") + "\n"
	}

	peak := 0
	for _, day := range m.summary.DailyPattern {
		if day.Minutes > peak {
			peak = day.Minutes
		}
	}

	var b strings.Builder
	for _, day := range m.summary.DailyPattern {
		bar := scaleBar(day.Minutes, peak)
		b.WriteString(fmt.Sprintf("%-10s %s %s\n", day.Day, styles.bar.Render(bar), shared.FormatMinutes(day.Minutes)))
	}
	return b.String()
}

// scaleBar maps minutes onto a bar of at most maxBarWidth cells. Nonzero
// values always draw at least one cell.
func scaleBar(minutes, peak int) string {
	if peak <= 0 || minutes <= 0 {
		return ""
	}
	width := minutes * maxBarWidth / peak
	if width < 1 {
		width = 1
	}
	return strings.Repeat("█", width)
}

func (m *Model) renderVideoList() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.videoList.View(), helpView)
}

func (m *Model) renderSync() string {
	title := styles.title.Render("YouTube Sync")

	var body string
	switch {
	case m.loading:
		body = styles.help.Render("Syncing...")
	case m.err != nil:
		body = styles.err.Render(fmt.Sprintf("Sync failed: %v", m.err))
	case m.sync != nil:
		line := fmt.Sprintf("Status: %s\n%s", m.sync.Status, m.sync.Message)
		switch m.sync.Status {
		case models.SyncSuccess:
			body = styles.ok.Render(line)
		case models.SyncPartialSuccess:
			body = styles.warn.Render(line)
			if m.sync.Note != "" {
				body += "\n" + styles.help.Render(m.sync.Note)
			}
		default:
			body = styles.err.Render(line)
		}
	}

	back := styles.help.Render("esc/enter: back to dashboard • q: quit")
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, back)
}
