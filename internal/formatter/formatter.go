// package formatter provides functions to export watch history and dashboard summaries to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/desertthunder/watchlog/internal/models"
	"github.com/desertthunder/watchlog/internal/shared"
)

// ExportToCSV converts watch records to CSV format with columns: VideoID, Title, Channel, Category, Minutes, WatchedAt
func ExportToCSV(records []models.WatchRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"VideoID", "Title", "Channel", "Category", "Minutes", "WatchedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.VideoID,
			record.Title,
			record.ChannelName,
			record.CategoryName,
			strconv.Itoa(record.WatchMinutes),
			record.WatchedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a dashboard summary to a Markdown report for the given lookback window
func ExportToMarkdown(summary *models.DashboardSummary, days int) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Watch Report (last %d days)\n\n", days))
	buf.WriteString(fmt.Sprintf("**Total watch time**: %s\n", shared.FormatMinutes(summary.TotalWatchTime)))
	buf.WriteString(fmt.Sprintf("**Daily average**: %.1f minutes\n", summary.DailyAverage))
	buf.WriteString(fmt.Sprintf("**Top category**: %s\n\n", summary.TopCategory))

	buf.WriteString("## Categories\n\n")
	buf.WriteString("| Category | Minutes | Share |\n")
	buf.WriteString("|----------|---------|-------|\n")
	for _, category := range summary.CategoryBreakdown {
		buf.WriteString(fmt.Sprintf("| %s | %d | %.1f%% |\n", category.Category, category.Minutes, category.Percentage))
	}

	buf.WriteString("\n## Top Channels\n\n")
	for i, channel := range summary.TopChannels {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, channel.Channel, shared.FormatMinutes(channel.Minutes)))
	}

	buf.WriteString("\n## Daily Pattern\n\n")
	for _, day := range summary.DailyPattern {
		buf.WriteString(fmt.Sprintf("- %s: %s\n", day.Day, shared.FormatMinutes(day.Minutes)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a dashboard summary to plain text format
func ExportToText(summary *models.DashboardSummary, days int) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Watch report, last %d days\n", days))
	buf.WriteString(fmt.Sprintf("Total: %s\n", shared.FormatMinutes(summary.TotalWatchTime)))
	buf.WriteString(fmt.Sprintf("Daily average: %.1f minutes\n", summary.DailyAverage))
	buf.WriteString(fmt.Sprintf("Top category: %s\n\n", summary.TopCategory))

	for i, channel := range summary.TopChannels {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, channel.Channel, shared.FormatMinutes(channel.Minutes)))
	}

	return buf.Bytes(), nil
}

// ToSummaryJSON generates an indented JSON representation of a dashboard summary
func ToSummaryJSON(summary *models.DashboardSummary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	RecordsFile string
	SummaryFile string
}

// WriteCSVExport exports watch records to CSV with an accompanying summary JSON file.
//
// Creates {base}_records.csv and {base}_summary.json
func WriteCSVExport(records []models.WatchRecord, summary *models.DashboardSummary, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "watchlog"
	}

	csvData, err := ExportToCSV(records)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	recordsFile := baseFilepath + "_records.csv"
	if err := os.WriteFile(recordsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	summaryJSON, err := ToSummaryJSON(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary JSON: %w", err)
	}

	summaryFile := baseFilepath + "_summary.json"
	if err := os.WriteFile(summaryFile, summaryJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write summary file: %w", err)
	}

	return &CSVExportResult{
		RecordsFile: recordsFile,
		SummaryFile: summaryFile,
	}, nil
}

// WriteMarkdownExport exports a dashboard summary to a Markdown report file.
//
// Defaults to watchlog_report.md as the filename.
func WriteMarkdownExport(summary *models.DashboardSummary, days int, filepath string) (string, error) {
	if filepath == "" {
		filepath = "watchlog_report.md"
	}

	mdData, err := ExportToMarkdown(summary, days)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports a dashboard summary to plain text.
//
// Defaults to watchlog_report.txt as the filename.
func WriteTextExport(summary *models.DashboardSummary, days int, filepath string) (string, error) {
	if filepath == "" {
		filepath = "watchlog_report.txt"
	}

	textData, err := ExportToText(summary, days)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
