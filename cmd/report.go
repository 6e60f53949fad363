package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/watchlog/internal/formatter"
	"github.com/desertthunder/watchlog/internal/shared"
	"github.com/urfave/cli/v3"
)

// Report fetches a dashboard summary from the server and writes it to a file.
func (r *Runner) Report(ctx context.Context, cmd *cli.Command) error {
	days := int(cmd.Int("days"))
	format := cmd.String("format")
	output := cmd.String("output")

	token, err := loadToken()
	if err != nil {
		return err
	}
	r.api.SetToken(token)

	r.logger.Info("fetching dashboard", "days", days)

	summary, err := r.api.Dashboard(ctx, days)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	switch format {
	case "csv":
		records, err := r.api.Videos(ctx, days, 150)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		result, err := formatter.WriteCSVExport(records, summary, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Wrote %s and %s\n", result.RecordsFile, result.SummaryFile)
		return nil

	case "markdown", "md":
		path, err := formatter.WriteMarkdownExport(summary, days, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Wrote %s\n", path)
		return nil

	case "text", "txt":
		path, err := formatter.WriteTextExport(summary, days, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Wrote %s\n", path)
		return nil

	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}
