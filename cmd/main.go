package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/watchlog/internal/services"
	"github.com/desertthunder/watchlog/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	shared.LoadEnv(config, ".env")

	youtubeService := services.NewYouTubeService("", nil)
	apiService := services.NewAPIService(fmt.Sprintf("http://%s", config.Server.Addr()), nil)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		YouTube: youtubeService,
		API:     apiService,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "watchlog",
		Usage:    "Mock YouTube watch analytics server and dashboard",
		Version:  "1.0.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
