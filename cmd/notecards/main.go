// Package main implements the notecards command line tool, which prints note
// cards for a video link without starting the web server.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/app"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/config"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/platform/logger"
)

func main() {
	if err := newRootCmd(loadComponents).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// componentsBuilder creates the pipeline. Logs go to logOut so stdout stays
// clean for card output.
type componentsBuilder func(ctx context.Context, logOut io.Writer) (*app.Components, error)

func loadComponents(ctx context.Context, logOut io.Writer) (*app.Components, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.SetupWithWriter(cfg.Server, logOut)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	return app.New(ctx, cfg, log)
}
