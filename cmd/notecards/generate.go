package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/api"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/events"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/render"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/service"
)

func newGenerateCmd(build componentsBuilder) *cobra.Command {
	var (
		keywords     string
		asJSON       bool
		width        int
		randomColors bool
		quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "generate [URL]",
		Short: "Generate note cards for a video",
		Example: `  notecards generate "https://www.youtube.com/watch?v=dQw4w9WgXcQ" -k "goroutines, channels"
  notecards generate https://youtu.be/dQw4w9WgXcQ -k closures --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), render.TerminalError(err.Error()))
				return err
			}
			defer components.Close()

			if !quiet {
				components.Events.RegisterHandler(progressPrinter(cmd))
			}

			result, err := components.Service.Generate(cmd.Context(), service.GenerateInput{
				URL:      args[0],
				Keywords: keywords,
			})
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), render.TerminalError(api.GetSafeErrorMessage(err)))
				return err
			}

			resp := api.NewNoteCardsResponse(result, render.PickerFor(randomColors))
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			fmt.Fprint(cmd.OutOrStdout(), render.TerminalCards(resp.VideoID, resp.Cards, width))
			return nil
		},
	}

	cmd.Flags().StringVarP(&keywords, "keywords", "k", "", "Comma-separated keywords to focus the cards on")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the cards as JSON")
	cmd.Flags().IntVarP(&width, "width", "w", 80, "Card width in columns (0 for unbounded)")
	cmd.Flags().BoolVar(&randomColors, "random-colors", false, "Pick card colours at random")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print progress messages")
	return cmd
}

// progressPrinter writes the start of each pipeline step to stderr.
func progressPrinter(cmd *cobra.Command) events.EventHandler {
	return events.HandlerFunc(func(_ context.Context, e *events.ProgressEvent) error {
		if e.Status == events.StatusFailed {
			return nil
		}
		_, err := fmt.Fprintln(cmd.ErrOrStderr(), render.TerminalProgress(e.Message))
		return err
	})
}
