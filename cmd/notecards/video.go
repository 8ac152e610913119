package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/domain"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/render"
)

// newVideoCmd parses a link offline; it needs no configuration.
func newVideoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "video [URL]",
		Short: "Show the video ID, watch and embed links for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ExtractVideoID(args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), render.TerminalError("Invalid YouTube URL."))
				return err
			}

			v := render.NewVideoView(id)
			fmt.Fprintf(cmd.OutOrStdout(), "id:    %s\nwatch: %s\nembed: %s\n", v.ID, v.WatchURL, v.EmbedURL)
			return nil
		},
	}
}
