package main

import (
	"github.com/spf13/cobra"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/render"
)

func newRootCmd(build componentsBuilder) *cobra.Command {
	root := &cobra.Command{
		Use:   "notecards",
		Short: render.AppTitle,
		Long: `Create study note cards from a YouTube video.

The transcript is fetched, translated when it is not in the configured
language, and summarised into note cards around your keywords.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(build),
		newLanguagesCmd(build),
		newVideoCmd(),
	)
	return root
}
