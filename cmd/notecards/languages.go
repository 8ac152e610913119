package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/api"
	"github.com/pardha-saradhi-raju/Next-Gen-YouTube-Prompt-Sheets-Creator/internal/render"
)

func newLanguagesCmd(build componentsBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "languages [URL]",
		Short: "List the caption languages of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := build(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), render.TerminalError(err.Error()))
				return err
			}
			defer components.Close()

			id, err := components.Service.Preview(args[0])
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), render.TerminalError(api.GetSafeErrorMessage(err)))
				return err
			}

			langs, err := components.Retriever.Languages(cmd.Context(), id)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), render.TerminalError(api.GetSafeErrorMessage(err)))
				return err
			}

			for _, code := range langs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, render.LanguageName(code))
			}
			return nil
		},
	}
}
