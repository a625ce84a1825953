package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/connorhough/qq/internal/config"
)

func newPromptCmd() *cobra.Command {
	var showPath bool

	promptCmd := &cobra.Command{
		Use:   "prompt",
		Short: "Show the system prompt sent with every question",
		Long: `Show the system prompt sent with every question.

Instructions in the custom prompt file are appended to the default prompt.
Use --path to print where that file lives.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showPath {
				path, err := config.CustomPromptPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}

			systemPrompt, err := loadSystemPrompt()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), systemPrompt)
			return nil
		},
	}

	promptCmd.Flags().BoolVar(&showPath, "path", false, "print the custom prompt file location")

	return promptCmd
}
