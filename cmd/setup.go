package cmd

import (
	"github.com/spf13/cobra"

	"github.com/connorhough/qq/internal/config"
	"github.com/connorhough/qq/internal/llm"
	"github.com/connorhough/qq/internal/setup"
)

func newSetupCmd(streams *llm.IOStreams) *cobra.Command {
	var provider string

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Store an API key and create the config file",
		Long: `Prompts for an API key, saves it to the config file and creates the
custom prompt file next to it. Same as qq --setup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Resolve()
			cfg.ApplyFlags(provider, "", 0)
			_, err := setup.Run(streams, cfg.Provider)
			return err
		},
	}

	setupCmd.Flags().StringVarP(&provider, "provider", "p", "", "provider to configure")

	return setupCmd
}
