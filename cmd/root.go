// Package cmd provides the command-line interface for the qq application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/connorhough/qq/internal/ask"
	"github.com/connorhough/qq/internal/config"
	"github.com/connorhough/qq/internal/llm"
	"github.com/connorhough/qq/internal/prompt"
	"github.com/connorhough/qq/internal/providers"
	"github.com/connorhough/qq/internal/question"
	"github.com/connorhough/qq/internal/setup"
	"github.com/connorhough/qq/internal/version"
)

var (
	cfgFile string
	rootCmd *cobra.Command
)

type rootOptions struct {
	interactive bool
	setup       bool
	provider    string
	model       string
	maxTokens   int
	plain       bool
	color       string
	debug       bool
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.go. It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	if rootCmd == nil {
		rootCmd = NewRootCmd(llm.NewIOStreams())
	}
	return rootCmd.ExecuteContext(ctx)
}

// NewRootCmd creates and returns the root command for qq
func NewRootCmd(streams *llm.IOStreams) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "qq [question...]",
		Short: "Quick Question - get fast answers in your terminal",
		Long: `Quick Question - get fast answers in your terminal.

Ask a question as arguments, interactively with -i, or pipe it on stdin:

  qq how do I list hidden files
  qq "what's the difference between a tag and a branch?"
  git diff | qq

Answers are rendered for the terminal: **bold**, *italic*, ` + "`code`" + ` and ~~strikethrough~~
become ANSI styles and code fences are removed.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd.Context(), streams, opts, args)
		},
	}

	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.ErrOut)

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default locations: $XDG_CONFIG_HOME/qq/config.yaml or ~/.config/qq/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging on stderr")

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for the question")
	flags.BoolVar(&opts.setup, "setup", false, "run the setup process")
	flags.StringVarP(&opts.provider, "provider", "p", "", "provider to use ("+strings.Join(providers.Names, ", ")+")")
	flags.StringVarP(&opts.model, "model", "m", "", "model to use (overrides config)")
	flags.IntVar(&opts.maxTokens, "max-tokens", 0, "maximum answer length in tokens (overrides config)")
	flags.BoolVar(&opts.plain, "plain", false, "print the answer without ANSI formatting")
	flags.StringVar(&opts.color, "color", "", "when to format answers: "+strings.Join(config.ColorModes, ", ")+" (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(newSetupCmd(streams))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPromptCmd())

	// PersistentPreRun handles configuration and logging initialization
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		initLogging(streams, opts.debug)
		return nil
	}

	return rootCmd
}

func runRoot(ctx context.Context, streams *llm.IOStreams, opts *rootOptions, args []string) error {
	if opts.setup {
		cfg := config.Resolve()
		cfg.ApplyFlags(opts.provider, "", 0)
		_, err := setup.Run(streams, cfg.Provider)
		return err
	}

	q, err := question.Acquire(args, opts.interactive, streams)
	if err != nil {
		return err
	}
	if q == "" {
		fmt.Fprintln(streams.Out, "❌ No question provided.")
		return nil
	}

	cfg, err := resolveSettings(streams, opts)
	if err != nil {
		return err
	}

	systemPrompt, err := loadSystemPrompt()
	if err != nil {
		return err
	}

	provider, err := providers.GetProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to get provider: %w", err)
	}

	if err := ask.Run(ctx, streams, provider, q, cfg, systemPrompt); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		slog.Debug("ask failed", "error", err)
		return errors.New(ask.Explain(err))
	}

	return nil
}

// resolveSettings resolves config and flags, running first-time setup when
// the selected provider has no credentials yet.
func resolveSettings(streams *llm.IOStreams, opts *rootOptions) (*config.Settings, error) {
	cfg := config.Resolve()
	cfg.ApplyFlags(opts.provider, opts.model, opts.maxTokens)

	if !slices.Contains(providers.Names, cfg.Provider) {
		return nil, fmt.Errorf("unknown provider %q (available: %s)", cfg.Provider, strings.Join(providers.Names, ", "))
	}

	if cfg.NeedsSetup() {
		fmt.Fprintln(streams.Out, "🔧 First time setup needed!")
		if _, err := setup.Run(streams, cfg.Provider); err != nil {
			return nil, err
		}
		cfg = config.Resolve()
		cfg.ApplyFlags(opts.provider, opts.model, opts.maxTokens)
	}

	if opts.color != "" {
		cfg.Color = strings.ToLower(opts.color)
	}
	if !slices.Contains(config.ColorModes, cfg.Color) {
		return nil, fmt.Errorf("invalid color %q (want one of: %s)", cfg.Color, strings.Join(config.ColorModes, ", "))
	}
	if opts.plain {
		cfg.Format = false
	}

	slog.Debug("resolved config", "provider", cfg.Provider, "model", cfg.Model, "max_tokens", cfg.MaxTokens)

	return cfg, nil
}

func loadSystemPrompt() (string, error) {
	path, err := config.CustomPromptPath()
	if err != nil {
		return "", err
	}
	custom, err := prompt.Load(path)
	if err != nil {
		return "", err
	}
	return prompt.Build(custom), nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	config.SetDefaults()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// An explicit --config path that doesn't exist yet is created by setup.
			if cfgFile == "" || !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to read config %s: %w", filepath.Base(viper.ConfigFileUsed()), err)
			}
		}
	}

	return nil
}

func initLogging(streams *llm.IOStreams, debug bool) {
	level := config.ParseLogLevel(viper.GetString(config.KeyLogLevel))
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(streams.ErrOut, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
