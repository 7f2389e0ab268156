// Package cli provides the command-line interface for designkit.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/designkit/internal/config"
	"github.com/jmylchreest/designkit/internal/design"
	"github.com/jmylchreest/designkit/internal/knowledge"
	"github.com/jmylchreest/designkit/internal/provider"
	"github.com/jmylchreest/designkit/internal/version"
)

// app is the state shared by every command of one invocation.
type app struct {
	// Global flags.
	verbose    bool
	quiet      bool
	configFile string
	noColour   bool

	cfg    *config.Config
	logger hclog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "designkit",
		Short: "Colour and design-system toolkit",
		Long: `designkit converts and analyses colours for accessible interfaces and
drafts complete design systems from a service, platform and mood keyword.

Colour commands (convert, contrast, lighten, darken, complement, simulate,
shades) are deterministic and work offline. generate and recommend use the
configured AI provider and fall back to static defaults when it fails.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.StringVar(&a.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/designkit/config.yaml)")
	flags.String("provider", "", "suggestion provider (auto, none, openai, google-genai)")
	flags.String("model", "", "provider model")
	flags.String("knowledge", "", "knowledge base file or URL (default: embedded)")
	flags.Duration("timeout", 0, "provider request timeout (default 60s)")
	flags.BoolVar(&a.noColour, "no-colour", false, "disable colour swatches")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		a.newConvertCmd(),
		a.newContrastCmd(),
		a.newLightenCmd(),
		a.newDarkenCmd(),
		a.newComplementCmd(),
		a.newSimulateCmd(),
		a.newShadesCmd(),
		a.newKeywordsCmd(),
		a.newGenerateCmd(),
		a.newRecommendCmd(),
		a.newExportCmd(),
		a.newServeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup configures logging and loads configuration before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet)

	cfg, err := config.Load(config.Options{
		ConfigFile: a.configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}
	if cfg.File != "" {
		a.logger.Debug("loaded config", "file", cfg.File)
	}
	a.cfg = cfg
	return nil
}

// newLogger returns the process logger: Debug with verbose, Error only with
// quiet, Info otherwise.
func newLogger(out io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "designkit",
		Output: out,
		Level:  level,
	})
}

// knowledgeBase opens the configured knowledge base.
func (a *app) knowledgeBase(ctx context.Context) (*knowledge.Base, error) {
	source := ""
	if a.cfg != nil {
		source = a.cfg.Knowledge
	}
	kb, err := knowledge.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	if source != "" {
		a.logger.Debug("loaded knowledge base", "source", source, "groups", len(kb.IRIColours))
	}
	return kb, nil
}

// generator builds a design.Generator from the configured provider.
func (a *app) generator(ctx context.Context) (*design.Generator, error) {
	kb, err := a.knowledgeBase(ctx)
	if err != nil {
		return nil, err
	}

	cfg := a.cfg
	if cfg == nil {
		cfg = &config.Config{Provider: provider.NameNone}
	}
	p, err := provider.New(cfg, a.logger)
	if err != nil {
		return nil, err
	}

	return design.NewGenerator(p,
		design.WithKnowledge(kb),
		design.WithLogger(a.logger.Named("design")),
	), nil
}

// newVersionCmd prints version information.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
