package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/openhexa/openhexa-cli/internal/apperr"
	"github.com/openhexa/openhexa-cli/internal/config"
	"github.com/openhexa/openhexa-cli/internal/logger"
	"github.com/openhexa/openhexa-cli/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is set via ldflags at build time
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "openhexa",
	Short: "OpenHexa CLI",
	Long: `Manage OpenHexa workspaces and push pipelines to them.

Add a workspace with its access token, then push pipelines to the active workspace.`,
	Example: `  openhexa workspaces add my-workspace
  openhexa pipelines push pipeline.py
  openhexa pipelines list`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: openSession,
}

func init() {
	bindDebugFlags(rootCmd.PersistentFlags())
}

// bindDebugFlags registers --debug and --no-debug.
func bindDebugFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "Show underlying error details (env: DEBUG)")
	flags.Bool("no-debug", false, "Disable debug mode")
}

// resolveDebug returns the debug setting for this invocation:
// --no-debug, then --debug, then OPENHEXA_DEBUG or DEBUG, then false.
func resolveDebug(flags *pflag.FlagSet) bool {
	if noDebug, err := flags.GetBool("no-debug"); err == nil && noDebug {
		return false
	}

	v := viper.New()
	v.SetDefault("debug", false)
	// BindPFlag fails only on a nil flag and BindEnv only without a key.
	if f := flags.Lookup("debug"); f != nil {
		_ = v.BindPFlag("debug", f)
	}
	_ = v.BindEnv("debug", "OPENHEXA_DEBUG", "DEBUG")
	return v.GetBool("debug")
}

type configKey struct{}

// openSession loads the configuration, records the debug flag of this
// invocation and persists it before the command runs.
func openSession(cmd *cobra.Command, args []string) error {
	debug := resolveDebug(cmd.Flags())
	logger.Init(logger.LevelFor(debug))

	cfg, err := config.Open()
	if err != nil {
		return err
	}
	cfg.SetDebug(debug)
	if err := config.Save(cfg); err != nil {
		return err
	}

	cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
	return nil
}

// sessionConfig returns the configuration loaded by openSession
func sessionConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.NewConfig()
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	reportError(err, resolveDebug(rootCmd.PersistentFlags()))
	return 1
}

// reportError prints err; the underlying detail only in debug mode.
func reportError(err error, debug bool) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		ui.Error(err.Error())
		return
	}
	ui.Error(appErr.Message)
	if detail := appErr.Detail(); debug && detail != "" {
		fmt.Fprintf(ui.Stderr, "  %s error: %s\n", appErr.Kind, detail)
	}
}
