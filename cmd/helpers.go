package cmd

import (
	"github.com/openhexa/openhexa-cli/internal/config"
	"github.com/openhexa/openhexa-cli/internal/logger"
	"github.com/spf13/cobra"
)

// withoutSession replaces openSession for commands that inspect or create
// the configuration file themselves and must not rewrite it first.
func withoutSession(cmd *cobra.Command, args []string) error {
	logger.Init(logger.LevelFor(resolveDebug(cmd.Flags())))
	return nil
}

// ensureConfig writes the default configuration when none exists.
// It reports whether the file was created.
func ensureConfig() (bool, error) {
	exists, err := config.ConfigExists()
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := config.Save(config.NewConfig()); err != nil {
		return false, err
	}
	return true, nil
}
