package cmd

import (
	"fmt"

	"github.com/openhexa/openhexa-cli/internal/config"
	"github.com/openhexa/openhexa-cli/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:               "init",
	Short:             "Initialize the openhexa configuration",
	Long:              `Create the configuration file with default settings. This is optional - openhexa creates it on first use.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: withoutSession,
	RunE:              runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	created, err := ensureConfig()
	if err != nil {
		return err
	}

	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	if !created {
		ui.Println(fmt.Sprintf("openhexa is already initialized at: %s", path))
		return nil
	}

	ui.Success(fmt.Sprintf("openhexa initialized at: %s", path))
	ui.Println("\nNext: openhexa workspaces add <slug>")
	return nil
}
