package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/openhexa/openhexa-cli/internal/api"
	"github.com/openhexa/openhexa-cli/internal/apperr"
	"github.com/openhexa/openhexa-cli/internal/config"
	"github.com/openhexa/openhexa-cli/internal/ui"
	"github.com/spf13/cobra"
)

var addFlagToken string

var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "Manage workspaces",
	Long: `Manage the OpenHexa workspaces known to this machine.

Without a subcommand, lists the workspaces.`,
	Args: cobra.NoArgs,
	RunE: runWorkspacesList,
}

var workspacesAddCmd = &cobra.Command{
	Use:   "add <slug>",
	Short: "Add a workspace and make it active",
	Long: `Add a workspace with its access token and make it the active workspace.

If the workspace already exists, only its token is updated.`,
	Args: cobra.ExactArgs(1),
	Example: `  # Prompt for the token
  openhexa workspaces add my-workspace

  # Non-interactive
  openhexa workspaces add my-workspace --token "$OPENHEXA_TOKEN"`,
	RunE: runWorkspacesAdd,
}

var workspacesActivateCmd = &cobra.Command{
	Use:     "activate <slug>",
	Aliases: []string{"use"},
	Short:   "Activate a workspace",
	Args:    cobra.ExactArgs(1),
	RunE:    runWorkspacesActivate,
}

var workspacesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the workspaces",
	Long:    `Display the configured workspaces and highlight the active one.`,
	Args:    cobra.NoArgs,
	RunE:    runWorkspacesList,
}

var workspacesRmCmd = &cobra.Command{
	Use:     "rm <slug>",
	Aliases: []string{"remove"},
	Short:   "Remove a workspace",
	Long:    `Remove a workspace, its token and its pipeline state from the configuration.`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWorkspacesRm,
}

func init() {
	rootCmd.AddCommand(workspacesCmd)
	workspacesCmd.AddCommand(workspacesAddCmd)
	workspacesCmd.AddCommand(workspacesActivateCmd)
	workspacesCmd.AddCommand(workspacesListCmd)
	workspacesCmd.AddCommand(workspacesRmCmd)

	workspacesAddCmd.Flags().StringVar(&addFlagToken, "token", "", "Access token of the workspace (prompted when omitted)")
}

func runWorkspacesAdd(cmd *cobra.Command, args []string) error {
	cfg := sessionConfig(cmd)
	slug := args[0]

	token := addFlagToken
	if token == "" {
		var err error
		token, err = ui.PromptToken()
		if errors.Is(err, ui.ErrNotInteractive) {
			return apperr.Wrap(apperr.KindUsage, err, "A token is required; pass --token when not running in a terminal")
		}
		if err != nil {
			return apperr.Wrap(apperr.KindAborted, err, "Aborted!")
		}
	}

	if cfg.FindWorkspace(slug) != nil {
		ui.Println(fmt.Sprintf("Workspace %s already exists. We will only update its token.", slug))
	} else {
		ui.Println(fmt.Sprintf("Adding workspace %s", slug))
	}

	validate := func(ctx context.Context, slug, token string) error {
		return api.ValidateWorkspace(ctx, cfg.URL(), slug, token)
	}
	result, err := cfg.AddWorkspace(cmd.Context(), slug, token, validate)
	if err != nil {
		return err
	}
	if result.Warning != nil {
		ui.Warning(result.Warning.Error())
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Workspace %s is now active", slug))
	return nil
}

func runWorkspacesActivate(cmd *cobra.Command, args []string) error {
	cfg := sessionConfig(cmd)
	slug := args[0]

	if err := cfg.ActivateWorkspace(slug); err != nil {
		return err
	}
	ui.Println(fmt.Sprintf("Activating workspace %s", slug))

	return config.Save(cfg)
}

func runWorkspacesList(cmd *cobra.Command, args []string) error {
	cfg := sessionConfig(cmd)
	ui.PrintWorkspacesList(cfg.ListWorkspaces())
	return nil
}

func runWorkspacesRm(cmd *cobra.Command, args []string) error {
	cfg := sessionConfig(cmd)
	slug := args[0]

	if err := cfg.RemoveWorkspace(slug); err != nil {
		return err
	}
	ui.Println(fmt.Sprintf("Removing workspace %s", slug))

	if err := config.Save(cfg); err != nil {
		return err
	}

	if cfg.CurrentWorkspace() == "" {
		ui.Info("No workspace activated")
	}
	return nil
}
