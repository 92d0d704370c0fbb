package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/openhexa/openhexa-cli/internal/apperr"
	"github.com/openhexa/openhexa-cli/internal/config"
	"github.com/openhexa/openhexa-cli/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current configuration",
	Long:  `Display the debug setting, the backend URL, the active workspace and the known workspaces.`,
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configSetURLCmd = &cobra.Command{
	Use:     "set_url <url>",
	Aliases: []string{"set-url"},
	Short:   "Set the URL of the OpenHexa backend",
	Args:    cobra.ExactArgs(1),
	Example: `  openhexa config set_url https://app.demo.openhexa.org`,
	RunE:    runConfigSetURL,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetURLCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := sessionConfig(cmd)

	debug := "False"
	if config.IsDebug(cfg) {
		debug = "True"
	}

	ui.Println(fmt.Sprintf("Debug: %s", debug))
	ui.Println(fmt.Sprintf("Backend URL: %s", cfg.URL()))
	ui.Println(fmt.Sprintf("Current workspace: %s", cfg.CurrentWorkspace()))
	ui.Println("\nWorkspaces:")
	ui.Println(strings.Join(cfg.Slugs(), "\n"))

	return nil
}

func runConfigSetURL(cmd *cobra.Command, args []string) error {
	cfg := sessionConfig(cmd)

	backendURL, err := normalizeURL(args[0])
	if err != nil {
		return err
	}
	cfg.SetURL(backendURL)

	if err := config.Save(cfg); err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("Backend URL set to %s", backendURL))
	return nil
}

// normalizeURL accepts absolute http(s) URLs and strips the trailing slash.
func normalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", apperr.Wrap(apperr.KindUsage, err, "Invalid URL: %s", raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", apperr.New(apperr.KindUsage, "Invalid URL: %s (expected http:// or https://)", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
