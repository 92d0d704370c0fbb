package cmd

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/openhexa/openhexa-cli/internal/api"
	"github.com/openhexa/openhexa-cli/internal/config"
	"github.com/openhexa/openhexa-cli/internal/platform"
	"github.com/openhexa/openhexa-cli/internal/ui"
	"github.com/spf13/cobra"
)

var (
	doctorNetwork bool
	doctorFix     bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration issues",
	Long: `Check openhexa configuration health and diagnose common issues.

Runs checks on:
- Config file validity and permissions
- Configured and active workspaces
- Backend URL

Examples:
  openhexa doctor              # Run basic diagnostics
  openhexa doctor --network    # Also check the active token against the backend
  openhexa doctor --fix        # Auto-fix permission issues`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: withoutSession,
	RunE:              runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVarP(&doctorNetwork, "network", "n", false, "Validate the active workspace token against the backend")
	doctorCmd.Flags().BoolVarP(&doctorFix, "fix", "f", false, "Auto-fix permission issues")
}

type checkResult struct {
	passed  bool
	message string
	fix     string // Suggested fix command
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ui.Println("")
	ui.Println(fmt.Sprintf("Checking openhexa configuration on %s...", platform.GetPlatformName()))
	ui.Println("")

	errors := 0
	warnings := 0
	fixed := 0

	tally := func(results []checkResult) {
		for _, r := range results {
			printCheckResult(r)
			if !r.passed && r.fix == "" {
				errors++
			} else if !r.passed {
				warnings++
			}
		}
	}

	ui.Println("Config")
	ui.Println("──────")

	configResults, cfg := checkConfig()
	tally(configResults)
	if cfg == nil {
		ui.Println("")
		ui.Error("Cannot continue without a readable configuration")
		return nil
	}

	permResults, permFixed := checkPermissions(doctorFix)
	tally(permResults)
	fixed += permFixed

	ui.Println("")
	ui.Println("Workspaces")
	ui.Println("──────────")
	tally(checkWorkspaces(cfg))

	ui.Println("")
	ui.Println("Backend")
	ui.Println("───────")
	tally(checkBackend(cfg))

	if doctorNetwork {
		tally(checkToken(cmd, cfg))
	}

	ui.Println("")
	ui.Println("─────────")

	if fixed > 0 {
		ui.Success(fmt.Sprintf("Auto-fixed %d issue(s)", fixed))
	}

	if errors == 0 && warnings == 0 {
		ui.Success("All checks passed!")
	} else if errors == 0 {
		ui.Warning(fmt.Sprintf("%d warning(s)", warnings))
	} else {
		ui.Error(fmt.Sprintf("%d error(s), %d warning(s)", errors, warnings))
	}

	return nil
}

func printCheckResult(r checkResult) {
	if r.passed {
		ui.Println(fmt.Sprintf("  ✓ %s", r.message))
	} else if r.fix != "" {
		ui.Println(fmt.Sprintf("  ⚠ %s", r.message))
		ui.Println(fmt.Sprintf("    → %s", r.fix))
	} else {
		ui.Println(fmt.Sprintf("  ✗ %s", r.message))
	}
}

// fixHint renders a shell command the operator can paste.
func fixHint(args ...string) string {
	return "Run: " + shellquote.Join(args...)
}

// checkConfig returns the config checks and the loaded config, or nil
// when it cannot be read.
func checkConfig() ([]checkResult, *config.Config) {
	var results []checkResult

	exists, err := config.ConfigExists()
	if err != nil {
		results = append(results, checkResult{
			passed:  false,
			message: fmt.Sprintf("Error checking config: %v", err),
		})
		return results, nil
	}

	if !exists {
		results = append(results, checkResult{
			passed:  false,
			message: "Config file not found",
			fix:     fixHint("openhexa", "init"),
		})
		return results, config.NewConfig()
	}

	results = append(results, checkResult{
		passed:  true,
		message: "Config file exists",
	})

	cfg, err := config.Open()
	if err != nil {
		message := err.Error()
		if path, pathErr := config.GetConfigPath(); pathErr == nil {
			message = fmt.Sprintf("%s (%s)", message, path)
		}
		results = append(results, checkResult{
			passed:  false,
			message: message,
		})
		return results, nil
	}

	results = append(results, checkResult{
		passed:  true,
		message: "Config file valid",
	})

	return results, cfg
}

// checkPermissions verifies the config file is not readable by others.
// Tokens are stored in clear text.
func checkPermissions(autoFix bool) ([]checkResult, int) {
	path, err := config.GetConfigPath()
	if err != nil {
		return nil, 0
	}
	if exists, _ := config.ConfigExists(); !exists {
		return nil, 0
	}

	ok, err := platform.CheckFilePermissions(path)
	if err != nil {
		return []checkResult{{
			passed:  false,
			message: fmt.Sprintf("Cannot check permissions: %v", err),
		}}, 0
	}
	if ok {
		return []checkResult{{passed: true, message: "Config file permissions OK"}}, 0
	}

	if autoFix {
		if err := platform.FixFilePermissions(path); err == nil {
			return []checkResult{{passed: true, message: "Config file permissions fixed"}}, 1
		}
	}

	return []checkResult{{
		passed:  false,
		message: "Config file is readable by other users",
		fix:     "Run: " + platform.GetPermissionFixCommand(path),
	}}, 0
}

func checkWorkspaces(cfg *config.Config) []checkResult {
	var results []checkResult

	if len(cfg.Workspaces) == 0 {
		results = append(results, checkResult{
			passed:  false,
			message: "No workspaces configured",
			fix:     "Run: openhexa workspaces add <slug>",
		})
		return results
	}

	results = append(results, checkResult{
		passed:  true,
		message: fmt.Sprintf("%d workspace(s) configured", len(cfg.Workspaces)),
	})

	for _, ws := range cfg.Workspaces {
		if ws.Token == "" {
			results = append(results, checkResult{
				passed:  false,
				message: fmt.Sprintf("Workspace %s has no token", ws.Slug),
				fix:     fixHint("openhexa", "workspaces", "add", ws.Slug),
			})
		}
	}

	if cfg.CurrentWorkspace() == "" {
		results = append(results, checkResult{
			passed:  false,
			message: "No workspace activated",
			fix:     fixHint("openhexa", "workspaces", "activate", cfg.Workspaces[0].Slug),
		})
	} else {
		results = append(results, checkResult{
			passed:  true,
			message: fmt.Sprintf("Active workspace: %s", cfg.CurrentWorkspace()),
		})
	}

	return results
}

func checkBackend(cfg *config.Config) []checkResult {
	if _, err := normalizeURL(cfg.URL()); err != nil {
		return []checkResult{{
			passed:  false,
			message: fmt.Sprintf("Backend URL is invalid: %s", cfg.URL()),
			fix:     fixHint("openhexa", "config", "set_url", config.DefaultURL),
		}}
	}
	return []checkResult{{passed: true, message: fmt.Sprintf("Backend URL: %s", cfg.URL())}}
}

// checkToken validates the active workspace token against the backend.
func checkToken(cmd *cobra.Command, cfg *config.Config) []checkResult {
	ws := cfg.ActiveWorkspace()
	if ws == nil {
		return nil
	}

	if err := api.ValidateWorkspace(cmd.Context(), cfg.URL(), ws.Slug, ws.Token); err != nil {
		return []checkResult{{
			passed:  false,
			message: fmt.Sprintf("Cannot access workspace %s: %v", ws.Slug, err),
			fix:     fixHint("openhexa", "workspaces", "add", ws.Slug),
		}}
	}
	return []checkResult{{passed: true, message: fmt.Sprintf("Token for %s accepted", ws.Slug)}}
}
