package cmd

import (
	"errors"
	"fmt"

	"github.com/openhexa/openhexa-cli/internal/api"
	"github.com/openhexa/openhexa-cli/internal/config"
	"github.com/openhexa/openhexa-cli/internal/pipeline"
	"github.com/openhexa/openhexa-cli/internal/ui"
	"github.com/spf13/cobra"
)

var (
	pushFlagFiles []string
	pushFlagYes   bool
)

var pipelinesCmd = &cobra.Command{
	Use:   "pipelines",
	Short: "Manage pipelines of the active workspace",
	Long: `Push and list the pipelines of the active workspace.

Without a subcommand, lists the pipelines.`,
	Args: cobra.NoArgs,
	RunE: runPipelinesList,
}

var pipelinesPushCmd = &cobra.Command{
	Use:   "push <path>",
	Short: "Push a pipeline to the active workspace",
	Long: `Upload a pipeline as a new version in the active workspace.

The pipeline code is read from the @pipeline decorator in <path>. When the
pipeline does not exist yet, you are asked to confirm its creation.
Extra files given with --file are bundled alongside; glob patterns are expanded.`,
	Args: cobra.ExactArgs(1),
	Example: `  openhexa pipelines push pipeline.py
  openhexa pipelines push pipeline.py -f utils.py -f 'sql/**/*.sql'
  openhexa pipelines push pipeline.py --yes`,
	RunE: runPipelinesPush,
}

var pipelinesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the pipelines of the active workspace",
	Args:    cobra.NoArgs,
	RunE:    runPipelinesList,
}

func init() {
	rootCmd.AddCommand(pipelinesCmd)
	pipelinesCmd.AddCommand(pipelinesPushCmd)
	pipelinesCmd.AddCommand(pipelinesListCmd)

	pipelinesPushCmd.Flags().StringArrayVarP(&pushFlagFiles, "file", "f", nil, "Extra file or glob pattern to bundle (repeatable)")
	pipelinesPushCmd.Flags().BoolVarP(&pushFlagYes, "yes", "y", false, "Create the pipeline without asking when it does not exist")
}

// activeClient returns a client for the active workspace and its slug.
// The slug is empty when no workspace is active.
func activeClient(cfg *config.Config) (*api.Client, string) {
	ws := cfg.ActiveWorkspace()
	if ws == nil {
		return api.New(cfg.URL(), ""), ""
	}
	return api.New(cfg.URL(), ws.Token), ws.Slug
}

// promptConfirm asks on the terminal. Without one it reports
// pipeline.ErrNoPrompt so the publisher can point at --yes.
var promptConfirm = pipeline.ConfirmFunc(func(message string) (bool, error) {
	confirmed, err := ui.PromptConfirmation(message)
	if errors.Is(err, ui.ErrNotInteractive) {
		return false, fmt.Errorf("%w: %v", pipeline.ErrNoPrompt, err)
	}
	return confirmed, err
})

func runPipelinesPush(cmd *cobra.Command, args []string) error {
	cfg := sessionConfig(cmd)
	client, workspace := activeClient(cfg)

	var confirmer pipeline.Confirmer = promptConfirm
	if pushFlagYes {
		confirmer = pipeline.AutoYes
	}

	publisher := &pipeline.Publisher{
		Remote:    client,
		Importer:  pipeline.SourceImporter{},
		Confirmer: confirmer,
		Out:       ui.Stdout,
		BaseURL:   cfg.URL(),
		Debug:     config.IsDebug(cfg),
		Emphasize: ui.Bold,
	}

	result, err := publisher.Push(cmd.Context(), workspace, args[0], pushFlagFiles)
	if err != nil {
		return err
	}

	for _, line := range result.ReportWith(ui.Link) {
		ui.Println(line)
	}
	return nil
}

func runPipelinesList(cmd *cobra.Command, args []string) error {
	cfg := sessionConfig(cmd)
	client, workspace := activeClient(cfg)

	return pipeline.List(cmd.Context(), client, workspace, ui.Stdout)
}
