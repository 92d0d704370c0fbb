package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/openhexa/openhexa-cli/internal/api"
	"github.com/openhexa/openhexa-cli/internal/apperr"
)

// Lister is the part of the backend API needed to list pipelines.
type Lister interface {
	ListPipelines(ctx context.Context, workspace string) ([]api.Pipeline, error)
}

// FormatLine renders a pipeline as "* CODE - NAME (vN)" or "(N/A)".
func FormatLine(p api.Pipeline) string {
	return fmt.Sprintf("* %s - %s (%s)", p.Code, p.Name, p.VersionLabel())
}

// List writes the pipelines of workspace to out.
func List(ctx context.Context, remote Lister, workspace string, out io.Writer) error {
	if workspace == "" {
		return apperr.New(apperr.KindUsage, "No workspace activated")
	}

	pipelines, err := remote.ListPipelines(ctx, workspace)
	if err != nil {
		return apperr.Wrap(apperr.KindRemote, err, "Error while listing pipelines of workspace %s", workspace)
	}

	if len(pipelines) == 0 {
		fmt.Fprintf(out, "No pipelines in workspace %s\n", workspace)
		return nil
	}
	fmt.Fprintln(out, "Pipelines:")
	for _, p := range pipelines {
		fmt.Fprintln(out, FormatLine(p))
	}
	return nil
}
