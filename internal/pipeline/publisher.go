// Package pipeline implements the pipeline push workflow and the remote
// pipelines listing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/openhexa/openhexa-cli/internal/api"
	"github.com/openhexa/openhexa-cli/internal/apperr"
	"github.com/openhexa/openhexa-cli/internal/bundle"
	"gopkg.in/yaml.v3"
)

// Remote is the part of the backend API the publisher needs.
type Remote interface {
	ListPipelines(ctx context.Context, workspace string) ([]api.Pipeline, error)
	CreatePipeline(ctx context.Context, workspace, code, name string) error
	UploadVersion(ctx context.Context, workspace, code, mainFile string, extraFiles []string) (int, error)
}

// ErrNoPrompt is returned by a Confirmer that has no way to ask, such as a
// terminal prompt without a terminal.
var ErrNoPrompt = errors.New("cannot prompt for confirmation")

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) (bool, error)

func (f ConfirmFunc) Confirm(message string) (bool, error) {
	return f(message)
}

// Non-interactive confirmers.
var (
	AutoYes = ConfirmFunc(func(string) (bool, error) { return true, nil })
	AutoNo  = ConfirmFunc(func(string) (bool, error) { return false, nil })
)

// Publisher pushes a local pipeline to a workspace.
type Publisher struct {
	Remote    Remote
	Importer  Importer
	Confirmer Confirmer
	Out       io.Writer
	BaseURL   string
	Debug     bool

	// Emphasize styles codes and slugs in messages. Nil leaves them plain.
	Emphasize func(string) string
}

// Result describes a successful push.
type Result struct {
	Workspace string
	Code      string
	Version   int
	Created   bool
	URL       string
}

// Report returns the lines shown to the operator after a push.
func (r *Result) Report() []string {
	return r.ReportWith(nil)
}

// ReportWith is Report with the pipeline URL passed through link.
func (r *Result) ReportWith(link func(string) string) []string {
	url := r.URL
	if link != nil {
		url = link(url)
	}
	return []string{
		fmt.Sprintf("Version: %d", r.Version),
		fmt.Sprintf("Done! You can view the pipeline in OpenHexa on %s", url),
	}
}

// PipelineURL builds the link to a pipeline page.
func PipelineURL(baseURL, workspace, code string) string {
	return fmt.Sprintf("%s/workspaces/%s/pipelines/%s", strings.TrimRight(baseURL, "/"), workspace, code)
}

// Push resolves the pipeline defined in path, creates it in workspace when
// it does not exist (after confirmation), and uploads path and files as a
// new version. The first failure stops the workflow.
func (p *Publisher) Push(ctx context.Context, workspace, path string, files []string) (*Result, error) {
	if workspace == "" {
		return nil, apperr.New(apperr.KindUsage, "No workspace activated")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, apperr.Wrap(apperr.KindUsage, err, "%s: file not found", path)
	}
	extraFiles, err := bundle.Expand(files)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUsage, err, "%s", err.Error())
	}
	if _, err := bundle.EntryNames(path, extraFiles); err != nil {
		return nil, apperr.Wrap(apperr.KindUsage, err, "%s", err.Error())
	}

	def, err := p.Importer.Import(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindImport, err, "Error while importing pipeline")
	}
	slog.Debug("pipeline resolved", "code", def.Code, "name", def.Name, "path", path)

	pipelines, err := p.Remote.ListPipelines(ctx, workspace)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRemote, err, "Error while listing pipelines of workspace %s", workspace)
	}
	if p.Debug {
		p.dump(pipelines)
	}

	result := &Result{
		Workspace: workspace,
		Code:      def.Code,
		URL:       PipelineURL(p.BaseURL, workspace, def.Code),
	}

	if findPipeline(pipelines, def.Code) == nil {
		p.printf("Pipeline %s found in %s does not exist in workspace %s\n",
			p.emphasize(def.Code), path, p.emphasize(workspace))

		confirmed, err := p.Confirmer.Confirm(fmt.Sprintf("Create pipeline %s in workspace %s?",
			p.emphasize(def.Code), p.emphasize(workspace)))
		if errors.Is(err, ErrNoPrompt) {
			return nil, apperr.Wrap(apperr.KindUsage, err, "Cannot ask for confirmation; re-run with --yes to create the pipeline")
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.KindAborted, err, "Aborted!")
		}
		if !confirmed {
			return nil, apperr.New(apperr.KindAborted, "Aborted!")
		}

		if err := p.Remote.CreatePipeline(ctx, workspace, def.Code, def.Name); err != nil {
			return nil, apperr.Wrap(apperr.KindRemote, err, "Error while creating pipeline %s", def.Code)
		}
		result.Created = true
	}

	p.printf("Pushing pipeline %s to workspace %s\n", p.emphasize(def.Code), p.emphasize(workspace))

	version, err := p.Remote.UploadVersion(ctx, workspace, def.Code, path, extraFiles)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRemote, err, "Error while uploading pipeline %s", def.Code)
	}
	result.Version = version
	slog.Debug("pipeline version uploaded", "code", def.Code, "version", version, "created", result.Created)

	return result, nil
}

func findPipeline(pipelines []api.Pipeline, code string) *api.Pipeline {
	for i := range pipelines {
		if pipelines[i].Code == code {
			return &pipelines[i]
		}
	}
	return nil
}

func (p *Publisher) dump(pipelines []api.Pipeline) {
	data, err := yaml.Marshal(pipelines)
	if err != nil {
		slog.Debug("cannot dump pipelines", "error", err)
		return
	}
	p.printf("%s", data)
}

func (p *Publisher) emphasize(s string) string {
	if p.Emphasize == nil {
		return s
	}
	return p.Emphasize(s)
}

func (p *Publisher) printf(format string, args ...interface{}) {
	if p.Out == nil {
		return
	}
	fmt.Fprintf(p.Out, format, args...)
}
