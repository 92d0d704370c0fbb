package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/openhexa/openhexa-cli/internal/bundle"
)

// PipelinesPerPage is the page size used when listing pipelines.
const PipelinesPerPage = 50

const pipelinesQuery = `query getWorkspacePipelines($workspaceSlug: String!, $page: Int, $perPage: Int) {
  pipelines(workspaceSlug: $workspaceSlug, page: $page, perPage: $perPage) {
    items {
      id
      code
      name
      currentVersion {
        number
      }
    }
    totalPages
  }
}`

const pipelineByCodeQuery = `query pipelineByCode($workspaceSlug: String!, $code: String!) {
  pipelineByCode(workspaceSlug: $workspaceSlug, code: $code) {
    id
    code
    name
    currentVersion {
      number
    }
  }
}`

const createPipelineMutation = `mutation createPipeline($input: CreatePipelineInput!) {
  createPipeline(input: $input) {
    success
    errors
  }
}`

const uploadPipelineMutation = `mutation uploadPipeline($input: UploadPipelineInput!) {
  uploadPipeline(input: $input) {
    success
    errors
    version {
      number
    }
  }
}`

// ListPipelines returns every pipeline of a workspace, following pagination.
func (c *Client) ListPipelines(ctx context.Context, workspace string) ([]Pipeline, error) {
	var pipelines []Pipeline
	for page := 1; ; page++ {
		var data struct {
			Pipelines struct {
				Items      []Pipeline `json:"items"`
				TotalPages int        `json:"totalPages"`
			} `json:"pipelines"`
		}
		vars := map[string]interface{}{
			"workspaceSlug": workspace,
			"page":          page,
			"perPage":       PipelinesPerPage,
		}
		if err := c.query(ctx, pipelinesQuery, vars, &data); err != nil {
			return nil, err
		}
		pipelines = append(pipelines, data.Pipelines.Items...)
		if page >= data.Pipelines.TotalPages {
			break
		}
	}
	if pipelines == nil {
		pipelines = []Pipeline{}
	}
	return pipelines, nil
}

// GetPipeline fetches a pipeline by code. It returns nil, nil when the
// pipeline does not exist.
func (c *Client) GetPipeline(ctx context.Context, workspace, code string) (*Pipeline, error) {
	var data struct {
		Pipeline *Pipeline `json:"pipelineByCode"`
	}
	vars := map[string]interface{}{"workspaceSlug": workspace, "code": code}
	if err := c.query(ctx, pipelineByCodeQuery, vars, &data); err != nil {
		return nil, err
	}
	return data.Pipeline, nil
}

// CreatePipeline registers a new pipeline code in a workspace.
func (c *Client) CreatePipeline(ctx context.Context, workspace, code, name string) error {
	if name == "" {
		name = code
	}
	var data struct {
		Result mutationResult `json:"createPipeline"`
	}
	vars := map[string]interface{}{
		"input": map[string]interface{}{
			"workspaceSlug": workspace,
			"code":          code,
			"name":          name,
		},
	}
	if err := c.query(ctx, createPipelineMutation, vars, &data); err != nil {
		return err
	}
	if !data.Result.Success {
		return &MutationError{Op: "createPipeline", Codes: data.Result.Errors}
	}
	return nil
}

// UploadVersion packs mainFile and extraFiles into a zip archive and uploads
// it as a new version of the pipeline. It returns the new version number.
func (c *Client) UploadVersion(ctx context.Context, workspace, code, mainFile string, extraFiles []string) (int, error) {
	archive, err := bundle.Build(mainFile, extraFiles)
	if err != nil {
		return 0, fmt.Errorf("failed to build archive: %w", err)
	}
	slog.Debug("uploading pipeline archive", "code", code, "bytes", len(archive), "files", len(extraFiles)+1)

	var data struct {
		Result struct {
			mutationResult
			Version *PipelineVersion `json:"version"`
		} `json:"uploadPipeline"`
	}
	vars := map[string]interface{}{
		"input": map[string]interface{}{
			"workspaceSlug": workspace,
			"code":          code,
			"zipfile":       base64.StdEncoding.EncodeToString(archive),
		},
	}
	if err := c.query(ctx, uploadPipelineMutation, vars, &data); err != nil {
		return 0, err
	}
	if !data.Result.Success {
		return 0, &MutationError{Op: "uploadPipeline", Codes: data.Result.Errors}
	}
	if data.Result.Version == nil || data.Result.Version.Number == nil {
		return 0, fmt.Errorf("uploadPipeline returned no version number")
	}
	return *data.Result.Version.Number, nil
}
