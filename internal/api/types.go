package api

import "strconv"

// Workspace is the backend view of a workspace.
type Workspace struct {
	Slug string `json:"slug" yaml:"slug"`
	Name string `json:"name" yaml:"name"`
}

// PipelineVersion is a pipeline version; Number is nil when the pipeline has
// no uploaded version.
type PipelineVersion struct {
	Number *int `json:"number" yaml:"number,omitempty"`
}

// Pipeline is a remote pipeline.
type Pipeline struct {
	ID             string          `json:"id" yaml:"id,omitempty"`
	Code           string          `json:"code" yaml:"code"`
	Name           string          `json:"name" yaml:"name"`
	CurrentVersion PipelineVersion `json:"currentVersion" yaml:"current_version"`
}

// VersionLabel renders the current version as "vN", or "N/A" when absent.
// Version 0 is never a published version and renders as "N/A" too.
func (p Pipeline) VersionLabel() string {
	if p.CurrentVersion.Number == nil || *p.CurrentVersion.Number == 0 {
		return "N/A"
	}
	return "v" + strconv.Itoa(*p.CurrentVersion.Number)
}

type mutationResult struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}
