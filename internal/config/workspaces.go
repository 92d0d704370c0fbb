package config

import (
	"context"
	"strings"

	"github.com/openhexa/openhexa-cli/internal/apperr"
)

// ValidateFunc checks slug/token against the backend.
type ValidateFunc func(ctx context.Context, slug, token string) error

// AddResult describes what AddWorkspace did
type AddResult struct {
	Updated bool  // The slug already existed; only its token changed
	Warning error // Validation failure that did not block the add
}

// FindWorkspace finds a workspace by slug
func (c *Config) FindWorkspace(slug string) *Workspace {
	for i := range c.Workspaces {
		if c.Workspaces[i].Slug == slug {
			return &c.Workspaces[i]
		}
	}
	return nil
}

// Slugs returns the known workspace slugs in insertion order
func (c *Config) Slugs() []string {
	slugs := make([]string, 0, len(c.Workspaces))
	for _, ws := range c.Workspaces {
		slugs = append(slugs, ws.Slug)
	}
	return slugs
}

// AddWorkspace adds a workspace, or updates the token of an existing one,
// and makes it the current workspace.
//
// validate is called first. Its failure is returned in AddResult.Warning and
// the workspace is stored anyway, so the operator can fix the token later.
// In debug mode the failure is returned as an error and nothing changes.
func (c *Config) AddWorkspace(ctx context.Context, slug, token string, validate ValidateFunc) (AddResult, error) {
	var result AddResult
	if slug == "" {
		return result, apperr.New(apperr.KindUsage, "Workspace slug must not be empty")
	}

	existing := c.FindWorkspace(slug)
	result.Updated = existing != nil

	if validate != nil {
		if err := validate(ctx, slug, token); err != nil {
			wrapped := apperr.Wrap(apperr.KindRemote, err,
				"Error while getting workspace. Check the slug of the workspace and the access token.")
			if IsDebug(c) {
				return result, wrapped
			}
			result.Warning = wrapped
		}
	}

	if existing != nil {
		existing.Token = token
	} else {
		c.Workspaces = append(c.Workspaces, Workspace{Slug: slug, Token: token})
	}
	c.Settings.CurrentWorkspace = slug

	return result, nil
}

// ActivateWorkspace makes slug the current workspace
func (c *Config) ActivateWorkspace(slug string) error {
	if c.FindWorkspace(slug) == nil {
		return c.notFound(slug)
	}
	c.Settings.CurrentWorkspace = slug
	return nil
}

// RemoveWorkspace deletes a workspace, its pipelines section and, if it was
// current, the current-workspace marker
func (c *Config) RemoveWorkspace(slug string) error {
	for i, ws := range c.Workspaces {
		if ws.Slug != slug {
			continue
		}
		c.Workspaces = append(c.Workspaces[:i], c.Workspaces[i+1:]...)
		delete(c.Pipelines, slug)
		if len(c.Pipelines) == 0 {
			c.Pipelines = nil
		}
		if c.Settings.CurrentWorkspace == slug {
			c.Settings.CurrentWorkspace = ""
		}
		return nil
	}
	return apperr.New(apperr.KindUsage, "Workspace %s does not exist", slug)
}

// ListWorkspaces returns every workspace in insertion order, marking the current one
func (c *Config) ListWorkspaces() []WorkspaceView {
	views := make([]WorkspaceView, 0, len(c.Workspaces))
	for _, ws := range c.Workspaces {
		views = append(views, WorkspaceView{
			Slug:    ws.Slug,
			Token:   ws.Token,
			Current: ws.Slug == c.Settings.CurrentWorkspace,
		})
	}
	return views
}

// ActiveWorkspace returns the current workspace, or nil when none is active
func (c *Config) ActiveWorkspace() *Workspace {
	if c.Settings.CurrentWorkspace == "" {
		return nil
	}
	return c.FindWorkspace(c.Settings.CurrentWorkspace)
}

// PipelineState returns the pipelines section of a workspace, or nil
func (c *Config) PipelineState(slug string) PipelineState {
	return c.Pipelines[slug]
}

func (c *Config) notFound(slug string) error {
	slugs := c.Slugs()
	available := "(none)"
	if len(slugs) > 0 {
		available = strings.Join(slugs, ", ")
	}
	return apperr.New(apperr.KindUsage, "Workspace %s does not exist. Available workspaces:\n%s", slug, available)
}
