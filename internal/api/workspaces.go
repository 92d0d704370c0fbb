package api

import "context"

const workspaceQuery = `query getWorkspace($slug: String!) {
  workspace(slug: $slug) {
    slug
    name
  }
}`

// GetWorkspace fetches a workspace by slug. It returns ErrWorkspaceNotFound
// when the backend answers with no workspace.
func (c *Client) GetWorkspace(ctx context.Context, slug string) (*Workspace, error) {
	var data struct {
		Workspace *Workspace `json:"workspace"`
	}
	if err := c.query(ctx, workspaceQuery, map[string]interface{}{"slug": slug}, &data); err != nil {
		return nil, err
	}
	if data.Workspace == nil {
		return nil, ErrWorkspaceNotFound
	}
	return data.Workspace, nil
}

// ValidateWorkspace checks that token grants access to the workspace slug on
// the backend at baseURL.
func ValidateWorkspace(ctx context.Context, baseURL, slug, token string) error {
	_, err := New(baseURL, token).GetWorkspace(ctx, slug)
	return err
}
