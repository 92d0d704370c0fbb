package config

// Settings is the [openhexa] table: global CLI settings
type Settings struct {
	Debug            bool   `toml:"debug"`
	URL              string `toml:"url"`
	CurrentWorkspace string `toml:"current_workspace"` // Slug, empty when none is active
}

// Workspace is a remote workspace and the token used to access it
type Workspace struct {
	Slug  string `toml:"slug"`
	Token string `toml:"token"`
}

// PipelineState is the per-workspace [pipelines.<slug>] table.
// Its content is not interpreted; it is kept verbatim across load/save.
type PipelineState map[string]interface{}

// Config represents the openhexa configuration file
type Config struct {
	Version    string                   `toml:"version"`
	Settings   Settings                 `toml:"openhexa"`
	Workspaces []Workspace              `toml:"workspaces"` // Insertion order is listing order
	Pipelines  map[string]PipelineState `toml:"pipelines,omitempty"`
}

// WorkspaceView is a workspace as shown to the operator
type WorkspaceView struct {
	Slug    string
	Token   string
	Current bool
}
