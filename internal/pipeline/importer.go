package pipeline

import (
	"fmt"
	"os"
	"regexp"
)

// Definition is a pipeline resolved from a local source file.
type Definition struct {
	Code string
	Name string
	Path string
}

// Importer resolves a local source file into a pipeline Definition.
type Importer interface {
	Import(path string) (*Definition, error)
}

// decoratorPattern matches @pipeline("code") and @pipeline("code", name="Name").
var decoratorPattern = regexp.MustCompile(`(?m)^\s*@pipeline\(\s*(?:code\s*=\s*)?["']([^"']+)["'](?:\s*,\s*name\s*=\s*["']([^"']*)["'])?`)

// SourceImporter finds the @pipeline decorator in a Python source file.
type SourceImporter struct{}

// Import reads path and extracts the pipeline code and name. The name
// defaults to the code.
func (SourceImporter) Import(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	m := decoratorPattern.FindSubmatch(data)
	if m == nil {
		return nil, fmt.Errorf("no @pipeline decorator found in %s", path)
	}

	def := &Definition{
		Code: string(m[1]),
		Name: string(m[2]),
		Path: path,
	}
	if def.Name == "" {
		def.Name = def.Code
	}
	return def, nil
}
