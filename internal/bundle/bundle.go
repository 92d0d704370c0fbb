// Package bundle collects pipeline files and packs them into the zip archive
// uploaded as a new pipeline version.
package bundle

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/zip"
)

const globChars = "*?[{"

// IsPattern reports whether s is a glob pattern rather than a literal path
func IsPattern(s string) bool {
	return strings.ContainsAny(s, globChars)
}

// Expand resolves --file arguments. A literal path must exist and be a
// regular file; a pattern (doublestar syntax, "**" included) must match at
// least one file. Directories matched by a pattern are skipped. The result
// keeps argument order and contains each path once.
func Expand(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, arg := range args {
		if !IsPattern(arg) {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: file not found", arg)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("%s: is a directory", arg)
			}
			add(arg)
			continue
		}

		if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
			return nil, fmt.Errorf("%s: invalid pattern", arg)
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", arg, err)
		}
		matched := 0
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			add(m)
			matched++
		}
		if matched == 0 {
			return nil, fmt.Errorf("%s: no file matches", arg)
		}
	}
	return files, nil
}

// Build returns a zip archive holding mainFile and extraFiles. Entry names
// are relative to the directory of mainFile and use forward slashes; a file
// outside that directory is rejected.
func Build(mainFile string, extraFiles []string) ([]byte, error) {
	files := append([]string{mainFile}, extraFiles...)
	names, err := EntryNames(mainFile, extraFiles)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	written := make(map[string]bool)
	for i, name := range names {
		if written[name] {
			continue
		}
		if err := addFile(zw, files[i], name); err != nil {
			zw.Close()
			return nil, err
		}
		written[name] = true
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// EntryNames returns the archive entry name of mainFile followed by those of
// extraFiles, in order. It fails on the first file outside the directory of
// mainFile, without reading any file.
func EntryNames(mainFile string, extraFiles []string) ([]string, error) {
	root, err := filepath.Abs(filepath.Dir(mainFile))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", mainFile, err)
	}

	names := make([]string, 0, len(extraFiles)+1)
	for _, file := range append([]string{mainFile}, extraFiles...) {
		name, err := entryName(root, file)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func entryName(root, file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", file, err)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the pipeline directory %s", file, root)
	}
	return filepath.ToSlash(rel), nil
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to build header for %s: %w", path, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
