// Package mdfile reads Markdown files, regenerates their table of contents
// and writes them back.
package mdfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/itsmostafa/mktoc/internal/toc"
)

// ReadError reports that a document could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Read returns the content of the file at path. Failures are *ReadError.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	return string(data), nil
}

// MakeTOC reads path and returns its content with the ToC regenerated.
func MakeTOC(path string, cfg toc.Config, gen *toc.Generator) (string, error) {
	content, err := Read(path)
	if err != nil {
		return "", err
	}
	return gen.MakeTOC(content, cfg), nil
}

// Result describes the outcome of Update.
type Result struct {
	Path      string
	Changed   bool // content was rewritten
	HasRegion bool // the document contains a sentinel region
	Content   string
}

// Update regenerates the ToC of path and writes the file back when the
// content changed.
func Update(path string, cfg toc.Config, gen *toc.Generator) (*Result, error) {
	content, err := Read(path)
	if err != nil {
		return nil, err
	}

	_, hasRegion := toc.FindRegion(content)
	updated := gen.MakeTOC(content, cfg)

	result := &Result{
		Path:      path,
		HasRegion: hasRegion,
		Content:   updated,
	}
	if updated == content {
		return result, nil
	}

	if err := Write(path, updated); err != nil {
		return nil, err
	}
	result.Changed = true
	return result, nil
}

// Write replaces the content of path atomically, keeping its permissions.
func Write(path, content string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
