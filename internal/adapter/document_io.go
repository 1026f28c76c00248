// Package adapter contains infrastructure adapters for the cd2ifier CLI.
package adapter

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "github.com/vonacht/cd2ifier/internal/model"
)

// targetMarker is inserted before the extension of derived output names,
// so hazard6.json converts to hazard6.cd2.json by default.
const targetMarker = ".cd2"

// DocumentIO abstracts file access and output-path derivation so the
// transformation engine stays a pure function over in-memory documents
// and the workflow can be tested without touching the disk.
type DocumentIO interface {
	// ReadSource loads the full CD1 input text.
	ReadSource(path m.Path) ([]byte, error)

	// WriteTarget writes the full CD2 output text.
	WriteTarget(path m.Path, content []byte) error

	// TargetPath resolves the output path: the explicit target when given,
	// otherwise the source stem with the version marker inserted before
	// the extension.
	TargetPath(source, target m.Path) m.Path

	// ListSources returns the convertible files directly under dir, in a
	// stable order. Files already carrying the version marker are skipped.
	ListSources(dir m.Path) ([]m.Path, error)
}

// LocalDocumentIO is the concrete DocumentIO backed by the local filesystem.
type LocalDocumentIO struct{}

// NewLocalDocumentIO constructs a LocalDocumentIO.
func NewLocalDocumentIO() *LocalDocumentIO {
	return &LocalDocumentIO{}
}

// ReadSource loads file contents from disk.
func (a *LocalDocumentIO) ReadSource(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteTarget writes the output file.
func (a *LocalDocumentIO) WriteTarget(path m.Path, content []byte) error {
	return os.WriteFile(string(path), content, 0o644)
}

// TargetPath derives the output path next to the source file.
func (a *LocalDocumentIO) TargetPath(source, target m.Path) m.Path {
	if target != "" {
		return target
	}

	dir := filepath.Dir(string(source))
	base := filepath.Base(string(source))
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	return m.Path(filepath.Join(dir, stem+targetMarker+ext))
}

// ListSources returns the JSON files directly under dir, skipping files
// that look like previous conversion output.
func (a *LocalDocumentIO) ListSources(dir m.Path) ([]m.Path, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, err
	}

	var sources []m.Path

	for _, entry := range entries {
		name := entry.Name()

		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}

		if strings.Contains(name, targetMarker+".") || strings.HasSuffix(name, targetMarker) {
			continue
		}

		sources = append(sources, m.Path(filepath.Join(string(dir), name)))
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	return sources, nil
}
