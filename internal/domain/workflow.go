package domain

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vonacht/cd2ifier/internal/adapter"
	m "github.com/vonacht/cd2ifier/internal/model"
)

// Workflow wires the transformation engine to the file I/O adapter. The
// engine itself never touches the filesystem.
type Workflow struct {
	io        adapter.DocumentIO
	converter *Converter
}

// NewWorkflow constructs a Workflow over the given adapter and converter.
func NewWorkflow(io adapter.DocumentIO, converter *Converter) *Workflow {
	return &Workflow{io: io, converter: converter}
}

// ConvertFile converts a single CD1 file. The target file is only written
// after the whole document has been assembled and serialized, so a fatal
// error never leaves partial output behind.
func (w *Workflow) ConvertFile(source, target m.Path, opts Options) (m.ConversionResult, error) {
	raw, err := w.io.ReadSource(source)
	if err != nil {
		return m.ConversionResult{}, fmt.Errorf("reading %s: %w", source, err)
	}

	cleaned, tail, err := ExtractMultilines(string(raw))
	if err != nil {
		return m.ConversionResult{}, fmt.Errorf("%s: %w", source, err)
	}

	root, err := m.Decode([]byte(cleaned))
	if err != nil {
		return m.ConversionResult{}, fmt.Errorf("%s: %w", source, err)
	}

	doc := m.CD1Document{Root: root, DescriptionTail: tail}

	cd2, summary, err := w.converter.Convert(doc, opts)
	if err != nil {
		return m.ConversionResult{}, fmt.Errorf("%s: %w", source, err)
	}

	out, err := Serialize(cd2, opts.Compact)
	if err != nil {
		return m.ConversionResult{}, fmt.Errorf("%s: %w", source, err)
	}

	targetPath := w.io.TargetPath(source, target)
	if err := w.io.WriteTarget(targetPath, out); err != nil {
		return m.ConversionResult{}, fmt.Errorf("writing %s: %w", targetPath, err)
	}

	return m.ConversionResult{Source: source, Target: targetPath, Summary: summary}, nil
}

// ConvertDir converts every CD1 file in a directory, at most parallel
// conversions at a time. Each file still runs through its own single-
// document engine invocation; target names are always derived.
func (w *Workflow) ConvertDir(dir m.Path, parallel int, opts Options) ([]m.ConversionResult, error) {
	sources, err := w.io.ListSources(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	if parallel < 1 {
		parallel = 1
	}

	results := make([]m.ConversionResult, len(sources))

	var g errgroup.Group

	g.SetLimit(parallel)

	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			result, err := w.ConvertFile(source, "", opts)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
