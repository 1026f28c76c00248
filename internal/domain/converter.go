// Package domain implements the CD1 to CD2 schema transformation engine.
package domain

import (
	"github.com/vonacht/cd2ifier/internal/mapping"
	m "github.com/vonacht/cd2ifier/internal/model"
)

// Options is the externally tunable behavior of a conversion run.
type Options struct {
	// Strict promotes unknown input fields from a warning to a fatal error.
	Strict bool
	// Compact selects whitespace-free serialization.
	Compact bool
}

// Converter turns CD1 documents into CD2 documents. It holds only the
// immutable mapping table and is safe to reuse across runs; each run owns
// its documents exclusively.
type Converter struct {
	table *mapping.Table
}

// NewConverter constructs a Converter over the given mapping table.
func NewConverter(table *mapping.Table) *Converter {
	return &Converter{table: table}
}

// Convert is the pure, synchronous transformation from a CD1 document to
// a CD2 document. No output is produced on error.
func (c *Converter) Convert(doc m.CD1Document, opts Options) (m.CD2Document, m.Summary, error) {
	return newAssembler(c.table, opts).assemble(doc)
}
