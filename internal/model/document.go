package model

// Path represents a file system path.
type Path string

// CD2 top-level module names. The assembler emits modules in a fixed
// order regardless of how the CD1 input ordered its fields.
const (
	ModuleDifficultySetting = "DifficultySetting"
	ModuleResupply          = "Resupply"
	ModuleCaps              = "Caps"
	ModulePools             = "Pools"
	ModuleWaveSpawners      = "WaveSpawners"
	ModuleEnemies           = "EnemiesNoSync"
)

// CD1Document is the parsed source document. Root is the raw ordered
// object; DescriptionTail holds the continuation lines of a raw multiline
// description lifted out before parsing (empty when the input was clean).
// The document is read-only once loaded and owned by a single conversion
// run.
type CD1Document struct {
	Root            Value
	DescriptionTail string
}

// MutatorEntry is a CD2 construct synthesized from a CD1 field that has
// no direct CD2 home. Param keeps the original field's value; Values is
// the derived parameter vector rendered at Target during assembly.
type MutatorEntry struct {
	Type   string
	Target []string
	Param  Value
	Values []float64
}

// StatModule is one CD2 stat grouping produced by the translator. An
// empty Name marks stats that become direct fields on their owner rather
// than members of a nested module.
type StatModule struct {
	Name  string
	Stats []Field
}

// CD2Document is the assembled target document. Root holds the fixed
// module layout; Mutators lists synthesized entries in deterministic
// order. Built incrementally by the assembler, consumed by the
// serializer, then discarded.
type CD2Document struct {
	Root            Value
	Mutators        []MutatorEntry
	DescriptionTail string
}

// Summary counts what happened to the input's fields during one run.
type Summary struct {
	Relocated   int
	Passthrough int
	Deprecated  int
	Unknown     int
	Mutators    int
	Enemies     int
}

// ConversionResult describes one completed file conversion.
type ConversionResult struct {
	Source  Path
	Target  Path
	Summary Summary
}
