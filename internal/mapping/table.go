// Package mapping holds the static CD1 to CD2 field correspondence.
//
// The table is data, not logic: it is embedded as YAML so every mapping
// can be audited and tested field by field, mirroring the translation
// data file the game community maintains for the CD2 schema.
package mapping

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed cd2_modules.yaml
var rawTable []byte

// Outcome classifies what happens to a recognized CD1 field.
type Outcome int

const (
	// OutcomeModule relocates the field into a CD2 module.
	OutcomeModule Outcome = iota
	// OutcomeDeprecated drops the field with a log line.
	OutcomeDeprecated
	// OutcomeIgnored skips the field; a dedicated builder consumes it.
	OutcomeIgnored
	// OutcomePassthrough copies the field verbatim to the CD2 top level.
	OutcomePassthrough
	// OutcomeMutator feeds the field to the mutator synthesizer.
	OutcomeMutator
	// OutcomeEnemies marks the enemy descriptor block.
	OutcomeEnemies
	// OutcomePawnStats marks a pawn-stats block.
	OutcomePawnStats
)

// FieldMapping is one classification rule for a CD1 top-level field.
type FieldMapping struct {
	Name    string
	Outcome Outcome
	Module  string // destination module when Outcome is OutcomeModule
}

// StatMapping assigns one CD1 pawn stat to its CD2 module and field. An
// empty Module means the stat becomes a direct field on its owner. Invert
// applies the 1-v scale change for resistance-type stats.
type StatMapping struct {
	Name   string
	Module string
	Field  string
	Invert bool
}

// Table is the loaded, validated mapping data. It is immutable after Load.
type Table struct {
	fields     []FieldMapping
	fieldIndex map[string]FieldMapping
	stats      []StatMapping
	statIndex  map[string]StatMapping
	controls   map[string]struct{}
	elites     map[string]struct{}
}

type rawField struct {
	Name   string `yaml:"name"`
	Module string `yaml:"module"`
	Status string `yaml:"status"`
}

type rawStat struct {
	Name      string `yaml:"name"`
	Module    string `yaml:"module"`
	Field     string `yaml:"field"`
	Transform string `yaml:"transform"`
}

type rawDocument struct {
	Fields              []rawField `yaml:"fields"`
	Stats               []rawStat  `yaml:"stats"`
	ValidEnemyControls  []string   `yaml:"valid_enemy_controls"`
	VanillaEliteEnemies []string   `yaml:"vanilla_elite_enemies"`
}

var statuses = map[string]Outcome{
	"deprecated":  OutcomeDeprecated,
	"ignore":      OutcomeIgnored,
	"passthrough": OutcomePassthrough,
	"mutator":     OutcomeMutator,
	"enemies":     OutcomeEnemies,
	"pawnstats":   OutcomePawnStats,
}

// Load parses and validates the embedded translation data.
func Load() (*Table, error) {
	var doc rawDocument
	if err := yaml.Unmarshal(rawTable, &doc); err != nil {
		return nil, fmt.Errorf("parsing translation data: %w", err)
	}

	t := &Table{
		fieldIndex: make(map[string]FieldMapping, len(doc.Fields)),
		statIndex:  make(map[string]StatMapping, len(doc.Stats)),
		controls:   make(map[string]struct{}, len(doc.ValidEnemyControls)),
		elites:     make(map[string]struct{}, len(doc.VanillaEliteEnemies)),
	}

	for _, f := range doc.Fields {
		mapping, err := f.toMapping()
		if err != nil {
			return nil, err
		}

		if _, dup := t.fieldIndex[mapping.Name]; dup {
			return nil, fmt.Errorf("duplicate field mapping %q", mapping.Name)
		}

		t.fields = append(t.fields, mapping)
		t.fieldIndex[mapping.Name] = mapping
	}

	destinations := make(map[string]string, len(doc.Stats))

	for _, s := range doc.Stats {
		mapping, err := s.toMapping()
		if err != nil {
			return nil, err
		}

		if _, dup := t.statIndex[mapping.Name]; dup {
			return nil, fmt.Errorf("duplicate stat mapping %q", mapping.Name)
		}

		dest := mapping.Module + "." + mapping.Field
		if prev, dup := destinations[dest]; dup {
			return nil, fmt.Errorf("stats %q and %q share destination %s", prev, mapping.Name, dest)
		}

		destinations[dest] = mapping.Name
		t.stats = append(t.stats, mapping)
		t.statIndex[mapping.Name] = mapping
	}

	for _, c := range doc.ValidEnemyControls {
		t.controls[c] = struct{}{}
	}

	for _, e := range doc.VanillaEliteEnemies {
		t.elites[e] = struct{}{}
	}

	return t, nil
}

func (f rawField) toMapping() (FieldMapping, error) {
	if f.Name == "" {
		return FieldMapping{}, fmt.Errorf("field mapping with empty name")
	}

	switch {
	case f.Module != "" && f.Status != "":
		return FieldMapping{}, fmt.Errorf("field %q has both a module and a status", f.Name)
	case f.Module != "":
		return FieldMapping{Name: f.Name, Outcome: OutcomeModule, Module: f.Module}, nil
	case f.Status != "":
		outcome, ok := statuses[f.Status]
		if !ok {
			return FieldMapping{}, fmt.Errorf("field %q has unknown status %q", f.Name, f.Status)
		}

		return FieldMapping{Name: f.Name, Outcome: outcome}, nil
	default:
		return FieldMapping{}, fmt.Errorf("field %q has neither a module nor a status", f.Name)
	}
}

func (s rawStat) toMapping() (StatMapping, error) {
	if s.Name == "" || s.Field == "" {
		return StatMapping{}, fmt.Errorf("stat mapping %q needs a name and a field", s.Name)
	}

	switch s.Transform {
	case "":
		return StatMapping{Name: s.Name, Module: s.Module, Field: s.Field}, nil
	case "invert":
		return StatMapping{Name: s.Name, Module: s.Module, Field: s.Field, Invert: true}, nil
	default:
		return StatMapping{}, fmt.Errorf("stat %q has unknown transform %q", s.Name, s.Transform)
	}
}

// Mappings returns every field rule in table (and therefore assembly) order.
func (t *Table) Mappings() []FieldMapping {
	return t.fields
}

// Lookup classifies a CD1 top-level field name.
func (t *Table) Lookup(name string) (FieldMapping, bool) {
	m, ok := t.fieldIndex[name]
	return m, ok
}

// Stats returns every pawn-stat rule in table order.
func (t *Table) Stats() []StatMapping {
	return t.stats
}

// LookupStat classifies a pawn stat name.
func (t *Table) LookupStat(name string) (StatMapping, bool) {
	m, ok := t.statIndex[name]
	return m, ok
}

// IsValidControl reports whether an enemy descriptor control survives in CD2.
func (t *Table) IsValidControl(name string) bool {
	_, ok := t.controls[name]
	return ok
}

// IsVanillaElite reports whether the vanilla game can promote the
// descriptor to an elite.
func (t *Table) IsVanillaElite(name string) bool {
	_, ok := t.elites[name]
	return ok
}
