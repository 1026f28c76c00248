package domain

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vonacht/cd2ifier/internal/mapping"
	m "github.com/vonacht/cd2ifier/internal/model"
)

// baseHazard is always written for explicitness; CD2 scales everything
// relative to it.
const baseHazard = "Hazard 5"

// assembler builds one CD2Document from one classified CD1Document. It is
// created per conversion run and never shared.
type assembler struct {
	table   *mapping.Table
	opts    Options
	out     m.Value
	summary m.Summary
}

func newAssembler(table *mapping.Table, opts Options) *assembler {
	return &assembler{table: table, opts: opts, out: m.Object()}
}

// assemble walks the mapping table in its fixed order and places every
// present CD1 field at its CD2 destination, so output key order never
// depends on input field order.
func (a *assembler) assemble(doc m.CD1Document) (m.CD2Document, m.Summary, error) {
	if doc.Root.Kind() != m.KindObject {
		return m.CD2Document{}, a.summary, fmt.Errorf("%w: top-level value is not an object", m.ErrMalformedInput)
	}

	if err := a.buildDifficultySetting(doc.Root); err != nil {
		return m.CD2Document{}, a.summary, err
	}

	plan, err := synthesizeResupply(doc.Root)
	if err != nil {
		return m.CD2Document{}, a.summary, err
	}

	var mutators []m.MutatorEntry

	if plan.Mutator != nil {
		mutators = append(mutators, *plan.Mutator)
		a.summary.Mutators++
		a.out.SetPath(plan.Mutator.Target, mutateObject(*plan.Mutator))
	} else {
		a.out.SetPath([]string{m.ModuleResupply, "Cost"}, m.NumberFromFloat(plan.Cost))
	}

	if err := a.placeMappedFields(doc.Root); err != nil {
		return m.CD2Document{}, a.summary, err
	}

	if err := a.reportUnknownFields(doc.Root); err != nil {
		return m.CD2Document{}, a.summary, err
	}

	return m.CD2Document{
		Root:            a.out,
		Mutators:        mutators,
		DescriptionTail: doc.DescriptionTail,
	}, a.summary, nil
}

// buildDifficultySetting places Name and Description first. Name is
// mandatory: a difficulty without one cannot be selected in CD2 and
// fabricating a default would be a silent gameplay change.
func (a *assembler) buildDifficultySetting(root m.Value) error {
	name, ok := root.Get("Name")
	if !ok {
		return fmt.Errorf("%w: Name", m.ErrMissingRequiredField)
	}

	if name.Kind() != m.KindString {
		return fmt.Errorf("%w: Name is not a string", m.ErrMalformedInput)
	}

	if strings.Contains(name.StringVal(), "\n") {
		return fmt.Errorf("%w: Name contains a line break", m.ErrUnsupportedMultilineName)
	}

	a.summary.Relocated++

	description, ok := root.Get("Description")
	switch {
	case !ok:
		slog.Warn("Description is missing, defaulting to empty; it is recommended to add one")

		description = m.String("")
	case description.Kind() != m.KindString:
		return fmt.Errorf("%w: Description is not a string", m.ErrMalformedInput)
	default:
		a.summary.Relocated++
	}

	a.out.SetPath([]string{m.ModuleDifficultySetting, "Name"}, name)
	a.out.SetPath([]string{m.ModuleDifficultySetting, "Description"}, description)
	a.out.SetPath([]string{m.ModuleDifficultySetting, "BaseHazard"}, m.String(baseHazard))

	return nil
}

func (a *assembler) placeMappedFields(root m.Value) error {
	for _, rule := range a.table.Mappings() {
		value, present := root.Get(rule.Name)
		if !present {
			continue
		}

		switch rule.Outcome {
		case mapping.OutcomeModule:
			if rule.Name == "Name" || rule.Name == "Description" {
				continue // placed by buildDifficultySetting
			}

			a.placeField(rule, value)

		case mapping.OutcomeDeprecated:
			slog.Info("deprecated field, skipping", "field", rule.Name)
			a.summary.Deprecated++

		case mapping.OutcomeIgnored, mapping.OutcomeMutator:
			// Consumed by the resupply synthesizer.

		case mapping.OutcomePassthrough:
			a.out.Set(rule.Name, value)
			a.summary.Passthrough++

		case mapping.OutcomePawnStats:
			modules, err := translateStats(a.table, value, "difficulty", a.opts, &a.summary)
			if err != nil {
				return err
			}

			if err := writeStatModules(&a.out, root, modules, "difficulty"); err != nil {
				return err
			}

		case mapping.OutcomeEnemies:
			enemies, err := buildEnemies(a.table, value, a.opts, &a.summary)
			if err != nil {
				return err
			}

			a.out.Set(m.ModuleEnemies, enemies)
		}
	}

	return nil
}

func (a *assembler) placeField(rule mapping.FieldMapping, value m.Value) {
	field := rule.Name

	// StationaryEnemies changed name in CD2.
	if field == "StationaryEnemies" {
		slog.Info("renaming StationaryEnemies to StationaryPool")

		field = "StationaryPool"
	}

	a.out.SetPath([]string{rule.Module, field}, rewriteRangeBins(value))
	a.summary.Relocated++
}

// rewriteRangeBins flattens weighted-bin arrays: CD2 dropped the nested
// range object, so {weight, range:{min,max}} becomes {weight, min, max}.
func rewriteRangeBins(value m.Value) m.Value {
	elems := value.Elems()
	if value.Kind() != m.KindArray || len(elems) == 0 || !elems[0].Has("weight") {
		return value
	}

	out := make([]m.Value, 0, len(elems))

	for _, bin := range elems {
		weight, _ := bin.Get("weight")
		minV, _ := bin.GetPath("range", "min")
		maxV, _ := bin.GetPath("range", "max")

		flat := m.Object()
		flat.Set("weight", weight)
		flat.Set("min", minV)
		flat.Set("max", maxV)
		out = append(out, flat)
	}

	return m.Array(out...)
}

func (a *assembler) reportUnknownFields(root m.Value) error {
	for _, f := range root.Fields() {
		if _, known := a.table.Lookup(f.Name); known {
			continue
		}

		if a.opts.Strict {
			return fmt.Errorf("%w: %s", m.ErrUnknownField, f.Name)
		}

		slog.Warn("unsupported field, skipping; please open an issue", "field", f.Name)
		a.summary.Unknown++
	}

	return nil
}
