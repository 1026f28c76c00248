package domain

import (
	"fmt"
	"log/slog"

	"github.com/vonacht/cd2ifier/internal/mapping"
	m "github.com/vonacht/cd2ifier/internal/model"
)

// translateStats groups a CD1 pawn-stats block into the CD2 stat module
// taxonomy. Each recognized stat lands in exactly one module with its
// configured transform applied; unknown stats follow the unknown-field
// policy. Module order follows the stat table, never the input.
func translateStats(table *mapping.Table, block m.Value, owner string, opts Options, summary *m.Summary) ([]m.StatModule, error) {
	if block.Kind() != m.KindObject {
		return nil, fmt.Errorf("%w: pawn stats of %s is not an object", m.ErrMalformedInput, owner)
	}

	var modules []m.StatModule

	index := make(map[string]int)

	for _, rule := range table.Stats() {
		value, ok := block.Get(rule.Name)
		if !ok {
			continue
		}

		// Stats are numeric by contract; fail loudly on shape mismatch.
		f, err := value.Float()
		if err != nil {
			return nil, fmt.Errorf("stat %s of %s: %w", rule.Name, owner, err)
		}

		translated := value
		if rule.Invert {
			translated = m.NumberFromFloat(1 - f)
		}

		pos, ok := index[rule.Module]
		if !ok {
			pos = len(modules)
			index[rule.Module] = pos
			modules = append(modules, m.StatModule{Name: rule.Module})
		}

		modules[pos].Stats = append(modules[pos].Stats, m.Field{Name: rule.Field, Value: translated})
	}

	for _, f := range block.Fields() {
		if _, known := table.LookupStat(f.Name); known {
			continue
		}

		if opts.Strict {
			return nil, fmt.Errorf("%w: pawn stat %s of %s", m.ErrUnknownField, f.Name, owner)
		}

		slog.Warn("unsupported pawn stat, skipping", "stat", f.Name, "owner", owner)
		summary.Unknown++
	}

	return modules, nil
}

// writeStatModules places translated stat modules onto a target object.
// Direct-field stats (empty module name) are written at the target's top
// level. A source that already carries the migrated destination alongside
// the old-style stat is undefined input and fails rather than guessing
// precedence.
func writeStatModules(target *m.Value, source m.Value, modules []m.StatModule, owner string) error {
	for _, mod := range modules {
		if mod.Name != "" && source.Has(mod.Name) {
			return fmt.Errorf("%w: %s has both PawnStats and a migrated %s block", m.ErrMalformedInput, owner, mod.Name)
		}

		for _, stat := range mod.Stats {
			if mod.Name == "" {
				if source.Has(stat.Name) {
					return fmt.Errorf("%w: %s has both PawnStats and a migrated %s field", m.ErrMalformedInput, owner, stat.Name)
				}

				target.Set(stat.Name, stat.Value)

				continue
			}

			target.SetPath([]string{mod.Name, stat.Name}, stat.Value)
		}
	}

	return nil
}
