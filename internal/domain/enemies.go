package domain

import (
	"fmt"
	"log/slog"

	"github.com/vonacht/cd2ifier/internal/mapping"
	m "github.com/vonacht/cd2ifier/internal/model"
)

// buildEnemies translates the CD1 EnemyDescriptors block into the CD2
// EnemiesNoSync module: pawn stats are regrouped into stat modules,
// controls CD2 no longer knows are dropped, and non-vanilla elites get an
// explicit base.
func buildEnemies(table *mapping.Table, descriptors m.Value, opts Options, summary *m.Summary) (m.Value, error) {
	if descriptors.Kind() != m.KindObject {
		return m.Value{}, fmt.Errorf("%w: EnemyDescriptors is not an object", m.ErrMalformedInput)
	}

	out := m.Object()

	for _, entry := range descriptors.Fields() {
		enemy, controls := entry.Name, entry.Value

		if controls.Kind() != m.KindObject {
			return m.Value{}, fmt.Errorf("%w: descriptor %s is not an object", m.ErrMalformedInput, enemy)
		}

		translated, err := translateDescriptor(table, enemy, controls, opts, summary)
		if err != nil {
			return m.Value{}, err
		}

		out.Set(enemy, translated)
		summary.Enemies++
	}

	return out, nil
}

func translateDescriptor(table *mapping.Table, enemy string, controls m.Value, opts Options, summary *m.Summary) (m.Value, error) {
	out := m.Object()

	var pawnStats m.Value

	hasStats := false

	for _, f := range controls.Fields() {
		if f.Name == "PawnStats" {
			pawnStats = f.Value
			hasStats = true

			continue
		}

		if !table.IsValidControl(f.Name) {
			slog.Info("deprecated or mistyped enemy control, skipping", "control", f.Name, "enemy", enemy)
			summary.Deprecated++

			continue
		}

		out.Set(f.Name, f.Value)
	}

	if hasStats {
		modules, err := translateStats(table, pawnStats, enemy, opts, summary)
		if err != nil {
			return m.Value{}, err
		}

		if err := writeStatModules(&out, controls, modules, enemy); err != nil {
			return m.Value{}, err
		}
	}

	forceEliteBase(table, enemy, &out)

	return out, nil
}

// forceEliteBase pins the elite base for descriptors that are flagged
// Elite but whose Base the vanilla game cannot promote, provided the
// descriptor's own name can be. Without this the game would silently
// spawn the non-elite base.
func forceEliteBase(table *mapping.Table, enemy string, controls *m.Value) {
	elite, ok := controls.Get("Elite")
	if !ok || elite.Kind() != m.KindBool || !elite.BoolVal() {
		return
	}

	base, _ := controls.Get("Base")
	if base.Kind() == m.KindString && table.IsVanillaElite(base.StringVal()) {
		return
	}

	if !table.IsVanillaElite(enemy) {
		return
	}

	slog.Info("non-vanilla elite enemy detected, forcing base", "enemy", enemy, "base", base.StringVal())
	controls.Set("ForceEliteBase", m.String(enemy))
}
