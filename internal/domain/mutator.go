package domain

import (
	"fmt"
	"math"

	m "github.com/vonacht/cd2ifier/internal/model"
)

// CD2 has no starting-resource field; a non-zero StartingNitra is
// expressed as a mutator on the resupply cost instead.
const mutatorByResuppliesCalled = "ByResuppliesCalled"

// defaultResupplyCost is the stock cost the game uses when a difficulty
// does not override it.
const defaultResupplyCost = 80

// resupplyPlan is the synthesizer's verdict for the Resupply module:
// either a plain cost or a single mutator entry replacing it.
type resupplyPlan struct {
	Cost    float64
	Mutator *m.MutatorEntry
}

// synthesizeResupply inspects the CD1 document and decides how CD2
// expresses its resupply economy. A missing or zero StartingNitra keeps
// the plain cost; anything else yields a ByResuppliesCalled mutator whose
// value vector front-loads the granted nitra. Entries are produced in
// fixed order so equivalent inputs convert to byte-identical output.
func synthesizeResupply(root m.Value) (resupplyPlan, error) {
	cost := float64(defaultResupplyCost)

	if raw, ok := root.Get("ResupplyCost"); ok && !raw.IsNull() {
		f, err := raw.Float()
		if err != nil {
			return resupplyPlan{}, fmt.Errorf("ResupplyCost: %w", err)
		}

		if f != defaultResupplyCost {
			cost = f
		}
	}

	nitraValue, ok := root.Get("StartingNitra")
	if !ok || nitraValue.IsNull() {
		return resupplyPlan{Cost: cost}, nil
	}

	nitra, err := nitraValue.Float()
	if err != nil {
		return resupplyPlan{}, fmt.Errorf("StartingNitra: %w", err)
	}

	if nitra == 0 {
		return resupplyPlan{Cost: cost}, nil
	}

	// A non-positive cost cannot fund a resupply schedule; the vector
	// math below divides by it.
	if cost <= 0 {
		return resupplyPlan{}, fmt.Errorf("%w: ResupplyCost %v cannot express StartingNitra as a resupply schedule", m.ErrMalformedInput, cost)
	}

	return resupplyPlan{
		Cost: cost,
		Mutator: &m.MutatorEntry{
			Type:   mutatorByResuppliesCalled,
			Target: []string{m.ModuleResupply, "Cost"},
			Param:  nitraValue,
			Values: supplyVector(nitra, cost),
		},
	}, nil
}

// supplyVector derives the per-call resupply cost schedule that grants
// the given starting nitra: free (or discounted) early calls, then the
// regular cost from there on.
func supplyVector(nitra, cost float64) []float64 {
	if nitra <= cost {
		return []float64{cost - nitra, cost}
	}

	free := int(nitra / cost)

	values := make([]float64, 0, free+2)
	for i := 0; i < free; i++ {
		values = append(values, 0)
	}

	return append(values, cost-math.Mod(nitra, cost), cost)
}

// mutateObject renders a mutator entry in the shape CD2 expects at the
// entry's target location.
func mutateObject(entry m.MutatorEntry) m.Value {
	values := make([]m.Value, 0, len(entry.Values))
	for _, v := range entry.Values {
		values = append(values, m.NumberFromFloat(v))
	}

	obj := m.Object()
	obj.Set("Mutate", m.String(entry.Type))
	obj.Set("Values", m.Array(values...))

	return obj
}
