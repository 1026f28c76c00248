package mapping

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, table.Mappings())
	require.NotEmpty(t, table.Stats())
}

// Every recognized CD1 field must resolve to exactly one destination
// outcome; the loader enforces it, this test audits the shipped data.
func TestEveryFieldIsClassified(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	seen := make(map[string]bool)

	for _, rule := range table.Mappings() {
		require.False(t, seen[rule.Name], "field %s classified twice", rule.Name)
		seen[rule.Name] = true

		if rule.Outcome == OutcomeModule {
			require.NotEmpty(t, rule.Module, "field %s relocates nowhere", rule.Name)
		} else {
			require.Empty(t, rule.Module, "field %s has a module despite status", rule.Name)
		}

		looked, ok := table.Lookup(rule.Name)
		require.True(t, ok)
		require.Equal(t, rule, looked)
	}
}

// Every pawn stat is assigned to exactly one module destination.
func TestStatAssignmentsAreUnique(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	destinations := make(map[string]bool)

	for _, rule := range table.Stats() {
		require.NotEmpty(t, rule.Field)

		dest := rule.Module + "." + rule.Field
		require.False(t, destinations[dest], "destination %s assigned twice", dest)
		destinations[dest] = true
	}
}

func TestSpecialClassifications(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	nitra, ok := table.Lookup("StartingNitra")
	require.True(t, ok)
	require.Equal(t, OutcomeMutator, nitra.Outcome)

	descriptors, ok := table.Lookup("EnemyDescriptors")
	require.True(t, ok)
	require.Equal(t, OutcomeEnemies, descriptors.Outcome)

	stationary, ok := table.Lookup("StationaryEnemies")
	require.True(t, ok)
	require.Equal(t, OutcomeModule, stationary.Outcome)
	require.Equal(t, "Pools", stationary.Module)

	mule, ok := table.Lookup("EscortMule")
	require.True(t, ok)
	require.Equal(t, OutcomePassthrough, mule.Outcome)

	_, ok = table.Lookup("NoSuchField")
	require.False(t, ok)
}

func TestStatTransforms(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	move, ok := table.LookupStat("MoveSpeed")
	require.True(t, ok)
	require.Equal(t, "Movement", move.Module)
	require.False(t, move.Invert)

	fire, ok := table.LookupStat("FireResistance")
	require.True(t, ok)
	require.Equal(t, "Resistances", fire.Module)
	require.True(t, fire.Invert)

	// Raw damage resistance keeps its scale.
	damage, ok := table.LookupStat("DamageResistance")
	require.True(t, ok)
	require.False(t, damage.Invert)

	// MaxHealth becomes a direct field.
	health, ok := table.LookupStat("MaxHealth")
	require.True(t, ok)
	require.Empty(t, health.Module)
	require.Equal(t, "HealthMultiplier", health.Field)
}

func TestEnemyControlTables(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	require.True(t, table.IsValidControl("Base"))
	require.True(t, table.IsValidControl("Elite"))
	require.False(t, table.IsValidControl("OldSpawnChance"))

	require.True(t, table.IsVanillaElite("ED_Spider_Grunt"))
	require.False(t, table.IsVanillaElite("ED_CaveLeech"))
}

func TestFieldValidation(t *testing.T) {
	_, err := rawField{Name: "X"}.toMapping()
	require.Error(t, err)

	_, err = rawField{Name: "X", Module: "Caps", Status: "ignore"}.toMapping()
	require.Error(t, err)

	_, err = rawField{Name: "X", Status: "bogus"}.toMapping()
	require.Error(t, err)

	_, err = rawStat{Name: "X", Field: "Y", Transform: "sqrt"}.toMapping()
	require.Error(t, err)
}
