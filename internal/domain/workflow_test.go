package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vonacht/cd2ifier/internal/adapter"
	m "github.com/vonacht/cd2ifier/internal/model"
)

func newTestWorkflow(t *testing.T) *Workflow {
	t.Helper()
	return NewWorkflow(adapter.NewLocalDocumentIO(), NewConverter(loadTable(t)))
}

func writeInput(t *testing.T, dir, name, content string) m.Path {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return m.Path(path)
}

func TestWorkflow_ConvertFile(t *testing.T) {
	dir := t.TempDir()
	source := writeInput(t, dir, "hazard6.json", hazardSixInput)

	result, err := newTestWorkflow(t).ConvertFile(source, "", Options{})
	require.NoError(t, err)
	require.Equal(t, source, result.Source)
	require.Equal(t, m.Path(filepath.Join(dir, "hazard6.cd2.json")), result.Target)
	require.Equal(t, 1, result.Summary.Mutators)

	content, err := os.ReadFile(string(result.Target))
	require.NoError(t, err)

	root, err := m.Decode(content)
	require.NoError(t, err)

	name, ok := root.GetPath(m.ModuleDifficultySetting, "Name")
	require.True(t, ok)
	require.Equal(t, "Hazard 6", name.StringVal())
}

func TestWorkflow_ExplicitTarget(t *testing.T) {
	dir := t.TempDir()
	source := writeInput(t, dir, "in.json", `{"Name": "x"}`)
	target := m.Path(filepath.Join(dir, "out.json"))

	result, err := newTestWorkflow(t).ConvertFile(source, target, Options{})
	require.NoError(t, err)
	require.Equal(t, target, result.Target)

	_, err = os.Stat(string(target))
	require.NoError(t, err)
}

func TestWorkflow_NoOutputOnFatalError(t *testing.T) {
	dir := t.TempDir()
	source := writeInput(t, dir, "bad.json", `{"Description": "missing name"}`)

	_, err := newTestWorkflow(t).ConvertFile(source, "", Options{})
	require.ErrorIs(t, err, m.ErrMissingRequiredField)

	_, err = os.Stat(filepath.Join(dir, "bad.cd2.json"))
	require.True(t, os.IsNotExist(err))
}

func TestWorkflow_MultilineNameProducesNoOutput(t *testing.T) {
	dir := t.TempDir()
	source := writeInput(t, dir, "bad.json", "{\n    \"Name\": \"Hazard\n6\",\n    \"Description\": \"d\"\n}")

	_, err := newTestWorkflow(t).ConvertFile(source, "", Options{})
	require.ErrorIs(t, err, m.ErrUnsupportedMultilineName)

	_, err = os.Stat(filepath.Join(dir, "bad.cd2.json"))
	require.True(t, os.IsNotExist(err))
}

func TestWorkflow_ConvertDir(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.json", `{"Name": "a"}`)
	writeInput(t, dir, "b.json", `{"Name": "b", "StartingNitra": 50}`)
	writeInput(t, dir, "skip.cd2.json", `{"Name": "already converted"}`)
	writeInput(t, dir, "notes.txt", "not json")

	results, err := newTestWorkflow(t).ConvertDir(m.Path(dir), 2, Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Stable listing order.
	require.Equal(t, m.Path(filepath.Join(dir, "a.json")), results[0].Source)
	require.Equal(t, m.Path(filepath.Join(dir, "b.json")), results[1].Source)
	require.Equal(t, 1, results[1].Summary.Mutators)

	_, err = os.Stat(filepath.Join(dir, "a.cd2.json"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "b.cd2.json"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "skip.cd2.cd2.json"))
	require.True(t, os.IsNotExist(err))
}

func TestWorkflow_BatchMatchesSingleRuns(t *testing.T) {
	batchDir := t.TempDir()
	singleDir := t.TempDir()

	writeInput(t, batchDir, "h.json", hazardSixInput)
	source := writeInput(t, singleDir, "h.json", hazardSixInput)

	w := newTestWorkflow(t)

	_, err := w.ConvertDir(m.Path(batchDir), 1, Options{})
	require.NoError(t, err)

	_, err = w.ConvertFile(source, "", Options{})
	require.NoError(t, err)

	batchOut, err := os.ReadFile(filepath.Join(batchDir, "h.cd2.json"))
	require.NoError(t, err)

	singleOut, err := os.ReadFile(filepath.Join(singleDir, "h.cd2.json"))
	require.NoError(t, err)

	require.Equal(t, singleOut, batchOut)
}
