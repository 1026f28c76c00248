package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/vonacht/cd2ifier/internal/model"
)

func TestTargetPath_ExplicitTargetWins(t *testing.T) {
	io := NewLocalDocumentIO()
	require.Equal(t, m.Path("out.json"), io.TargetPath("in.json", "out.json"))
}

func TestTargetPath_DerivedNames(t *testing.T) {
	io := NewLocalDocumentIO()

	require.Equal(t, m.Path("hazard6.cd2.json"), io.TargetPath("hazard6.json", ""))
	require.Equal(t, m.Path(filepath.Join("configs", "h.cd2.json")), io.TargetPath(m.Path(filepath.Join("configs", "h.json")), ""))
	require.Equal(t, m.Path("hazard6.cd2"), io.TargetPath("hazard6", ""))
}

func TestReadWriteRoundTrip(t *testing.T) {
	io := NewLocalDocumentIO()
	path := m.Path(filepath.Join(t.TempDir(), "doc.json"))

	require.NoError(t, io.WriteTarget(path, []byte(`{"Name":"x"}`)))

	content, err := io.ReadSource(path)
	require.NoError(t, err)
	require.Equal(t, `{"Name":"x"}`, string(content))
}

func TestReadSource_Missing(t *testing.T) {
	io := NewLocalDocumentIO()

	_, err := io.ReadSource(m.Path(filepath.Join(t.TempDir(), "nope.json")))
	require.Error(t, err)
}

func TestListSources(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.json", "a.json", "a.cd2.json", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	io := NewLocalDocumentIO()

	sources, err := io.ListSources(m.Path(dir))
	require.NoError(t, err)
	require.Equal(t, []m.Path{
		m.Path(filepath.Join(dir, "a.json")),
		m.Path(filepath.Join(dir, "b.json")),
	}, sources)
}
