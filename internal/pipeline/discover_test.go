package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscoverFiles_FindsNestedSidecars(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "menu.pipeline.json"),
		[]byte(`{"name":"menu","description":"answers menu questions"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "calc.pipeline.json"),
		[]byte(`{"name":"calc","description":"checks arithmetic"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ignored.json"), []byte(`{}`), 0o644))

	descriptors, err := DiscoverFiles(root)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)

	names := map[string]bool{}
	for _, d := range descriptors {
		names[d.Name] = true
	}
	require.True(t, names["menu"])
	require.True(t, names["calc"])
}

func TestDiscoverFiles_EmptyDirReturnsEmpty(t *testing.T) {
	descriptors, err := DiscoverFiles(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, descriptors)
}
