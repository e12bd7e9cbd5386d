package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCSVFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"GW_1.2_x.csv", "GW_1.1_x.csv", "readme.txt", "UPPER.CSV"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.csv"), 0755))

	discovery := NewDiscovery(dir)
	found, err := discovery.FindCSVFiles(".")
	require.NoError(t, err)

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.Name
	}

	// Sorted by name, case-insensitive extension match, directories
	// excluded.
	assert.Equal(t, []string{"GW_1.1_x.csv", "GW_1.2_x.csv", "UPPER.CSV"}, names)
	for _, f := range found {
		assert.False(t, f.IsDir)
		assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
	}
}

func TestFindCSVFiles_MissingDir(t *testing.T) {
	discovery := NewDiscovery(t.TempDir())
	_, err := discovery.FindCSVFiles("absent")
	assert.Error(t, err)
}

func TestListDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Period2"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Period1"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.csv"), []byte("x"), 0644))

	discovery := NewDiscovery(dir)
	dirs, err := discovery.ListDirectories(".")
	require.NoError(t, err)

	require.Len(t, dirs, 2)
	assert.Equal(t, "Period1", dirs[0].Name)
	assert.Equal(t, "Period2", dirs[1].Name)
	assert.True(t, dirs[0].IsDir)
}
