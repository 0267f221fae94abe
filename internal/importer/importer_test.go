package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_MissingInbox(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScan_OnlyCSVFiles(t *testing.T) {
	home := t.TempDir()
	inbox := filepath.Join(home, InboxDir)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ProcessedDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "jan.csv"), []byte("Date,Description,Amount\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "FEB.CSV"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "notes.txt"), []byte("x"), 0o644))

	files, err := Scan(home)
	require.NoError(t, err)
	require.Len(t, files, 2)

	names := []string{files[0].Name, files[1].Name}
	assert.ElementsMatch(t, []string{"jan.csv", "FEB.CSV"}, names)
	for _, f := range files {
		assert.Equal(t, filepath.Join(inbox, f.Name), f.Path)
		if f.Name == "jan.csv" {
			assert.Equal(t, int64(len("Date,Description,Amount\n")), f.Size)
		}
	}
}

func TestMarkProcessed(t *testing.T) {
	home := t.TempDir()
	inbox := filepath.Join(home, InboxDir)
	require.NoError(t, os.MkdirAll(inbox, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "jan.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(home, "jan.csv"))

	data, err := os.ReadFile(filepath.Join(home, ProcessedDir, "jan.csv"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	files, err := Scan(home)
	require.NoError(t, err)
	assert.Empty(t, files)

	assert.Error(t, MarkProcessed(home, "jan.csv"))
}
