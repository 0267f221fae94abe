package importlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func TestAppendAndRead(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, Append(home, Entry{Timestamp: testTime, File: "jan.csv", Parsed: 5, Skipped: 3, Status: StatusReviewed}))
	require.NoError(t, Append(home, Entry{Timestamp: testTime.Add(time.Minute), File: "jan, final.csv", Parsed: 5, Skipped: 3, Committed: 5, Status: StatusCommitted}))

	entries, err := Read(home)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.True(t, testTime.Equal(entries[0].Timestamp))
	assert.Equal(t, "jan.csv", entries[0].File)
	assert.Equal(t, 3, entries[0].Skipped)
	assert.Equal(t, StatusReviewed, entries[0].Status)

	assert.Equal(t, "jan, final.csv", entries[1].File)
	assert.Equal(t, 5, entries[1].Committed)

	data, err := os.ReadFile(filepath.Join(home, Path))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestRead_Missing(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_HeaderOnly(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "logs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, Path), []byte(Header+"\n"), 0o644))

	entries, err := Read(home)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_BadCount(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "logs"), 0o755))
	body := Header + "\n2025-01-15T10:30:00Z,a.csv,five,0,0,failed\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, Path), []byte(body), 0o644))

	_, err := Read(home)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}
