package commands_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payra-dev/payra/internal/commands"
	"github.com/payra-dev/payra/internal/store"
)

func runPayra(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := commands.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runPayra(t, args...)
	require.NoError(t, err, "payra %v: %s", args, out)
	return out
}

func initHome(t *testing.T, extra ...string) string {
	t.Helper()
	home := t.TempDir()
	mustRun(t, append([]string{"init", home}, extra...)...)
	return home
}

// withStore opens the home's database; it must be closed before the next
// command runs because bbolt holds an exclusive lock.
func withStore(t *testing.T, home string, fn func(s *store.Store)) {
	t.Helper()
	s, err := store.Open(filepath.Join(home, "payra.db"))
	require.NoError(t, err)
	defer s.Close()
	fn(s)
}

func TestInit_CreatesStructure(t *testing.T) {
	home := initHome(t)

	for _, d := range []string{"logs", "import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(home, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	data, err := os.ReadFile(filepath.Join(home, "payra.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "store_file: payra.db")

	_, err = os.Stat(filepath.Join(home, "payra.db"))
	require.NoError(t, err)
}

func TestInit_SeedsUserAndCategories(t *testing.T) {
	home := initHome(t, "--income", "4200", "--email", "me@example.com")

	withStore(t, home, func(s *store.Store) {
		u, err := s.FetchUser()
		require.NoError(t, err)
		assert.Equal(t, "me@example.com", u.Email)
		assert.Equal(t, "4200.00", u.MonthlyIncome.StringFixed(2))
		assert.True(t, u.Onboarded)

		cats, err := s.FetchCategories()
		require.NoError(t, err)
		assert.Len(t, cats, 10)
	})
}

func TestInit_NoCategories(t *testing.T) {
	home := initHome(t, "--no-categories")
	withStore(t, home, func(s *store.Store) {
		cats, err := s.FetchCategories()
		require.NoError(t, err)
		assert.Empty(t, cats)
	})
}

func TestInit_Idempotent(t *testing.T) {
	home := initHome(t)
	out := mustRun(t, "init", home)
	assert.Contains(t, out, "0 categories added")

	withStore(t, home, func(s *store.Store) {
		cats, err := s.FetchCategories()
		require.NoError(t, err)
		assert.Len(t, cats, 10)
	})
}

func TestInit_UsesHomeFlag(t *testing.T) {
	home := t.TempDir()
	mustRun(t, "--home", home, "init")
	_, err := os.Stat(filepath.Join(home, "payra.yaml"))
	require.NoError(t, err)
}

func TestInit_BadIncome(t *testing.T) {
	_, err := runPayra(t, "init", t.TempDir(), "--income", "lots")
	assert.ErrorContains(t, err, "invalid amount")
}

func TestCommands_RequireHome(t *testing.T) {
	_, err := runPayra(t, "--home", t.TempDir(), "category", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "payra init")
}

func TestInvalidLogLevel(t *testing.T) {
	home := initHome(t)
	_, err := runPayra(t, "--home", home, "--log-level", "loud", "category", "list")
	assert.ErrorContains(t, err, "invalid log level")
}
