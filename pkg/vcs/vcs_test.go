package vcs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir
}

func TestDiscoverRootFindsRepository(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, ok, err := DiscoverRoot(sub)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, dir, root)
}

func TestDiscoverRootOutsideRepoReturnsNotOk(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := DiscoverRoot(dir)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStagedFilesReturnsAddedFile(t *testing.T) {
	dir := initRepo(t)
	path := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("secret.txt")
	require.NoError(t, err)

	files, err := StagedFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, path, files[0])
}

func TestStagedFilesEmptyWhenNothingStaged(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untouched.txt"), []byte("x"), 0o644))

	files, err := StagedFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}
