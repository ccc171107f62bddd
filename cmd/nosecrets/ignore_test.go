package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetIgnoreFlags() {
	ignorePath = ""
	ignoreFile = ""
}

func TestRunIgnoreAppendsPlainFingerprint(t *testing.T) {
	resetIgnoreFlags()
	dir := t.TempDir()
	withTempCwd(t, dir)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	err := runIgnore(cmd, []string{"nsi_deadbeefcafe"})
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, ".nosecretsignore"))
	require.NoError(t, err)
	assert.Equal(t, "nsi_deadbeefcafe\n", string(contents))
}

func TestRunIgnoreWithPathGlobScopesEntry(t *testing.T) {
	resetIgnoreFlags()
	dir := t.TempDir()
	withTempCwd(t, dir)
	ignorePath = "testdata/*.env"

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	err := runIgnore(cmd, []string{"nsi_deadbeefcafe"})
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, ".nosecretsignore"))
	require.NoError(t, err)
	assert.Equal(t, "nsi_deadbeefcafe:testdata/*.env\n", string(contents))
}

func TestRunIgnoreAppendsToExistingFile(t *testing.T) {
	resetIgnoreFlags()
	dir := t.TempDir()
	withTempCwd(t, dir)
	ignoreFilePath := filepath.Join(dir, ".nosecretsignore")
	require.NoError(t, os.WriteFile(ignoreFilePath, []byte("nsi_existingentry\n"), 0o644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	err := runIgnore(cmd, []string{"nsi_newentry"})
	require.NoError(t, err)

	contents, err := os.ReadFile(ignoreFilePath)
	require.NoError(t, err)
	assert.Equal(t, "nsi_existingentry\nnsi_newentry\n", string(contents))
}

func TestRunIgnoreCustomFileFlag(t *testing.T) {
	resetIgnoreFlags()
	dir := t.TempDir()
	withTempCwd(t, dir)
	ignoreFile = filepath.Join(dir, "custom-ignore")

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	err := runIgnore(cmd, []string{"nsi_custom"})
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "custom-ignore"))
	require.NoError(t, err)
	assert.Equal(t, "nsi_custom\n", string(contents))
	assert.Contains(t, out.String(), "custom-ignore")
}
