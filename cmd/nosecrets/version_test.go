package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunVersionPrintsVersionAndGoInfo(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	err := runVersion(cmd, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "nosecrets v")
	assert.Contains(t, out.String(), "Go version:")
	assert.Contains(t, out.String(), "OS/Arch:")
}
