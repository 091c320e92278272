package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdExprFlag(t *testing.T) {
	cmd := getRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"-e", "2 + 3 * 4"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "14\n", out.String())
}

func TestRootCmdExprError(t *testing.T) {
	cmd := getRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"-e", "1 / 0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestRootCmdScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.calc")
	require.NoError(t, os.WriteFile(path, []byte("x = 2\nx ^ 5\n"), 0644))

	cmd := getRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "2\n32\n", out.String())
}
