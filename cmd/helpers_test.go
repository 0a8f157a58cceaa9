/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func varsCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{
		Use:  "test",
		RunE: func(*cobra.Command, []string) error { return nil },
	}
	cmd.Flags().StringArray("var", nil, "")
	cmd.Flags().StringArray("var-file", nil, "")
	cmd.Flags().Bool("merge-vars", false, "")
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return cmd
}

func writeVarFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSetupVars_SingleVarFile(t *testing.T) {
	file := writeVarFile(t, "vars.yaml", "instance_type: t3.micro\ncount: 2\n")
	cmd := varsCommand(t, "--var-file", file)

	vars, err := setupVars(cmd)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"instance_type": "t3.micro", "count": 2}, vars)
}

func TestSetupVars_LaterFileReplacesTopLevelKeys(t *testing.T) {
	first := writeVarFile(t, "first.yaml", "network:\n  cidr: 10.0.0.0/16\n  azs: 2\n")
	second := writeVarFile(t, "second.yaml", "network:\n  cidr: 10.1.0.0/16\n")
	cmd := varsCommand(t, "--var-file", first, "--var-file", second)

	vars, err := setupVars(cmd)

	require.NoError(t, err)
	// Without --merge-vars the whole "network" mapping is replaced, so
	// "azs" from the first file is gone
	assert.Equal(t, map[string]any{
		"network": map[string]any{"cidr": "10.1.0.0/16"},
	}, vars)
}

func TestSetupVars_MergeVarsDeepMergesMappings(t *testing.T) {
	first := writeVarFile(t, "first.yaml", "network:\n  cidr: 10.0.0.0/16\n  azs: 2\n")
	second := writeVarFile(t, "second.yaml", "network:\n  cidr: 10.1.0.0/16\n")
	cmd := varsCommand(t, "--var-file", first, "--var-file", second, "--merge-vars")

	vars, err := setupVars(cmd)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"network": map[string]any{"cidr": "10.1.0.0/16", "azs": 2},
	}, vars)
}

func TestSetupVars_VarFlagWinsOverFiles(t *testing.T) {
	file := writeVarFile(t, "vars.yaml", "instance_type: t3.micro\n")
	cmd := varsCommand(t, "--var-file", file, "--var", "instance_type=t3.large")

	vars, err := setupVars(cmd)

	require.NoError(t, err)
	assert.Equal(t, "t3.large", vars["instance_type"])
}

func TestSetupVars_DottedVarKeyWithMergeVars(t *testing.T) {
	file := writeVarFile(t, "vars.yaml", "network:\n  cidr: 10.0.0.0/16\n  azs: 2\n")
	cmd := varsCommand(t, "--var-file", file, "--var", "network.cidr=10.9.0.0/16", "--merge-vars")

	vars, err := setupVars(cmd)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"network": map[string]any{"cidr": "10.9.0.0/16", "azs": 2},
	}, vars)
}

func TestSetupVars_DottedVarKeyNestsWithoutMergeVars(t *testing.T) {
	cmd := varsCommand(t, "--var", "network.cidr=10.9.0.0/16")

	vars, err := setupVars(cmd)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"network": map[string]any{"cidr": "10.9.0.0/16"},
	}, vars)
}

func TestSetupVars_DottedVarKeySetsIntoFileVars(t *testing.T) {
	file := writeVarFile(t, "vars.yaml", "network:\n  cidr: 10.0.0.0/16\n  azs: 2\n")
	cmd := varsCommand(t, "--var-file", file, "--var", "network.cidr=10.9.0.0/16")

	vars, err := setupVars(cmd)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"network": map[string]any{"cidr": "10.9.0.0/16", "azs": 2},
	}, vars)
}

func TestSetupVars_InvalidVarFlag(t *testing.T) {
	cmd := varsCommand(t, "--var", "missing-equals")

	_, err := setupVars(cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected key=value")
}

func TestSetupVars_MissingVarFile(t *testing.T) {
	cmd := varsCommand(t, "--var-file", "/nonexistent/vars.yaml")

	_, err := setupVars(cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read var file")
}

func TestSetupVars_UnparseableVarFile(t *testing.T) {
	file := writeVarFile(t, "vars.yaml", "\t: not yaml")
	cmd := varsCommand(t, "--var-file", file)

	_, err := setupVars(cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse var file")
}

func TestDeepMerge_ScalarsWin(t *testing.T) {
	dst := map[string]any{"a": map[string]any{"b": 1}, "c": 2}
	deepMerge(dst, map[string]any{"a": "flattened", "d": 3})

	assert.Equal(t, map[string]any{"a": "flattened", "c": 2, "d": 3}, dst)
}

func TestNestedValue_BuildsChain(t *testing.T) {
	assert.Equal(t,
		map[string]any{"a": map[string]any{"b": map[string]any{"c": "v"}}},
		nestedValue([]string{"a", "b", "c"}, "v"))
}
