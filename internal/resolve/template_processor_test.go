/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_SubstitutesVariables(t *testing.T) {
	tp := NewCfnTemplateProcessor()

	out, err := tp.Process("InstanceType: {{ .Var.instance_type }}", map[string]any{
		"Var": map[string]any{"instance_type": "t3.micro"},
	})

	require.NoError(t, err)
	assert.Equal(t, "InstanceType: t3.micro", out)
}

func TestProcess_SprigFunctions(t *testing.T) {
	tp := NewCfnTemplateProcessor()

	out, err := tp.Process(`{{ list "a" "b" | join "," }}`, map[string]any{})

	require.NoError(t, err)
	assert.Equal(t, "a,b", out)
}

func TestProcess_InvalidSyntax(t *testing.T) {
	tp := NewCfnTemplateProcessor()

	_, err := tp.Process("{{ .Var.x", map[string]any{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template")
}

func TestProcess_MissingKeyFails(t *testing.T) {
	tp := NewCfnTemplateProcessor()

	_, err := tp.Process("{{ .Var.absent }}", map[string]any{
		"Var": map[string]any{},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute template")
}
