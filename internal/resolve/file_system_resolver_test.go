/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ReadsPlainPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vpc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Resources: {}"), 0o644))

	fsr := &DefaultFileSystemResolver{}
	content, err := fsr.Resolve(path)

	require.NoError(t, err)
	assert.Equal(t, "Resources: {}", content)
}

func TestResolve_StripsFileScheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vpc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Resources: {}"), 0o644))

	fsr := &DefaultFileSystemResolver{}
	content, err := fsr.Resolve("file://" + path)

	require.NoError(t, err)
	assert.Equal(t, "Resources: {}", content)
}

func TestResolve_AppliesBaseResolver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vpc.yaml"), []byte("Resources: {}"), 0o644))

	fsr := &DefaultFileSystemResolver{
		BaseResolver: func(path string) string { return filepath.Join(dir, path) },
	}
	content, err := fsr.Resolve("vpc.yaml")

	require.NoError(t, err)
	assert.Equal(t, "Resources: {}", content)
}

func TestResolve_MissingFile(t *testing.T) {
	fsr := &DefaultFileSystemResolver{}

	_, err := fsr.Resolve("/nonexistent/vpc.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read template file")
}
