/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_ContainsAllFields(t *testing.T) {
	info := Info()

	assert.True(t, strings.HasPrefix(info, "cairn "))
	assert.Contains(t, info, "Git commit:")
	assert.Contains(t, info, "Build date:")
	assert.Contains(t, info, "Go version:")
	assert.Contains(t, info, "Platform:")
}

func TestShort_ReturnsVersion(t *testing.T) {
	assert.Equal(t, Version, Short())
}
