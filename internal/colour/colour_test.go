/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package colour

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusColourer_UnrecognisedTextUnchanged(t *testing.T) {
	c := NewStatusColourer()

	text := "nothing to see here"
	assert.Equal(t, text, c.Colour(text))
}

func TestStatusColourer_StatusTokenSurvivesStyling(t *testing.T) {
	c := NewStatusColourer()

	result := c.Colour("Status: CREATE_COMPLETE")

	assert.Contains(t, result, "CREATE_COMPLETE")
	assert.True(t, strings.HasPrefix(result, "Status: "))
}

func TestStatusColourer_CompositeStatusMatchedWhole(t *testing.T) {
	c := NewStatusColourer()

	result := c.Colour("UPDATE_ROLLBACK_IN_PROGRESS")

	// The longer alternative must win: the token appears exactly once
	assert.Equal(t, 1, strings.Count(result, "UPDATE_ROLLBACK_IN_PROGRESS"))
}

func TestStatusColourer_EveryVocabularyEntryHasStyle(t *testing.T) {
	c := NewStatusColourer()

	for _, status := range stackStatuses {
		_, ok := c.styles[status]
		assert.True(t, ok, status)
	}
}

func TestStatusColourer_DeleteCompleteStyledDistinctly(t *testing.T) {
	c := NewStatusColourer()

	assert.NotEqual(t, c.styles["CREATE_COMPLETE"], c.styles["DELETE_COMPLETE"])
}

func TestStatusColourer_MultipleOccurrences(t *testing.T) {
	c := NewStatusColourer()

	result := c.Colour("vpc CREATE_COMPLETE app DELETE_FAILED")

	assert.Contains(t, result, "CREATE_COMPLETE")
	assert.Contains(t, result, "DELETE_FAILED")
}
