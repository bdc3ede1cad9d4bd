package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The client reads the handicap bounds under their document field names.
func TestMonthlyRecapJSONFieldNames(t *testing.T) {
	out, err := json.Marshal(&MonthlyRecap{HandicapStart: 18.5, HandicapEnd: 17.2})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(out, &fields))

	assert.Contains(t, fields, "handicapStartOfMonth")
	assert.Contains(t, fields, "handicapEndOfMonth")
	assert.NotContains(t, fields, "handicapStart")
	assert.NotContains(t, fields, "handicapEnd")
}
