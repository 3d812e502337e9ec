package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStaffSelection(t *testing.T) {
	sel, err := ParseStaffSelection("any")
	require.NoError(t, err)
	assert.True(t, sel.IsAny())
	assert.Equal(t, AnyStaffID, sel.QueryID())

	sel, err = ParseStaffSelection("0")
	require.NoError(t, err)
	assert.True(t, sel.IsAny())

	sel, err = ParseStaffSelection("42")
	require.NoError(t, err)
	id, ok := sel.StaffID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "specific", sel.Mode())

	_, err = ParseStaffSelection("-1")
	assert.Error(t, err)
	_, err = ParseStaffSelection("someone")
	assert.Error(t, err)
}

func TestStaffSelection_Validity(t *testing.T) {
	assert.False(t, StaffSelection{}.IsValid())
	assert.False(t, SpecificStaff(0).IsValid())
	assert.True(t, SpecificStaff(7).IsValid())
	assert.True(t, AnyStaff().IsValid())

	_, ok := AnyStaff().StaffID()
	assert.False(t, ok)
	assert.Equal(t, "any", AnyStaff().String())
	assert.Equal(t, "7", SpecificStaff(7).String())
}
