package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" sg ")
	require.NoError(t, err)
	assert.Equal(t, Status("SG"), s)

	_, err = ParseStatus("IDN")
	assert.ErrorContains(t, err, "must be 2 characters")

	_, err = ParseStatus("I-")
	assert.ErrorContains(t, err, "must be alphanumeric")
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusDomestic, NormalizeStatus(" id"))
	assert.Equal(t, Status("NAN"), NormalizeStatus("nan"))
	assert.Equal(t, StatusUnknown, NormalizeStatus(""))
}

func TestStatusSet(t *testing.T) {
	set := NewStatusSet(StatusNetting, StatusDomestic)
	set.Add("SG")
	set.Add(StatusDomestic)

	assert.Len(t, set, 3)
	assert.True(t, set.Contains("SG"))
	assert.False(t, set.Contains("MY"))
	assert.Equal(t, []Status{"ID", "N1", "SG"}, set.Sorted())
	assert.Equal(t, "ID/N1/SG", set.String())
	assert.Equal(t, "", NewStatusSet().String())
}
