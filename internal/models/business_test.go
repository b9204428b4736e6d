package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoursRoundTrip(t *testing.T) {
	hours := map[string]string{
		"mon": "closed",
		"tue": "09:00-19:00",
		"wed": "09:00-19:00",
		"thu": "09:00-20:00",
		"fri": "09:00-20:00",
		"sat": "08:00-18:00",
		"sun": "10:00-16:00",
	}

	raw, err := EncodeHours(hours)
	require.NoError(t, err)

	assert.Equal(t, hours, ParseHours(raw))
}

func TestHoursPartialWeek(t *testing.T) {
	hours := map[string]string{"sat": "10:00-14:00"}

	raw, err := EncodeHours(hours)
	require.NoError(t, err)
	assert.Equal(t, hours, ParseHours(raw))
}

func TestParseHoursEmpty(t *testing.T) {
	assert.Nil(t, ParseHours(""))
}

func TestParseHoursGarbage(t *testing.T) {
	assert.Nil(t, ParseHours("not json"))
}

func TestEncodeHoursNil(t *testing.T) {
	raw, err := EncodeHours(nil)
	require.NoError(t, err)
	assert.Equal(t, "", raw)
}

func TestValidCategory(t *testing.T) {
	for _, c := range []string{"food", "retail", "services", "entertainment", "health"} {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory("all"))
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Food"))
}
