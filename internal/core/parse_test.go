package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumberValid(t *testing.T) {
	tests := map[string]int64{
		"0":                   0,
		"6":                   6,
		"+42":                 42,
		"007":                 7,
		"9223372036854775807": 9223372036854775807,
	}
	for raw, want := range tests {
		got, err := ParseNumber(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseNumberRejectsNonIntegers(t *testing.T) {
	for _, raw := range []string{"", "abc", "1.5", "1e3", " 7", "7 ", "0x10", "9223372036854775808"} {
		_, err := ParseNumber(raw)
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, ErrNotInteger, raw)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr), raw)
		assert.Equal(t, raw, verr.Raw)
	}
}

func TestParseNumberRejectsNegative(t *testing.T) {
	_, err := ParseNumber("-5")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegative)
	assert.NotErrorIs(t, err, ErrNotInteger)
	assert.Contains(t, err.Error(), `"-5"`)
}
