package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		amount float64
		ok     bool
	}{
		{0.01, true},
		{100, true},
		{9999999.99, true},
		{0, false},
		{-10, false},
		{10000000, false},
	}
	for _, tc := range cases {
		err := ValidateAmount(tc.amount)
		if tc.ok {
			assert.NoError(t, err, "amount %f", tc.amount)
		} else {
			assert.Error(t, err, "amount %f", tc.amount)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ana@example.com"))
	assert.NoError(t, ValidateEmail("ana.silva+casa@sub.example.com.br"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("ana"))
	assert.Error(t, ValidateEmail("ana@"))
	assert.Error(t, ValidateEmail("@example.com"))
	assert.Error(t, ValidateEmail("ana exemplo@example.com"))
}

func TestParseDate(t *testing.T) {
	cases := []string{
		"2026-08-05",
		"2026-08-05T14:30:00",
		"2026-08-05T14:30:00Z",
		"2026-08-05T14:30:00-03:00",
	}
	for _, in := range cases {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, 2026, got.Year())
		assert.Equal(t, time.August, got.Month())
		assert.Equal(t, 5, got.Day())
	}

	_, err := ParseDate("05/08/2026")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}
