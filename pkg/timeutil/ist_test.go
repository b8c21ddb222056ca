package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 31, d.Day())
	assert.Equal(t, IST, d.Location())

	_, err = ParseDate("31/12/2025")
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("  ")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2025-01-05")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 5, d.Day())
}

func TestToIST(t *testing.T) {
	// 20:00 UTC on 31 Jan is already 1 Feb in India.
	utc := time.Date(2025, time.January, 31, 20, 0, 0, 0, time.UTC)

	got := ToIST(utc)

	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 1, got.Day())
	assert.Equal(t, "FEB", MonthAbbr(utc))
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2025, time.March, 1, 0, 0, 0, 0, IST)
	b := time.Date(2025, time.March, 31, 0, 0, 0, 0, IST)
	c := time.Date(2024, time.March, 15, 0, 0, 0, 0, IST)

	assert.True(t, SameMonth(a, b))
	assert.False(t, SameMonth(a, c))
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2024, time.December)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, IST), start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, IST), end)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(nil))
	d := time.Date(2025, time.July, 4, 0, 0, 0, 0, IST)
	assert.Equal(t, "04 Jul 2025", FormatDate(&d))
}
