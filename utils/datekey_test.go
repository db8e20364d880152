package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateKey(t *testing.T) {
	key, err := NormalizeDateKey("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", key)
}

func TestNormalizeDateKeyTruncatesTimestamps(t *testing.T) {
	key, err := NormalizeDateKey("2026-09-01T00:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", key)
}

func TestNormalizeDateKeyRejectsGarbage(t *testing.T) {
	_, err := NormalizeDateKey("next tuesday")
	assert.Error(t, err)

	_, err = NormalizeDateKey("")
	assert.Error(t, err)
}

func TestDateKeyToUTCNoon(t *testing.T) {
	ts, err := DateKeyToUTCNoon("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), ts)
	// Noon UTC still reads as Sep 1 in US time zones.
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, 1, ts.In(ny).Day())
}

func TestStartOfWeekIsMonday(t *testing.T) {
	// 2026-09-03 is a Thursday; the week starts Monday 2026-08-31.
	thursday := time.Date(2026, 9, 3, 15, 30, 0, 0, time.UTC)
	monday := StartOfWeek(thursday)
	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, "2026-08-31", monday.Format(DateKeyLayout))

	// Sunday belongs to the week that began the previous Monday.
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-31", StartOfWeek(sunday).Format(DateKeyLayout))

	// Monday maps to itself.
	assert.Equal(t, "2026-08-31", StartOfWeek(monday).Format(DateKeyLayout))
}

func TestWeekdayOfKey(t *testing.T) {
	// 2026-09-06 is a Sunday.
	day, err := WeekdayOfKey("2026-09-06")
	require.NoError(t, err)
	assert.Equal(t, 0, day)

	day, err = WeekdayOfKey("2026-09-03")
	require.NoError(t, err)
	assert.Equal(t, 4, day)
}
