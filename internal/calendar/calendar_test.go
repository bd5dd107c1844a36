package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"zerowaste/internal/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekBoundsForEveryDayOfAYear(t *testing.T) {
	d := calendar.NewDate(2024, time.January, 1)
	for i := 0; i < 400; i++ {
		day := d.AddDays(i)
		mon := calendar.Monday(day)
		sun := calendar.Sunday(mon)

		assert.False(t, day.Before(mon), "%s before its Monday %s", day, mon)
		assert.False(t, day.After(sun), "%s after its Sunday %s", day, sun)
		assert.Equal(t, 6, sun.DaysSince(mon))
		assert.Equal(t, time.Monday, mon.Time().Weekday())
		assert.Equal(t, time.Sunday, sun.Time().Weekday())
		assert.True(t, calendar.Sunday(day).Equal(sun))
	}
}

func TestWeekdayIndexIsMondayFirst(t *testing.T) {
	// 2025-11-17 is a Monday.
	mon := calendar.NewDate(2025, time.November, 17)
	for i := 0; i < 7; i++ {
		assert.Equal(t, i, mon.AddDays(i).Weekday())
	}
}

func TestWeekDaysAndRange(t *testing.T) {
	thu := calendar.NewDate(2025, time.November, 20)
	days := calendar.WeekDays(thu)
	require.Len(t, days, 7)
	assert.Equal(t, "2025-11-17", days[0].String())
	assert.Equal(t, "2025-11-23", days[6].String())

	r := calendar.Range(thu, calendar.Sunday(thu))
	require.Len(t, r, 4)
	assert.Equal(t, "2025-11-20", r[0].String())
	assert.Equal(t, "2025-11-23", r[3].String())

	assert.Empty(t, calendar.Range(thu, thu.AddDays(-1)))
}

func TestParse(t *testing.T) {
	d, err := calendar.Parse("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", d.String())

	for _, bad := range []string{"", "undefined", "not-a-date", "2025-13-01", "2025/01/01"} {
		_, err := calendar.Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateJSONAndScan(t *testing.T) {
	d := calendar.NewDate(2025, time.March, 3)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-03"`, string(b))

	var back calendar.Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d))

	var scanned calendar.Date
	require.NoError(t, scanned.Scan([]byte("2025-03-03")))
	assert.True(t, scanned.Equal(d))
	require.NoError(t, scanned.Scan(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)))
	assert.True(t, scanned.Equal(d))
	require.NoError(t, scanned.Scan("2025-03-03T00:00:00Z"))
	assert.True(t, scanned.Equal(d))
	assert.Error(t, scanned.Scan(42))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", v)
}

func TestZoneClockResolvesKST(t *testing.T) {
	// 2025-11-19T16:00Z is already Thursday in Seoul.
	instant := time.Date(2025, 11, 19, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-11-20", calendar.DateOf(instant, calendar.KST).String())
	assert.Equal(t, calendar.KST, calendar.NewZoneClock("").Location)
	assert.Equal(t, calendar.KST, calendar.NewZoneClock("No/Such_Zone").Location)
}
