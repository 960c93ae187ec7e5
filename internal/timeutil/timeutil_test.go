package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/balkashynov/daybook/internal/timeutil"
	"github.com/balkashynov/daybook/internal/timeutil/mocks"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := timeutil.LoadZone("")
	require.NoError(t, err)
	return loc
}

func TestDurationHoursClosedInterval(t *testing.T) {
	loc := chicago(t)
	start := time.Date(2024, 1, 10, 9, 5, 0, 0, loc)

	cases := []struct {
		name string
		end  time.Time
		want float64
	}{
		{"ninety minutes", time.Date(2024, 1, 10, 10, 35, 0, 0, loc), 1.5},
		{"zero length", start, 0},
		{"rounds to two decimals", start.Add(20 * time.Minute), 0.33},
		{"full day", time.Date(2024, 1, 10, 17, 5, 0, 0, loc), 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			end := tc.end
			got, err := timeutil.DurationHours(start, &end, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDurationHoursAcrossDSTTransition(t *testing.T) {
	loc := chicago(t)
	// 2024-03-10 02:00 CST jumps to 03:00 CDT
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	end := time.Date(2024, 3, 10, 6, 0, 0, 0, loc)

	got, err := timeutil.DurationHours(start, &end, nil)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestDurationHoursRejectsEndBeforeStart(t *testing.T) {
	start := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(-time.Minute)

	_, err := timeutil.DurationHours(start, &end, nil)
	assert.ErrorIs(t, err, timeutil.ErrEndBeforeStart)
}

func TestDurationHoursOpenIntervalUsesClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)

	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	gomock.InOrder(
		clock.EXPECT().Now().Return(start.Add(30*time.Minute)),
		clock.EXPECT().Now().Return(start.Add(31*time.Minute)),
	)

	first, err := timeutil.DurationHours(start, nil, clock)
	require.NoError(t, err)
	second, err := timeutil.DurationHours(start, nil, clock)
	require.NoError(t, err)

	assert.Equal(t, 0.5, first)
	assert.GreaterOrEqual(t, second, first)
}

func TestDurationHoursOpenIntervalWithLiveClock(t *testing.T) {
	clock := timeutil.NewSystemClock(chicago(t))
	start := clock.Now().Add(-time.Hour)

	first, err := timeutil.DurationHours(start, nil, clock)
	require.NoError(t, err)
	second, err := timeutil.DurationHours(start, nil, clock)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, second, first)
}

func TestDurationHoursFutureOpenIntervalIsZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)

	start := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(start.Add(-time.Hour))

	got, err := timeutil.DurationHours(start, nil, clock)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestParseTimeTextAccepts(t *testing.T) {
	cases := map[string]timeutil.TimeOfDay{
		"9:05":       {Hour: 9, Minute: 5},
		"09:05":      {Hour: 9, Minute: 5},
		"23:59":      {Hour: 23, Minute: 59},
		"00:00":      {Hour: 0, Minute: 0},
		"17:30:00":   {Hour: 17, Minute: 30},
		"  08:15  ":  {Hour: 8, Minute: 15},
	}

	for raw, want := range cases {
		got, err := timeutil.ParseTimeText(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseTimeTextRejects(t *testing.T) {
	for _, raw := range []string{"25:00", "24:00", "12:60", "12:30:05", "abc", "", "12:3", "1:2:3:4", "12:30:", "-1:30", "12"} {
		_, err := timeutil.ParseTimeText(raw)
		assert.ErrorIs(t, err, timeutil.ErrInvalidTimeText, raw)
	}
}

func TestFormatTimeValue(t *testing.T) {
	assert.Equal(t, "00:00", timeutil.FormatTimeValue(nil))
	assert.Equal(t, "07:03", timeutil.FormatTimeValue(&timeutil.TimeOfDay{Hour: 7, Minute: 3}))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += 7 {
			tod := timeutil.TimeOfDay{Hour: h, Minute: m}
			got, err := timeutil.ParseTimeText(timeutil.FormatTimeValue(&tod))
			require.NoError(t, err)
			assert.Equal(t, tod, got)
		}
	}
}

func TestCombineAttachesZone(t *testing.T) {
	loc := chicago(t)
	date := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)

	got := timeutil.Combine(date, timeutil.TimeOfDay{Hour: 9, Minute: 30}, loc)

	assert.Equal(t, loc, got.Location())
	assert.Equal(t, "2024-07-04T09:30:00-05:00", got.Format(time.RFC3339))
	assert.Equal(t, timeutil.TimeOfDay{Hour: 9, Minute: 30}, timeutil.TimeOf(got, loc))
}

func TestTimeOfLocalizes(t *testing.T) {
	loc := chicago(t)
	utc := time.Date(2024, 1, 10, 15, 45, 30, 0, time.UTC)

	assert.Equal(t, timeutil.TimeOfDay{Hour: 9, Minute: 45}, timeutil.TimeOf(utc, loc))
}

func TestDateHelpers(t *testing.T) {
	loc := chicago(t)

	d, err := timeutil.ParseDate("2024-01-10", loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", timeutil.DateString(d))

	_, err = timeutil.ParseDate("10/01/2024", loc)
	assert.ErrorIs(t, err, timeutil.ErrInvalidDate)

	// Wednesday -> previous Sunday
	assert.Equal(t, "2024-01-07", timeutil.DateString(timeutil.WeekStart(d)))
	sunday := time.Date(2024, 1, 7, 18, 0, 0, 0, loc)
	assert.Equal(t, "2024-01-07", timeutil.DateString(timeutil.WeekStart(sunday)))

	assert.Equal(t, 7, timeutil.DaysInRange(time.Date(2024, 1, 1, 0, 0, 0, 0, loc), time.Date(2024, 1, 7, 0, 0, 0, 0, loc)))
	assert.Equal(t, 1, timeutil.DaysInRange(d, d))
	assert.Equal(t, 0, timeutil.DaysInRange(d, d.AddDate(0, 0, -1)))
}
