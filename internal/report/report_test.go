package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/balkashynov/daybook/internal/models"
	"github.com/balkashynov/daybook/internal/timeutil/mocks"
)

var testLoc = time.FixedZone("CST", -6*3600)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 1, day, hour, minute, 0, 0, testLoc)
}

func ptr[T any](v T) *T {
	return &v
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeHours, "hours": ModeHours, "percent": ModePercent, "average": ModeAverage} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("pie")
	assert.Error(t, err)
}

func TestDailyTotalsPrefersCacheAndFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(at(4, 12, 0)).AnyTimes()

	sessions := []models.WorkSession{
		// cached value wins even if the timestamps disagree
		{ID: 1, SessionDate: "2024-01-03", StartTime: at(3, 9, 0), EndTime: ptr(at(3, 17, 0)), TotalHours: ptr(7.5)},
		{ID: 2, SessionDate: "2024-01-02", StartTime: at(2, 9, 0), EndTime: ptr(at(2, 10, 30))},
		{ID: 3, SessionDate: "2024-01-03", StartTime: at(3, 18, 0), EndTime: ptr(at(3, 19, 0))},
		// still running, measured against the clock
		{ID: 4, SessionDate: "2024-01-04", StartTime: at(4, 9, 0)},
	}

	totals, grand, err := DailyTotals(sessions, clock)
	require.NoError(t, err)

	assert.Equal(t, []DailyTotal{
		{Date: "2024-01-02", Hours: 1.5},
		{Date: "2024-01-03", Hours: 8.5},
		{Date: "2024-01-04", Hours: 3},
	}, totals)
	assert.Equal(t, 13.0, grand)
	assert.Equal(t, "Jan 02, 2024", totals[0].Label())
}

func TestDailyTotalsEmpty(t *testing.T) {
	totals, grand, err := DailyTotals(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, totals)
	assert.Zero(t, grand)
}

func TestCategoryTotalsAndModes(t *testing.T) {
	entries := []models.ProjectEntry{
		{ID: 1, Category: "Programming", StartTime: at(1, 9, 0), EndTime: ptr(at(1, 12, 0))},
		{ID: 2, Category: "Meetings", StartTime: at(2, 9, 0), EndTime: ptr(at(2, 10, 0))},
		{ID: 3, Category: "Programming", StartTime: at(3, 9, 0), EndTime: ptr(at(3, 12, 0))},
	}

	totals, err := CategoryTotals(entries, nil)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "Meetings", totals[0].Category)
	assert.Equal(t, 1.0, totals[0].Hours)
	assert.InDelta(t, 1.0/7.0, totals[0].Percent, 1e-9)
	assert.Equal(t, "Programming", totals[1].Category)
	assert.Equal(t, 6.0, totals[1].Hours)
	assert.Equal(t, "Programming (85.7%)", totals[1].Label())

	percent := ApplyMode(totals, ModePercent, at(1, 0, 0), at(7, 0, 0))
	assert.Equal(t, 14.29, percent[0].Value)
	assert.Equal(t, 85.71, percent[1].Value)

	average := ApplyMode(totals, ModeAverage, at(1, 0, 0), at(7, 0, 0))
	assert.Equal(t, 0.14, average[0].Value)
	assert.Equal(t, 0.86, average[1].Value)

	hours := ApplyMode(totals, ModeHours, at(1, 0, 0), at(7, 0, 0))
	assert.Equal(t, 6.0, hours[1].Value)

	// original slice is untouched
	assert.Equal(t, 6.0, totals[1].Value)
}

func TestCategoryTotalsZeroHours(t *testing.T) {
	entries := []models.ProjectEntry{
		{ID: 1, Category: "Meetings", StartTime: at(1, 9, 0), EndTime: ptr(at(1, 9, 0))},
	}

	totals, err := CategoryTotals(entries, nil)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Zero(t, totals[0].Percent)
	assert.Equal(t, "Meetings (0.0%)", totals[0].Label())
}

func TestCategoryTotalsRejectsInvertedEntry(t *testing.T) {
	entries := []models.ProjectEntry{
		{ID: 9, Category: "Meetings", StartTime: at(1, 10, 0), EndTime: ptr(at(1, 9, 0))},
	}

	_, err := CategoryTotals(entries, nil)
	assert.ErrorContains(t, err, "entry #9")
}

func TestEntryRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(at(1, 11, 0)).AnyTimes()

	rows, err := EntryRows([]models.ProjectEntry{
		{ID: 1, ProjectName: "Spec", Category: "Programming", StartTime: at(1, 9, 5), EndTime: ptr(at(1, 10, 35))},
		{ID: 2, ProjectName: "Standup", Category: "Meetings", StartTime: at(1, 10, 45)},
	}, clock, testLoc)
	require.NoError(t, err)

	assert.Equal(t, []EntryRow{
		{ID: 1, ProjectName: "Spec", Category: "Programming", Start: "09:05", End: "10:35", Hours: 1.5},
		{ID: 2, ProjectName: "Standup", Category: "Meetings", Start: "10:45", End: "Running", Hours: 0.25},
	}, rows)
}
