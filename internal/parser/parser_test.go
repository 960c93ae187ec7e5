package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/daybook/internal/timeutil"
)

var categories = []string{"Marketing", "Meetings", "Programming"}

func TestParseEntry(t *testing.T) {
	got := ParseEntry("Spec review @programming", categories)

	assert.Empty(t, got.Errors)
	assert.Equal(t, "Spec review", got.ProjectName)
	assert.Equal(t, "Programming", got.Category)
	assert.Nil(t, got.Start)
	assert.Nil(t, got.End)
}

func TestParseEntryWithTimeRange(t *testing.T) {
	got := ParseEntry("Launch  post 9:00-10:30 @Marketing", categories)

	require.Empty(t, got.Errors)
	assert.Equal(t, "Launch post", got.ProjectName)
	assert.Equal(t, "Marketing", got.Category)
	assert.Equal(t, &timeutil.TimeOfDay{Hour: 9, Minute: 0}, got.Start)
	assert.Equal(t, &timeutil.TimeOfDay{Hour: 10, Minute: 30}, got.End)

	open := ParseEntry("Standup 09:15- @Meetings", categories)
	require.Empty(t, open.Errors)
	assert.Equal(t, "Standup", open.ProjectName)
	assert.Equal(t, &timeutil.TimeOfDay{Hour: 9, Minute: 15}, open.Start)
	assert.Nil(t, open.End)
}

func TestParseEntryErrors(t *testing.T) {
	got := ParseEntry("Thing 25:00-26:00 @Sales", categories)

	assert.Len(t, got.Errors, 3)
	assert.Equal(t, "Thing", got.ProjectName)
	assert.Empty(t, got.Category)
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, loc)

	cases := map[string]string{
		"":            "2024-01-10",
		"today":       "2024-01-10",
		"Yesterday":   "2024-01-09",
		"2024-01-03":  "2024-01-03",
		"03/01/2024":  "2024-01-03",
		"3 days ago":  "2024-01-07",
		"1 week ago":  "2024-01-03",
		" 2 weeks ago": "2023-12-27",
	}
	for in, want := range cases {
		got, err := ParseDate(in, now)
		require.NoError(t, err, in)
		assert.Equal(t, want, timeutil.DateString(got), in)
		assert.Equal(t, 0, got.Hour(), in)
		assert.Equal(t, loc, got.Location(), in)
	}

	for _, in := range []string{"31/02/2024", "2024-13-01", "next week", "13/13/2024"} {
		_, err := ParseDate(in, now)
		assert.Error(t, err, in)
	}
}

func TestClampRange(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	start, end, clamped := ClampRange(a, b)
	assert.Equal(t, a, start)
	assert.Equal(t, b, end)
	assert.False(t, clamped)

	start, end, clamped = ClampRange(b, a)
	assert.Equal(t, b, start)
	assert.Equal(t, b, end)
	assert.True(t, clamped)
}

func TestParseEntryCategoryWithSpaces(t *testing.T) {
	known := []string{"Client", "Client Work", "Meetings"}

	got := ParseEntry("Invoice run @client work 14:00-15:00", known)
	require.Empty(t, got.Errors)
	assert.Equal(t, "Client Work", got.Category)
	assert.Equal(t, "Invoice run", got.ProjectName)
	require.NotNil(t, got.End)

	short := ParseEntry("Call @Client", known)
	require.Empty(t, short.Errors)
	assert.Equal(t, "Client", short.Category)
	assert.Equal(t, "Call", short.ProjectName)

	// a word glued to a known name is not that category
	unknown := ParseEntry("Call @Clientele", known)
	assert.Len(t, unknown.Errors, 1)
	assert.Empty(t, unknown.Category)
}
