package commands

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/daybook/internal/parser"
	"github.com/balkashynov/daybook/internal/report"
)

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"", "0", "-1", "abc", "4.2"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(0, 8))
	assert.Equal(t, "", bar(3, 0))
	assert.Equal(t, strings.Repeat("█", barWidth), bar(8, 8))
	assert.Equal(t, strings.Repeat("█", barWidth/2), bar(4, 8))
	assert.Equal(t, "█", bar(0.01, 8))
}

func TestPrintDailyTotals(t *testing.T) {
	var out bytes.Buffer
	printDailyTotals(&out, []report.DailyTotal{
		{Date: "2024-01-07", Hours: 8},
		{Date: "2024-01-08", Hours: 6.5},
	}, 14.5)

	text := out.String()
	assert.Contains(t, text, "Jan 07, 2024")
	assert.Contains(t, text, "8.00h")
	assert.Contains(t, text, "14.50h")

	out.Reset()
	printDailyTotals(&out, nil, 0)
	assert.Contains(t, out.String(), "No work sessions")
}

func TestPrintCategoryTotalsModes(t *testing.T) {
	totals := []report.CategoryTotal{
		{Category: "Meetings", Hours: 2, Percent: 0.25, Value: 25},
		{Category: "Programming", Hours: 6, Percent: 0.75, Value: 75},
	}

	var out bytes.Buffer
	printCategoryTotals(&out, totals, report.ModePercent)
	text := out.String()
	assert.Contains(t, text, "Share")
	assert.Contains(t, text, "Programming (75.0%)")
	assert.Contains(t, text, "75.0%")

	out.Reset()
	printCategoryTotals(&out, []report.CategoryTotal{{Category: "Meetings", Hours: 2, Value: 0.29}}, report.ModeAverage)
	assert.Contains(t, out.String(), "0.29h/d")

	out.Reset()
	printCategoryTotals(&out, nil, report.ModeHours)
	assert.Contains(t, out.String(), "No project entries")
}

func TestPrintEntryRows(t *testing.T) {
	var out bytes.Buffer
	printEntryRows(&out, []report.EntryRow{
		{ID: 1, ProjectName: "Spec", Category: "Programming", Start: "09:00", End: "10:30", Hours: 1.5},
		{ID: 2, ProjectName: "Standup", Category: "Meetings", Start: "10:30", End: "Running", Hours: 0.25},
	})

	text := out.String()
	assert.Contains(t, text, "Running")
	assert.Contains(t, text, "1.75h")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a very...", truncate("a very long project", 9))

	for _, name := range []string{"Überprüfung der Änderungen", "日本語のプロジェクト名です", "Café ☕ planning session"} {
		got := truncate(name, 12)
		assert.True(t, utf8.ValidString(got), name)
		assert.LessOrEqual(t, runewidth.StringWidth(got), 12, name)
		assert.True(t, strings.HasSuffix(got, "..."), name)
	}
}

func TestApplyCategoryFlag(t *testing.T) {
	categories := []string{"Client Work", "Legacy", "Meetings"}
	newCmd := func(value string) *cobra.Command {
		cmd := &cobra.Command{}
		cmd.Flags().StringP("category", "c", "", "")
		require.NoError(t, cmd.Flags().Set("category", value))
		return cmd
	}

	parsed := parser.ParsedEntry{ProjectName: "Invoices", Category: "Meetings"}
	require.NoError(t, applyCategoryFlag(newCmd("client work"), &parsed, categories))
	assert.Equal(t, "Client Work", parsed.Category)

	require.NoError(t, applyCategoryFlag(newCmd(""), &parsed, categories))
	assert.Equal(t, "Client Work", parsed.Category)

	err := applyCategoryFlag(newCmd("Sales"), &parsed, categories)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category 'Sales'")
	assert.Equal(t, "Client Work", parsed.Category)
}
