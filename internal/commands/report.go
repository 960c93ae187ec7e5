package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/daybook/internal/parser"
	"github.com/balkashynov/daybook/internal/report"
	"github.com/balkashynov/daybook/internal/timeutil"
)

const barWidth = 30

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show daily totals and the category breakdown",
	Long: `Show hours worked per day and per category over a date range.

The range defaults to the most recent Sunday through today.

Example output:
  Date            Hours
  Jan 07, 2024    8.00h  ████████████████████
  Jan 08, 2024    6.50h  ████████████████
  Total          14.50h

  Category               Hours
  Meetings (25.0%)       2.00h  ██████
  Programming (75.0%)    6.00h  ██████████████████

Modes (--mode):
  hours     total hours per category
  percent   share of all category hours
  average   hours per day over the range`,
	Run: withStore(func(cmd *cobra.Command, args []string) {
		start, end, err := resolveRange(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		modeName, _ := cmd.Flags().GetString("mode")
		if modeName == "" {
			modeName = cfg.Report.Mode
		}
		mode, err := report.ParseMode(modeName)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		sessions, err := store.ListSessionsBetween(start, end)
		if err != nil {
			fmt.Printf("Error: failed to get sessions: %v\n", err)
			return
		}
		entries, err := store.ListEntriesBetween(start, end)
		if err != nil {
			fmt.Printf("Error: failed to get entries: %v\n", err)
			return
		}

		clock := store.Clock()
		daily, grand, err := report.DailyTotals(sessions, clock)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		categories, err := report.CategoryTotals(entries, clock)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("Report for %s to %s\n\n", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
		printDailyTotals(os.Stdout, daily, grand)
		fmt.Println()
		printCategoryTotals(os.Stdout, report.ApplyMode(categories, mode, start, end), mode)
	}),
}

// resolveRange reads --from/--to, defaulting to the most recent Sunday through today.
// A reversed range collapses to the --from day.
func resolveRange(cmd *cobra.Command) (time.Time, time.Time, error) {
	now := store.CurrentTime()
	today := timeutil.StartOfDay(now, store.Location())

	start := timeutil.WeekStart(today)
	end := today

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		d, err := parser.ParseDate(from, now)
		if err != nil {
			return start, end, err
		}
		start = d
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		d, err := parser.ParseDate(to, now)
		if err != nil {
			return start, end, err
		}
		end = d
	}

	start, end, clamped := parser.ClampRange(start, end)
	if clamped {
		fmt.Printf("⚠️  --from is after --to; showing %s only\n", timeutil.DateString(start))
	}
	return start, end, nil
}

// bar scales value against peak into a fixed-width block bar
func bar(value, peak float64) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	n := int(value / peak * barWidth)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func printDailyTotals(out io.Writer, totals []report.DailyTotal, grand float64) {
	if len(totals) == 0 {
		fmt.Fprintln(out, "No work sessions in this range.")
		return
	}

	var peak float64
	for _, t := range totals {
		if t.Hours > peak {
			peak = t.Hours
		}
	}

	fmt.Fprintf(out, "%-14s %7s\n", "Date", "Hours")
	fmt.Fprintln(out, strings.Repeat("-", 22))
	for _, t := range totals {
		fmt.Fprintf(out, "%-14s %7s  %s\n", t.Label(), formatHours(t.Hours), bar(t.Hours, peak))
	}
	fmt.Fprintln(out, strings.Repeat("-", 22))
	fmt.Fprintf(out, "%-14s %7s\n", "Total", formatHours(grand))
}

func printCategoryTotals(out io.Writer, totals []report.CategoryTotal, mode report.Mode) {
	if len(totals) == 0 {
		fmt.Fprintln(out, "No project entries in this range.")
		return
	}

	header := "Hours"
	format := formatHours
	switch mode {
	case report.ModePercent:
		header = "Share"
		format = func(v float64) string { return fmt.Sprintf("%.1f%%", v) }
	case report.ModeAverage:
		header = "Per day"
		format = func(v float64) string { return formatHours(v) + "/d" }
	}

	var peak float64
	width := len("Category")
	for _, t := range totals {
		if t.Value > peak {
			peak = t.Value
		}
		if l := len(t.Label()); l > width {
			width = l
		}
	}
	if width > 40 {
		width = 40
	}

	fmt.Fprintf(out, "%-*s %9s\n", width, "Category", header)
	fmt.Fprintln(out, strings.Repeat("-", width+10))
	for _, t := range totals {
		fmt.Fprintf(out, "%-*s %9s  %s\n", width, truncate(t.Label(), width), format(t.Value), bar(t.Value, peak))
	}
}

func init() {
	reportCmd.Flags().String("from", "", "First date (default: most recent Sunday)")
	reportCmd.Flags().String("to", "", "Last date (default: today)")
	reportCmd.Flags().StringP("mode", "m", "", "hours, percent or average (default from config)")
}
