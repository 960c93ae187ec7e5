package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/balkashynov/daybook/internal/models"
	"github.com/balkashynov/daybook/internal/report"
)

// formatHours renders hours with two decimals, e.g. "1.50h"
func formatHours(h float64) string {
	return fmt.Sprintf("%.2fh", h)
}

// parseID parses a numeric record ID argument
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid ID '%s'. Please provide a valid numeric ID", arg)
	}
	return uint(id), nil
}

// truncate shortens s to n terminal columns, never splitting a rune
func truncate(s string, n int) string {
	return runewidth.Truncate(s, n, "...")
}

func printEntryRows(out io.Writer, rows []report.EntryRow) {
	fmt.Fprintf(out, "%-5s %-30s %-15s %-6s %-8s %s\n", "ID", "PROJECT", "CATEGORY", "START", "END", "HOURS")
	fmt.Fprintln(out, strings.Repeat("-", 76))

	total := 0.0
	for _, r := range rows {
		fmt.Fprintf(out, "%-5d %-30s %-15s %-6s %-8s %s\n",
			r.ID, truncate(r.ProjectName, 30), truncate(r.Category, 15), r.Start, r.End, formatHours(r.Hours))
		total += r.Hours
	}

	fmt.Fprintln(out, strings.Repeat("-", 76))
	fmt.Fprintf(out, "%-68s %s\n", "Total", formatHours(total))
}

func printSessions(out io.Writer, sessions []models.WorkSession, hours func(models.WorkSession) (float64, error)) error {
	fmt.Fprintf(out, "%-5s %-10s %-6s %-8s %-8s %s\n", "ID", "DATE", "START", "END", "HOURS", "NOTES")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	for _, s := range sessions {
		end := "Running"
		if s.EndTime != nil {
			end = s.EndTime.Format("15:04")
		}
		h, err := hours(s)
		if err != nil {
			return fmt.Errorf("session #%d: %w", s.ID, err)
		}
		notes := ""
		if s.Notes != nil {
			notes = truncate(*s.Notes, 30)
		}
		fmt.Fprintf(out, "%-5d %-10s %-6s %-8s %-8s %s\n",
			s.ID, s.SessionDate, s.StartTime.Format("15:04"), end, formatHours(h), notes)
	}
	return nil
}
