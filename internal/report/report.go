// Package report aggregates sessions and entries into daily and per-category totals.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/balkashynov/daybook/internal/models"
	"github.com/balkashynov/daybook/internal/timeutil"
)

// Mode selects how category totals are expressed
type Mode string

const (
	ModeHours   Mode = "hours"
	ModePercent Mode = "percent"
	ModeAverage Mode = "average"
)

// ParseMode validates a mode name, defaulting to hours
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeHours:
		return ModeHours, nil
	case ModePercent, ModeAverage:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown report mode %q: use hours, percent or average", s)
	}
}

// DailyTotal is the hours worked on one session date
type DailyTotal struct {
	Date  string
	Hours float64
}

// Label renders the date as "Jan 02, 2006"
func (d DailyTotal) Label() string {
	t, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return d.Date
	}
	return t.Format("Jan 02, 2006")
}

// CategoryTotal is the hours logged against one category
type CategoryTotal struct {
	Category string
	Hours    float64
	Percent  float64 // share of all category hours, 0..1
	Value    float64 // Hours, Percent*100 or hours per day depending on Mode
}

// Label renders "Programming (45.0%)"
func (c CategoryTotal) Label() string {
	return fmt.Sprintf("%s (%.1f%%)", c.Category, c.Percent*100)
}

// SessionHours prefers the cached total and falls back to raw timestamps
func SessionHours(session models.WorkSession, clock timeutil.Clock) (float64, error) {
	if session.TotalHours != nil {
		return *session.TotalHours, nil
	}
	return timeutil.DurationHours(session.StartTime, session.EndTime, clock)
}

// EntryHours returns the live or final hours of an entry
func EntryHours(entry models.ProjectEntry, clock timeutil.Clock) (float64, error) {
	return timeutil.DurationHours(entry.StartTime, entry.EndTime, clock)
}

// DailyTotals sums session hours per session date, oldest first, and returns the grand total
func DailyTotals(sessions []models.WorkSession, clock timeutil.Clock) ([]DailyTotal, float64, error) {
	byDate := make(map[string]float64)
	for _, session := range sessions {
		hours, err := SessionHours(session, clock)
		if err != nil {
			return nil, 0, fmt.Errorf("session #%d: %w", session.ID, err)
		}
		byDate[session.SessionDate] += hours
	}

	totals := make([]DailyTotal, 0, len(byDate))
	var grand float64
	for date, hours := range byDate {
		hours = round2(hours)
		totals = append(totals, DailyTotal{Date: date, Hours: hours})
		grand += hours
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Date < totals[j].Date
	})

	return totals, round2(grand), nil
}

// CategoryTotals sums entry hours per category, sorted by category name
func CategoryTotals(entries []models.ProjectEntry, clock timeutil.Clock) ([]CategoryTotal, error) {
	byCategory := make(map[string]float64)
	for _, entry := range entries {
		hours, err := EntryHours(entry, clock)
		if err != nil {
			return nil, fmt.Errorf("entry #%d: %w", entry.ID, err)
		}
		byCategory[entry.Category] += hours
	}

	var total float64
	for _, hours := range byCategory {
		total += hours
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, hours := range byCategory {
		var percent float64
		if total > 0 {
			percent = hours / total
		}
		totals = append(totals, CategoryTotal{
			Category: category,
			Hours:    round2(hours),
			Percent:  percent,
			Value:    round2(hours),
		})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Category < totals[j].Category
	})

	return totals, nil
}

// ApplyMode fills Value for the display mode. Average divides by the number
// of calendar days in the inclusive range [start, end].
func ApplyMode(totals []CategoryTotal, mode Mode, start, end time.Time) []CategoryTotal {
	days := timeutil.DaysInRange(start, end)

	out := make([]CategoryTotal, len(totals))
	for i, t := range totals {
		switch mode {
		case ModePercent:
			t.Value = round2(t.Percent * 100)
		case ModeAverage:
			if days > 0 {
				t.Value = round2(t.Hours / float64(days))
			} else {
				t.Value = 0
			}
		default:
			t.Value = t.Hours
		}
		out[i] = t
	}
	return out
}

// EntryRow is one line of the "today's entries" table
type EntryRow struct {
	ID          uint
	ProjectName string
	Category    string
	Start       string
	End         string // "Running" while the entry is open
	Hours       float64
}

// EntryRows formats entries for display in loc
func EntryRows(entries []models.ProjectEntry, clock timeutil.Clock, loc *time.Location) ([]EntryRow, error) {
	rows := make([]EntryRow, 0, len(entries))
	for _, entry := range entries {
		hours, err := EntryHours(entry, clock)
		if err != nil {
			return nil, fmt.Errorf("entry #%d: %w", entry.ID, err)
		}

		end := "Running"
		if entry.EndTime != nil {
			end = timeutil.TimeOf(*entry.EndTime, loc).String()
		}

		rows = append(rows, EntryRow{
			ID:          entry.ID,
			ProjectName: entry.ProjectName,
			Category:    entry.Category,
			Start:       timeutil.TimeOf(entry.StartTime, loc).String(),
			End:         end,
			Hours:       hours,
		})
	}
	return rows, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
