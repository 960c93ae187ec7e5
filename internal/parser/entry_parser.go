package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/balkashynov/daybook/internal/timeutil"
)

var (
	categoryRegex  = regexp.MustCompile(`@([a-zA-Z0-9_-]+)`)
	timeRangeRegex = regexp.MustCompile(`\b(\d{1,2}:\d{2})-(\d{1,2}:\d{2})?`)
)

// ParsedEntry represents a project entry parsed from natural syntax
type ParsedEntry struct {
	ProjectName string
	Category    string
	Start       *timeutil.TimeOfDay
	End         *timeutil.TimeOfDay
	Errors      []string
}

// ParseEntry extracts metadata from an entry description
// Syntax: "Project name @Category 09:00-10:30"
// The category is matched case-insensitively against known categories and
// written back in its stored spelling. A time range with no end ("09:00-")
// leaves the entry running.
func ParseEntry(input string, categories []string) ParsedEntry {
	result := ParsedEntry{
		Errors: []string{},
	}

	// Extract time range (09:00-10:30)
	if matches := timeRangeRegex.FindStringSubmatch(input); len(matches) == 3 {
		start, err := timeutil.ParseTimeText(matches[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid start time '"+matches[1]+"': "+err.Error())
		} else {
			result.Start = &start
		}

		if matches[2] != "" {
			end, err := timeutil.ParseTimeText(matches[2])
			if err != nil {
				result.Errors = append(result.Errors, "Invalid end time '"+matches[2]+"': "+err.Error())
			} else {
				result.End = &end
			}
		}
		// Remove from name
		input = timeRangeRegex.ReplaceAllString(input, "")
	}

	// Extract category (@Category), known names may contain spaces
	if category, rest, ok := cutKnownCategory(input, categories); ok {
		result.Category = category
		input = rest
	} else if matches := categoryRegex.FindStringSubmatch(input); len(matches) > 1 {
		if category, ok := MatchCategory(matches[1], categories); ok {
			result.Category = category
		} else {
			result.Errors = append(result.Errors, "Unknown category '"+matches[1]+"'. Use: "+strings.Join(categories, ", "))
		}
		// Remove from name
		input = categoryRegex.ReplaceAllString(input, "")
	}

	// Clean up the name (remove extra spaces)
	result.ProjectName = strings.Join(strings.Fields(input), " ")

	return result
}

// MatchCategory finds a known category, preferring an exact match
func MatchCategory(name string, categories []string) (string, bool) {
	for _, c := range categories {
		if c == name {
			return c, true
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

// cutKnownCategory finds "@Name" for a known category, longest name first, and
// returns the input with that mention removed
func cutKnownCategory(input string, categories []string) (string, string, bool) {
	byLength := append([]string(nil), categories...)
	sort.SliceStable(byLength, func(i, j int) bool {
		return len(byLength[i]) > len(byLength[j])
	})

	for i := 0; i < len(input); i++ {
		if input[i] != '@' {
			continue
		}
		rest := input[i+1:]
		for _, c := range byLength {
			if len(rest) < len(c) || !strings.EqualFold(rest[:len(c)], c) {
				continue
			}
			if len(rest) > len(c) && rest[len(c)] != ' ' {
				continue
			}
			category, _ := MatchCategory(rest[:len(c)], categories)
			return category, input[:i] + rest[len(c):], true
		}
	}
	return "", input, false
}
