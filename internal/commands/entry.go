package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/daybook/internal/db"
	"github.com/balkashynov/daybook/internal/models"
	"github.com/balkashynov/daybook/internal/parser"
	"github.com/balkashynov/daybook/internal/report"
	"github.com/balkashynov/daybook/internal/timeutil"
	"github.com/balkashynov/daybook/internal/tui"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Track and manage project entries",
	Long: `Project entries are the per-project time slices inside a workday.

Smart syntax:
  Project name @Category 09:00-10:30

  @Category     - Category (matched case-insensitively)
  09:00-10:30   - Start and end time (entry add only)
  09:00-        - Start time, entry keeps running`,
}

var entryStartCmd = &cobra.Command{
	Use:   "start <project @Category>",
	Short: "Start a project entry in the running workday",
	Args:  cobra.MinimumNArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string) {
		session, err := store.GetActiveSession()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Println("No workday is running. Use 'daybook start' first.")
			return
		}

		parsed, ok := parseEntryArgs(cmd, args)
		if !ok {
			return
		}
		if parsed.Start != nil {
			fmt.Println("⚠️  Times are ignored by 'entry start'; use 'entry add' to log explicit times.")
		}

		entry, err := store.StartProjectEntry(session.ID, parsed.ProjectName, parsed.Category)
		if errors.Is(err, db.ErrEntryActive) {
			fmt.Println("A project entry is already running. Use 'daybook entry stop' first.")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("▶️  Started entry #%d: %s @%s at %s\n",
			entry.ID, entry.ProjectName, entry.Category, entry.StartTime.Format("15:04"))
	}),
}

var entryStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running project entry",
	Run: withStore(func(cmd *cobra.Command, args []string) {
		entry, err := store.GetActiveProjectEntry(nil)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if entry == nil {
			fmt.Println("No project entry is running")
			return
		}

		if err := store.EndProjectEntry(entry.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		stopped, err := store.GetProjectEntry(entry.ID)
		if err != nil || stopped == nil {
			fmt.Printf("⏹️  Stopped %s\n", entry.ProjectName)
			return
		}
		hours, err := report.EntryHours(*stopped, store.Clock())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏹️  Stopped %s @%s after %s\n", stopped.ProjectName, stopped.Category, formatHours(hours))
	}),
}

var entryAddCmd = &cobra.Command{
	Use:   "add [project @Category HH:MM-HH:MM]",
	Short: "Log a project entry with explicit times",
	Long: `Log a project entry for any date. The date's workday is created if needed.

Modes:
  Interactive: daybook entry add (or -i)
  Quick: daybook entry add "Spec review @Meetings 09:00-10:30" --date yesterday
  Flag:  daybook entry add "Spec review 09:00-10:30" -c "Client Work"`,
	Args: cobra.ArbitraryArgs,
	Run: withStore(func(cmd *cobra.Command, args []string) {
		dateFlag, _ := cmd.Flags().GetString("date")
		interactive, _ := cmd.Flags().GetBool("interactive")

		prefilled := map[string]string{"date": dateFlag}
		if len(args) == 0 || interactive {
			runEntryWizard(prefilled)
			return
		}

		categories, err := store.GetCategories(true)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		parsed := parser.ParseEntry(strings.Join(args, " "), categories)
		if err := applyCategoryFlag(cmd, &parsed, categories); err != nil {
			parsed.Errors = append(parsed.Errors, err.Error())
		}
		prefilled["project"] = parsed.ProjectName
		prefilled["category"] = parsed.Category
		if parsed.Start != nil {
			prefilled["start"] = parsed.Start.String()
		}
		if parsed.End != nil {
			prefilled["end"] = parsed.End.String()
		}

		if len(parsed.Errors) > 0 || parsed.ProjectName == "" || parsed.Category == "" || parsed.Start == nil {
			if len(parsed.Errors) > 0 {
				fmt.Printf("⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			}
			fmt.Println("Opening interactive mode to complete the entry...")
			runEntryWizard(prefilled)
			return
		}

		date, err := parser.ParseDate(dateFlag, store.CurrentTime())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		entry, err := store.AddEntryOnDate(db.DatedEntryRequest{
			Date:        date,
			ProjectName: parsed.ProjectName,
			Category:    parsed.Category,
			Start:       *parsed.Start,
			End:         parsed.End,
		})
		if err != nil {
			fmt.Printf("Error creating entry: %v\n", err)
			return
		}

		end := "running"
		if entry.EndTime != nil {
			end = entry.EndTime.Format("15:04")
		}
		fmt.Printf("Created entry #%d: %s @%s\n", entry.ID, entry.ProjectName, entry.Category)
		fmt.Printf("  %s %s-%s\n", timeutil.DateString(date), entry.StartTime.Format("15:04"), end)
	}),
}

var entryEditCmd = &cobra.Command{
	Use:   "edit <entry_id>",
	Short: "Edit a project entry",
	Long: `Edit a project entry. Only the given flags change.

Examples:
  daybook entry edit 12 --end 17:30
  daybook entry edit 12 --project "Spec review" --category Meetings
  daybook entry edit 12 --end running   # Reopen the entry`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		entry, err := store.GetProjectEntry(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if entry == nil {
			fmt.Printf("Error: Entry #%d not found.\n", id)
			return
		}

		req, err := buildEntryUpdate(cmd, entry)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := store.UpdateProjectEntry(req); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Entry #%d updated\n", id)
	}),
}

var entryRmCmd = &cobra.Command{
	Use:   "rm <entry_id>",
	Short: "Delete a project entry",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := store.DeleteProjectEntry(id); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Entry #%d deleted\n", id)
	}),
}

var entryLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List project entries",
	Long:    "List project entries whose workday falls in a date range (default: this week)",
	Run: withStore(func(cmd *cobra.Command, args []string) {
		var (
			entries []models.ProjectEntry
			err     error
		)
		if all, _ := cmd.Flags().GetBool("all"); all {
			entries, err = store.ListAllProjectEntries()
		} else {
			start, end, rangeErr := resolveRange(cmd)
			if rangeErr != nil {
				fmt.Printf("Error: %v\n", rangeErr)
				return
			}
			entries, err = store.ListEntriesBetween(start, end)
		}
		if err != nil {
			fmt.Printf("Error fetching entries: %v\n", err)
			return
		}

		if len(entries) == 0 {
			fmt.Println("No project entries found.")
			return
		}

		rows, err := report.EntryRows(entries, store.Clock(), store.Location())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		printEntryRows(os.Stdout, rows)
	}),
}

// parseEntryArgs parses "Project @Category" arguments, with --category taking precedence
func parseEntryArgs(cmd *cobra.Command, args []string) (parser.ParsedEntry, bool) {
	categories, err := store.GetCategories(false)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return parser.ParsedEntry{}, false
	}

	parsed := parser.ParseEntry(strings.Join(args, " "), categories)
	if err := applyCategoryFlag(cmd, &parsed, categories); err != nil {
		fmt.Printf("Error: %v\n", err)
		return parsed, false
	}

	if len(parsed.Errors) > 0 {
		fmt.Printf("Error: %s\n", strings.Join(parsed.Errors, ", "))
		return parsed, false
	}
	if parsed.ProjectName == "" {
		fmt.Println("Error: project name is required")
		return parsed, false
	}
	if parsed.Category == "" {
		fmt.Printf("Error: category is required. Add @Category, one of: %s\n", strings.Join(categories, ", "))
		return parsed, false
	}
	return parsed, true
}

// applyCategoryFlag lets --category override the parsed @Category
func applyCategoryFlag(cmd *cobra.Command, parsed *parser.ParsedEntry, categories []string) error {
	flagCategory, _ := cmd.Flags().GetString("category")
	if flagCategory == "" {
		return nil
	}
	category, ok := parser.MatchCategory(flagCategory, categories)
	if !ok {
		return fmt.Errorf("unknown category '%s'. Use: %s", flagCategory, strings.Join(categories, ", "))
	}
	parsed.Category = category
	return nil
}

// buildEntryUpdate applies edit flags over the stored entry
func buildEntryUpdate(cmd *cobra.Command, entry *models.ProjectEntry) (db.UpdateEntryRequest, error) {
	req := db.UpdateEntryRequest{
		ID:          entry.ID,
		ProjectName: entry.ProjectName,
		Category:    entry.Category,
		Start:       entry.StartTime,
		End:         entry.EndTime,
	}

	if project, _ := cmd.Flags().GetString("project"); project != "" {
		req.ProjectName = strings.TrimSpace(project)
	}
	if flagCategory, _ := cmd.Flags().GetString("category"); flagCategory != "" {
		categories, err := store.GetCategories(true)
		if err != nil {
			return req, err
		}
		category, ok := parser.MatchCategory(flagCategory, categories)
		if !ok {
			return req, fmt.Errorf("unknown category '%s'", flagCategory)
		}
		req.Category = category
	}
	if req.ProjectName == "" {
		return req, errors.New("project name is required")
	}

	date, err := timeutil.ParseDate(entry.SessionDate(), store.Location())
	if err != nil {
		date = timeutil.StartOfDay(entry.StartTime, store.Location())
	}

	if start, _ := cmd.Flags().GetString("start"); start != "" {
		t, err := combineFlag(date, start)
		if err != nil {
			return req, err
		}
		req.Start = t
	}
	if end, _ := cmd.Flags().GetString("end"); end != "" {
		if strings.EqualFold(end, "running") {
			req.End = nil
		} else {
			t, err := combineFlag(date, end)
			if err != nil {
				return req, err
			}
			req.End = &t
		}
	}

	return req, nil
}

// combineFlag turns an HH:MM flag value into a timestamp on date
func combineFlag(date time.Time, value string) (time.Time, error) {
	tod, err := timeutil.ParseTimeText(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time '%s', use HH:MM", value)
	}
	return timeutil.Combine(date, tod, store.Location()), nil
}

func runEntryWizard(prefilled map[string]string) {
	if err := tui.RunEntryTUI(store, prefilled); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func init() {
	entryStartCmd.Flags().StringP("category", "c", "", "Category (overrides @Category)")

	entryAddCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	entryAddCmd.Flags().StringP("date", "d", "", "Date: YYYY-MM-DD, dd/mm/yyyy, today, yesterday, X days ago")
	entryAddCmd.Flags().StringP("category", "c", "", "Category (overrides @Category)")

	entryEditCmd.Flags().StringP("project", "p", "", "Project name")
	entryEditCmd.Flags().StringP("category", "c", "", "Category")
	entryEditCmd.Flags().String("start", "", "Start time HH:MM")
	entryEditCmd.Flags().String("end", "", "End time HH:MM, or 'running' to reopen")

	entryLsCmd.Flags().String("from", "", "First date (default: most recent Sunday)")
	entryLsCmd.Flags().String("to", "", "Last date (default: today)")
	entryLsCmd.Flags().Bool("all", false, "List every entry, newest first")

	entryCmd.AddCommand(entryStartCmd, entryStopCmd, entryAddCmd, entryEditCmd, entryRmCmd, entryLsCmd)
}
