package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/daybook/internal/db"
	"github.com/balkashynov/daybook/internal/models"
	"github.com/balkashynov/daybook/internal/parser"
	"github.com/balkashynov/daybook/internal/report"
	"github.com/balkashynov/daybook/internal/timeutil"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"day"},
	Short:   "Manage workday sessions",
}

var sessionLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List work sessions",
	Long:    "List work sessions in a date range (default: this week), or every session with --all",
	Run: withStore(func(cmd *cobra.Command, args []string) {
		var (
			sessions []models.WorkSession
			err      error
		)
		if all, _ := cmd.Flags().GetBool("all"); all {
			sessions, err = store.ListAllSessions()
		} else {
			start, end, rangeErr := resolveRange(cmd)
			if rangeErr != nil {
				fmt.Printf("Error: %v\n", rangeErr)
				return
			}
			sessions, err = store.ListSessionsBetween(start, end)
		}
		if err != nil {
			fmt.Printf("Error fetching sessions: %v\n", err)
			return
		}

		if len(sessions) == 0 {
			fmt.Println("No work sessions found. Use 'daybook start' to begin your day.")
			return
		}

		clock := store.Clock()
		if err := printSessions(os.Stdout, sessions, func(s models.WorkSession) (float64, error) {
			return report.SessionHours(s, clock)
		}); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

var sessionEditCmd = &cobra.Command{
	Use:   "edit <session_id>",
	Short: "Edit a work session",
	Long: `Edit a work session. Only the given flags change; hours are recomputed.

Examples:
  daybook session edit 4 --end 17:30
  daybook session edit 4 --date 2024-01-09 --start 08:45
  daybook session edit 4 --notes "Release day"
  daybook session edit 4 --end running   # Reopen the session`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		session, err := store.GetSession(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Printf("Error: Session #%d not found.\n", id)
			return
		}

		req, err := buildSessionUpdate(cmd, session)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := store.UpdateSession(req); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Session #%d updated\n", id)
	}),
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session_id>",
	Short: "Delete a work session and all of its entries",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := store.DeleteSession(id); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Session #%d deleted\n", id)
	}),
}

// buildSessionUpdate applies edit flags over the stored session. Times are
// read on the (possibly new) session date.
func buildSessionUpdate(cmd *cobra.Command, session *models.WorkSession) (db.UpdateSessionRequest, error) {
	loc := store.Location()

	date, err := timeutil.ParseDate(session.SessionDate, loc)
	if err != nil {
		return db.UpdateSessionRequest{}, err
	}
	if flagDate, _ := cmd.Flags().GetString("date"); flagDate != "" {
		date, err = parser.ParseDate(flagDate, store.CurrentTime())
		if err != nil {
			return db.UpdateSessionRequest{}, err
		}
	}

	req := db.UpdateSessionRequest{
		ID:    session.ID,
		Date:  date,
		Start: timeutil.Combine(date, timeutil.TimeOf(session.StartTime, loc), loc),
		Notes: session.Notes,
	}
	if session.EndTime != nil {
		end := timeutil.Combine(date, timeutil.TimeOf(*session.EndTime, loc), loc)
		req.End = &end
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
	if cmd.Flags().Changed("notes") {
		notes, _ := cmd.Flags().GetString("notes")
		if notes = strings.TrimSpace(notes); notes == "" {
			req.Notes = nil
		} else {
			req.Notes = &notes
		}
	}

	return req, nil
}

func init() {
	sessionLsCmd.Flags().String("from", "", "First date (default: most recent Sunday)")
	sessionLsCmd.Flags().String("to", "", "Last date (default: today)")
	sessionLsCmd.Flags().Bool("all", false, "List every session, newest first")

	sessionEditCmd.Flags().String("date", "", "Session date: YYYY-MM-DD, dd/mm/yyyy, today, yesterday")
	sessionEditCmd.Flags().String("start", "", "Start time HH:MM")
	sessionEditCmd.Flags().String("end", "", "End time HH:MM, or 'running' to reopen")
	sessionEditCmd.Flags().String("notes", "", "Notes (empty string clears them)")

	sessionCmd.AddCommand(sessionLsCmd, sessionEditCmd, sessionRmCmd)
}
