package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/daybook/internal/db"
	"github.com/balkashynov/daybook/internal/report"
	"github.com/balkashynov/daybook/internal/timeutil"
	"github.com/balkashynov/daybook/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start your workday",
	Long: `Start a work session for today. Only one workday can run at a time.

Examples:
  daybook start          # Clock in
  daybook start --ui     # Clock in and open the live tracker`,
	Run: withStore(func(cmd *cobra.Command, args []string) {
		session, err := store.StartSession()
		if errors.Is(err, db.ErrSessionActive) {
			fmt.Println("A workday is already running. Use 'daybook stop' to end it first.")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("▶️  Workday #%d started at %s\n", session.ID, session.StartTime.Format("15:04"))

		if ui, _ := cmd.Flags().GetBool("ui"); ui {
			if err := tui.RunTrackerTUI(store); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "End your workday",
	Long:  `End the running work session. A running project entry is stopped first.`,
	Run: withStore(func(cmd *cobra.Command, args []string) {
		session, err := store.GetActiveSession()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Println("No workday is running")
			return
		}

		entry, err := store.GetActiveProjectEntry(&session.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if entry != nil {
			if err := store.EndProjectEntry(entry.ID); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("⏹️  Stopped %s @%s\n", entry.ProjectName, entry.Category)
		}

		if err := store.EndSession(session.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		ended, err := store.GetSession(session.ID)
		if err != nil || ended == nil {
			fmt.Println("⏹️  Workday ended")
			return
		}
		fmt.Printf("⏹️  Workday ended at %s\n", ended.EndTime.Format("15:04"))
		if ended.TotalHours != nil {
			fmt.Printf("Total: %s\n", formatHours(*ended.TotalHours))
		}
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running workday and project entry",
	Run: withStore(func(cmd *cobra.Command, args []string) {
		session, err := store.GetActiveSession()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if session == nil {
			fmt.Println("No workday is running")
			return
		}

		clock := store.Clock()
		hours, err := timeutil.DurationHours(session.StartTime, nil, clock)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏱️  Workday #%d (%s) started at %s, %s so far\n",
			session.ID, session.SessionDate, session.StartTime.Format("15:04"), formatHours(hours))

		entry, err := store.GetActiveProjectEntry(&session.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if entry == nil {
			fmt.Println("No project entry running")
			return
		}
		entryHours, err := report.EntryHours(*entry, clock)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📁 %s @%s since %s, %s so far\n",
			entry.ProjectName, entry.Category, entry.StartTime.Format("15:04"), formatHours(entryHours))
	}),
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's project entries",
	Run: withStore(func(cmd *cobra.Command, args []string) {
		today := timeutil.StartOfDay(store.CurrentTime(), store.Location())

		entries, err := store.ListEntriesBetween(today, today)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(entries) == 0 {
			fmt.Println("No project entries today. Use 'daybook entry start \"Project @Category\"' to begin.")
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

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Open the live tracker",
	Long: `Open the live tracker screen.

Keys:
  d    start or stop the workday
  s    stop the running project entry
  q    quit (the workday keeps running)`,
	Run: withStore(func(cmd *cobra.Command, args []string) {
		if err := tui.RunTrackerTUI(store); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

func init() {
	startCmd.Flags().Bool("ui", false, "Open the live tracker after starting")
}
