package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/daybook/internal/config"
	"github.com/balkashynov/daybook/internal/db"
	"github.com/balkashynov/daybook/internal/logger"
	"github.com/balkashynov/daybook/internal/timeutil"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config
	store   *db.Store
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "A CLI workday and project time tracker",
	Long: `daybook tracks your workday (clock in, clock out) and the project time
inside it, tagged by category, with daily and category reports from the terminal.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("daybook %s (commit %s, built %s)\n", version, commit, date)
	},
}

// openStore loads configuration and opens the database
func openStore() error {
	if store != nil {
		return nil
	}

	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	log := logger.Init(c.Log.Level)

	loc, err := c.Location()
	if err != nil {
		return err
	}

	s, err := db.Open(&db.Config{
		Path:     c.Database.Path,
		LogSQL:   c.Database.LogMode,
		Location: loc,
		Clock:    timeutil.NewSystemClock(loc),
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	cfg = c
	store = s
	return nil
}

// withStore wraps a command function to open the store first
func withStore(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := openStore(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fn(cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	defer func() {
		if store != nil {
			if err := store.Close(); err != nil {
				logger.Logger.WithError(err).Warn("failed to close database")
			}
		}
	}()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.daybook/config.yaml)")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
