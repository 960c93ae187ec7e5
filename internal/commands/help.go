package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for daybook",
	Long:  `Display detailed help for all daybook commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
daybook - workday and project time tracker

TRACKER:

  start                   Clock in for the day
    --ui                  Open the live tracker afterwards
  stop                    Clock out (stops the running entry too)
  status                  Show the running workday and entry
  today                   Table of today's project entries
  track                   Live tracker (d day on/off, s stop entry, q quit)

  entry start <text>      Start a project entry in the running workday
    -c, --category        Category (overrides @Category)
  entry stop              Stop the running project entry

    Smart syntax:
      @Category     Category, matched case-insensitively
      09:00-10:30   Explicit times (entry add)
      09:00-        Start time, entry keeps running

    Example:
      daybook entry start "API refactor @Programming"

REPORTS:

  report                  Daily totals and category breakdown
    --from, --to          Date range (default: Sunday through today)
    -m, --mode            hours | percent | average

ADMIN:

  session ls              List workdays (--from, --to, --all)
  session edit <id>       Change --date, --start, --end, --notes
  session rm <id>         Delete a workday and its entries

  entry add [text]        Log an entry with explicit times (wizard without text)
    -d, --date            today, yesterday, YYYY-MM-DD, dd/mm/yyyy, X days ago
  entry ls                List entries (--from, --to, --all)
  entry edit <id>         Change --project, --category, --start, --end
  entry rm <id>           Delete an entry

  category ls             List categories
  category add <name>     Add a category
  category enable <name>  Offer a category again
  category disable <name> Stop offering a category
  category rename <a> <b> Rename a category and its entries

  --config <file>         Config file (default ~/.daybook/config.yaml)
  version                 Print version information
  help                    Show this help

`)
}
