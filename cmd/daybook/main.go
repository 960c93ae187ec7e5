package main

import (
	"fmt"
	"os"
	_ "time/tzdata" // the civil zone must resolve on hosts without a zoneinfo database

	"github.com/balkashynov/daybook/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
