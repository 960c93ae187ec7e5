package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/daybook/internal/db"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage the category vocabulary",
}

var categoryLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List categories",
	Run: withStore(func(cmd *cobra.Command, args []string) {
		categories, err := store.ListCategories()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("%-4s %-30s %s\n", "ID", "NAME", "STATUS")
		fmt.Println(strings.Repeat("-", 45))
		for _, c := range categories {
			status := "active"
			if !c.Active {
				status = "inactive"
			}
			fmt.Printf("%-4d %-30s %s\n", c.ID, truncate(c.Name, 30), status)
		}
	}),
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.MinimumNArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string) {
		name, ok := categoryName(args)
		if !ok {
			return
		}
		if err := store.AddCategory(name); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Category \"%s\" added\n", name)
	}),
}

var categoryEnableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Make a category selectable again",
	Args:  cobra.MinimumNArgs(1),
	Run:   withStore(setCategoryActive(true)),
}

var categoryDisableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Hide a category from selection; history keeps it",
	Args:  cobra.MinimumNArgs(1),
	Run:   withStore(setCategoryActive(false)),
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a category and every entry using it",
	Args:  cobra.ExactArgs(2),
	Run: withStore(func(cmd *cobra.Command, args []string) {
		oldName := strings.TrimSpace(args[0])
		newName := strings.TrimSpace(args[1])
		if oldName == "" || newName == "" {
			fmt.Println("Error: category names cannot be empty")
			return
		}

		err := store.RenameCategory(oldName, newName)
		if errors.Is(err, db.ErrCategoryExists) {
			fmt.Printf("Error: category \"%s\" already exists\n", newName)
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Category \"%s\" renamed to \"%s\"\n", oldName, newName)
	}),
}

func setCategoryActive(active bool) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		name, ok := categoryName(args)
		if !ok {
			return
		}
		if err := store.SetCategoryActive(name, active); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		state := "disabled"
		if active {
			state = "enabled"
		}
		fmt.Printf("✅ Category \"%s\" %s\n", name, state)
	}
}

func categoryName(args []string) (string, bool) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Println("Error: category name cannot be empty")
		return "", false
	}
	return name, true
}

func init() {
	categoryCmd.AddCommand(categoryLsCmd, categoryAddCmd, categoryEnableCmd, categoryDisableCmd, categoryRenameCmd)
}
