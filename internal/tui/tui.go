package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/daybook/internal/db"
	"github.com/balkashynov/daybook/internal/models"
)

// TrackerStore is the part of the store the tracker screen drives
type TrackerStore interface {
	CurrentTime() time.Time
	GetActiveSession() (*models.WorkSession, error)
	GetActiveProjectEntry(sessionID *uint) (*models.ProjectEntry, error)
	StartSession() (*models.WorkSession, error)
	EndSession(id uint) error
	EndProjectEntry(id uint) error
}

// EntryStore is the part of the store the manual entry wizard needs
type EntryStore interface {
	CurrentTime() time.Time
	GetCategories(includeInactive bool) ([]string, error)
	AddEntryOnDate(req db.DatedEntryRequest) (*models.ProjectEntry, error)
}

// RunTrackerTUI starts the live tracker screen
func RunTrackerTUI(store TrackerStore) error {
	model := NewTrackerModel(store)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(TrackerModel); ok {
		if m.err != nil {
			fmt.Printf("❌ Error: %v\n", m.err)
		} else if m.session != nil {
			fmt.Println("💡 Workday is still running. Use 'daybook stop' to end it.")
		}
	}

	return nil
}

// RunEntryTUI starts the manual entry wizard
func RunEntryTUI(store EntryStore, prefilled map[string]string) error {
	model, err := NewEntryModel(store, prefilled)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(EntryModel); ok {
		if m.cancelled {
			fmt.Println("❌ Entry cancelled.")
		} else if m.created != nil {
			fmt.Printf("✅ Entry \"%s\" added - ID: %d\n", m.created.ProjectName, m.created.ID)
		} else if m.err != nil {
			fmt.Printf("❌ Error: %v\n", m.err)
		}
	}

	return nil
}
