package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/daybook/internal/db"
	"github.com/balkashynov/daybook/internal/models"
	"github.com/balkashynov/daybook/internal/parser"
	"github.com/balkashynov/daybook/internal/timeutil"
)

// Step represents the current step in the wizard
type Step int

const (
	StepDate Step = iota
	StepStart
	StepEnd
	StepProject
	StepCategory
	StepSave
)

var stepLabels = []string{"Date", "Start", "End", "Project", "Category", "Save"}

// prefilled keys, one per input step
var prefillKeys = []string{"date", "start", "end", "project", "category"}

// EntryModel is the manual project entry wizard
type EntryModel struct {
	store      EntryStore
	categories []string

	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	// Entry data, filled as steps validate
	date     time.Time
	start    timeutil.TimeOfDay
	end      *timeutil.TimeOfDay
	project  string
	category string

	// State
	err           error
	cancelled     bool
	validationErr string
	created       *models.ProjectEntry

	showSaveModal   bool
	saveModalChoice bool // true for Yes
}

// NewEntryModel creates the wizard, accepting inactive categories as well
func NewEntryModel(store EntryStore, prefilled map[string]string) (EntryModel, error) {
	categories, err := store.GetCategories(true)
	if err != nil {
		return EntryModel{}, fmt.Errorf("failed to load categories: %w", err)
	}

	placeholders := []string{
		"today, yesterday, YYYY-MM-DD, dd/mm/yyyy (Enter for today)",
		"HH:MM, e.g. 09:00 (required)",
		"HH:MM (Enter to leave the entry running)",
		"Project name (required)",
		strings.Join(categories, ", "),
	}

	inputs := make([]textinput.Model, len(placeholders))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].CharLimit = 100
		inputs[i].Placeholder = placeholders[i]
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
		inputs[i].SetValue(prefilled[prefillKeys[i]])
	}
	inputs[StepCategory].ShowSuggestions = true
	inputs[StepCategory].SetSuggestions(categories)
	inputs[StepDate].Focus()

	return EntryModel{
		store:      store,
		categories: categories,
		inputs:     inputs,
	}, nil
}

// Init initializes the model
func (m EntryModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m EntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.showSaveModal {
			switch msg.String() {
			case "left", "right", "tab":
				m.saveModalChoice = !m.saveModalChoice
			case "y", "Y":
				m.saveModalChoice = true
				return m.handleSaveChoice()
			case "n", "N":
				m.saveModalChoice = false
				return m.handleSaveChoice()
			case "enter":
				return m.handleSaveChoice()
			case "esc":
				m.showSaveModal = false
			case "ctrl+c":
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "esc":
			if m.currentStep == StepSave {
				return m.prevStep()
			}
			if !m.hasChanges() {
				m.cancelled = true
				return m, tea.Quit
			}
			m.showSaveModal = true
			m.saveModalChoice = true
			return m, nil

		case "enter", "down":
			return m.handleEnter()

		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

// handleEnter validates the current step and advances, or saves on the last step
func (m EntryModel) handleEnter() (EntryModel, tea.Cmd) {
	if m.currentStep == StepSave {
		return m.createEntry()
	}

	if err := m.validateStep(m.currentStep); err != "" {
		m.validationErr = err
		return m, nil
	}
	return m.nextStep()
}

// validateStep stores the parsed value of a step, returning a message when it is invalid
func (m *EntryModel) validateStep(step Step) string {
	value := strings.TrimSpace(m.inputs[step].Value())

	switch step {
	case StepDate:
		date, err := parser.ParseDate(value, m.store.CurrentTime())
		if err != nil {
			return err.Error()
		}
		m.date = date

	case StepStart:
		start, err := timeutil.ParseTimeText(value)
		if err != nil {
			return "Start time must be HH:MM, e.g. 09:30"
		}
		m.start = start

	case StepEnd:
		if value == "" {
			m.end = nil
			return ""
		}
		end, err := timeutil.ParseTimeText(value)
		if err != nil {
			return "End time must be HH:MM, e.g. 17:00"
		}
		if end.Hour*60+end.Minute < m.start.Hour*60+m.start.Minute {
			return "End time must not be before start time"
		}
		m.end = &end

	case StepProject:
		if value == "" {
			return "Project name is required"
		}
		m.project = value

	case StepCategory:
		if value == "" {
			return "Category is required"
		}
		category, ok := parser.MatchCategory(value, m.categories)
		if !ok {
			return "Unknown category. Use: " + strings.Join(m.categories, ", ")
		}
		m.category = category
		m.inputs[step].SetValue(category)
	}

	return ""
}

func (m EntryModel) nextStep() (EntryModel, tea.Cmd) {
	m.validationErr = ""
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
	}
	if m.currentStep < StepSave {
		return m, m.inputs[m.currentStep].Focus()
	}
	return m, nil
}

func (m EntryModel) prevStep() (EntryModel, tea.Cmd) {
	m.validationErr = ""
	if m.currentStep == StepDate {
		return m, nil
	}
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
	}
	m.currentStep--
	return m, m.inputs[m.currentStep].Focus()
}

func (m EntryModel) hasChanges() bool {
	for _, input := range m.inputs {
		if strings.TrimSpace(input.Value()) != "" {
			return true
		}
	}
	return false
}

// createEntry revalidates every step and writes the entry
func (m EntryModel) createEntry() (EntryModel, tea.Cmd) {
	for step := StepDate; step < StepSave; step++ {
		if err := m.validateStep(step); err != "" {
			m.currentStep = step
			m.validationErr = err
			return m, m.inputs[step].Focus()
		}
	}

	entry, err := m.store.AddEntryOnDate(db.DatedEntryRequest{
		Date:        m.date,
		ProjectName: m.project,
		Category:    m.category,
		Start:       m.start,
		End:         m.end,
	})
	if err != nil {
		m.err = err
		return m, nil
	}

	m.created = entry
	return m, tea.Quit
}

func (m EntryModel) handleSaveChoice() (EntryModel, tea.Cmd) {
	m.showSaveModal = false
	if m.saveModalChoice {
		return m.createEntry()
	}
	m.cancelled = true
	return m, tea.Quit
}

// View renders the wizard
func (m EntryModel) View() string {
	if m.cancelled || m.created != nil {
		return ""
	}

	if m.width < 85 {
		return m.renderWizard()
	}

	rightWidth := 44
	leftWidth := m.width - rightWidth - 4

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(m.height - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1).
		Render(m.renderWizard())
	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(m.height - 2).
		Padding(1).
		Render(m.renderPreview())

	view := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	if m.showSaveModal {
		return m.renderSaveModal()
	}
	return view
}

func (m EntryModel) renderWizard() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Render("📝 Log Project Time"))
	b.WriteString("\n\n")

	current := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	done := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	future := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	for i, label := range stepLabels {
		step := Step(i)
		if step == StepSave {
			b.WriteString("\n")
			label = "💾 " + label
		}
		switch {
		case step == m.currentStep:
			b.WriteString(current.Render("▶ " + label))
		case step < m.currentStep:
			b.WriteString(done.Render("✓ " + label))
		default:
			b.WriteString(future.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.currentStep < StepSave {
		b.WriteString(m.inputs[m.currentStep].View())
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Render("Press Enter to save the entry"))
	}
	b.WriteString("\n\n")

	if m.validationErr != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("⚠ " + m.validationErr))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("❌ " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).
		Render("enter next · ↑/shift+tab back · esc quit"))

	return b.String()
}

func (m EntryModel) renderPreview() string {
	field := func(label, value string) string {
		color := ColorPrimaryText
		if value == "" {
			value, color = "-", ColorDisabledText
		}
		return fmt.Sprintf("%-10s %s", label+":",
			lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(value))
	}

	date := strings.TrimSpace(m.inputs[StepDate].Value())
	if date == "" {
		date = "today"
	}
	end := strings.TrimSpace(m.inputs[StepEnd].Value())
	if end == "" && m.currentStep > StepEnd {
		end = "Running"
	}

	lines := []string{
		field("Project", strings.TrimSpace(m.inputs[StepProject].Value())),
		field("Category", strings.TrimSpace(m.inputs[StepCategory].Value())),
		field("Date", date),
		field("Start", strings.TrimSpace(m.inputs[StepStart].Value())),
		field("End", end),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

func (m EntryModel) renderSaveModal() string {
	yes := lipgloss.NewStyle().Padding(0, 2)
	no := lipgloss.NewStyle().Padding(0, 2)
	if m.saveModalChoice {
		yes = yes.Background(lipgloss.Color(ColorAccentBright)).Foreground(lipgloss.Color("#000000")).Bold(true)
	} else {
		no = no.Background(lipgloss.Color(ColorError)).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	}

	var content strings.Builder
	content.WriteString("Save this entry?\n\n")
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, yes.Render("Yes"), "   ", no.Render("No")))
	content.WriteString("\n\n← → or Y/N to choose, Enter to confirm\nEsc to keep editing")

	modal := lipgloss.NewStyle().
		Width(50).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentBright)).
		Padding(1).
		Align(lipgloss.Center).
		Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
