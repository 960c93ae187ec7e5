package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/daybook/internal/models"
)

// TrackerModel is the live workday screen
type TrackerModel struct {
	store  TrackerStore
	width  int
	height int

	session *models.WorkSession
	entry   *models.ProjectEntry
	now     time.Time

	frame   int
	message string
	err     error
}

type trackerTickMsg struct{}

type trackerAnimMsg struct{}

func trackerTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return trackerTickMsg{} })
}

func trackerAnim() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return trackerAnimMsg{} })
}

// NewTrackerModel loads the active session and entry
func NewTrackerModel(store TrackerStore) TrackerModel {
	m := TrackerModel{store: store}
	m.refresh()
	return m
}

func (m *TrackerModel) refresh() {
	m.now = m.store.CurrentTime()

	session, err := m.store.GetActiveSession()
	if err != nil {
		m.err = err
		return
	}
	m.session = session
	m.entry = nil
	if session == nil {
		return
	}

	entry, err := m.store.GetActiveProjectEntry(&session.ID)
	if err != nil {
		m.err = err
		return
	}
	m.entry = entry
}

// Init starts the clock and the header animation
func (m TrackerModel) Init() tea.Cmd {
	return tea.Batch(trackerTick(), trackerAnim())
}

// Update handles messages
func (m TrackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trackerTickMsg:
		m.now = m.store.CurrentTime()
		return m, trackerTick()

	case trackerAnimMsg:
		m.frame = (m.frame + 1) % 4
		return m, trackerAnim()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "d", "D":
			m.toggleDay()
			return m, nil
		case "s", "S":
			m.stopEntry()
			return m, nil
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *TrackerModel) toggleDay() {
	m.err = nil
	if m.session == nil {
		if _, err := m.store.StartSession(); err != nil {
			m.err = err
			return
		}
		m.message = "Workday started"
		m.refresh()
		return
	}

	if m.entry != nil {
		if err := m.store.EndProjectEntry(m.entry.ID); err != nil {
			m.err = err
			return
		}
	}
	if err := m.store.EndSession(m.session.ID); err != nil {
		m.err = err
		return
	}
	m.message = "Workday ended"
	m.refresh()
}

func (m *TrackerModel) stopEntry() {
	m.err = nil
	if m.entry == nil {
		m.message = "No project entry running"
		return
	}
	if err := m.store.EndProjectEntry(m.entry.ID); err != nil {
		m.err = err
		return
	}
	m.message = fmt.Sprintf("Stopped %s", m.entry.ProjectName)
	m.refresh()
}

// View renders the tracker
func (m TrackerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	if m.width < 90 {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderClockPanel(m.width, contentHeight), helpBar)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2
	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderClockPanel(leftWidth, contentHeight),
		"  ",
		m.renderDetailsPanel(rightWidth, contentHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

func centered(width int, color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Align(lipgloss.Center).
		Width(width)
}

// renderClockPanel shows the running entry's clock, or the workday's when no entry runs
func (m TrackerModel) renderClockPanel(width, height int) string {
	var components []string

	anim := []string{"◐", "◓", "◑", "◒"}[m.frame]
	switch {
	case m.session == nil:
		components = append(components, centered(width, ColorDisabledText).Bold(true).Render("NO WORKDAY RUNNING"))
		components = append(components, centered(width, ColorSecondaryText).Italic(true).Render("press d to start your day"))
	case m.entry != nil:
		components = append(components, centered(width, ColorAccentBright).Bold(true).Render(fmt.Sprintf("%s  %s  %s", anim, strings.ToUpper(m.entry.ProjectName), anim)))
		components = append(components, centered(width, ColorAccentMain).Bold(true).Render("@"+m.entry.Category))
		components = append(components, m.renderBigClock(m.now.Sub(m.entry.StartTime), width))
		components = append(components, centered(width, ColorSecondaryText).Italic(true).Render("Entry started at "+m.entry.StartTime.Format("15:04")))
	default:
		components = append(components, centered(width, ColorAccentBright).Bold(true).Render(fmt.Sprintf("%s  WORKDAY  %s", anim, anim)))
		components = append(components, m.renderBigClock(m.now.Sub(m.session.StartTime), width))
		components = append(components, centered(width, ColorSecondaryText).Italic(true).Render("Day started at "+m.session.StartTime.Format("15:04")))
	}

	if m.err != nil {
		components = append(components, centered(width, ColorError).Render("⚠ "+m.err.Error()))
	} else if m.message != "" {
		components = append(components, centered(width, ColorSuccess).Render(m.message))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

var clockGlyphs = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// clockText formats elapsed time as HH:MM:SS, negative durations as zero
func clockText(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

func (m TrackerModel) renderBigClock(d time.Duration, width int) string {
	var rows [5]strings.Builder
	for _, r := range clockText(d) {
		glyph := clockGlyphs[r]
		for i := range rows {
			rows[i].WriteString(glyph[i])
			rows[i].WriteString(" ")
		}
	}

	style := centered(width, ColorAccentBright).Bold(true)
	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = style.Render(rows[i].String())
	}
	return strings.Join(lines, "\n")
}

func (m TrackerModel) renderDetailsPanel(width, height int) string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width-12).
		Padding(0, 1)
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width-8, lipgloss.Center, title.Render("daybook · "+m.now.Format("Mon Jan 02"))))
	b.WriteString("\n\n")

	line := func(icon, label, value, color string) {
		styled := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(value)
		b.WriteString(centered(width-8, ColorPrimaryText).Render(fmt.Sprintf("%s %s: %s", icon, label, styled)))
		b.WriteString("\n")
	}

	if m.session == nil {
		line("○", "Workday", "not started", ColorDisabledText)
	} else {
		line("●", "Workday", "since "+m.session.StartTime.Format("15:04"), ColorSuccess)
		line("📅", "Date", m.session.SessionDate, ColorSecondaryText)
		line("⏱", "Elapsed", clockText(m.now.Sub(m.session.StartTime)), ColorAccentBright)
	}

	if m.entry == nil {
		line("📁", "Project", "none", ColorDisabledText)
	} else {
		line("📁", "Project", m.entry.ProjectName, ColorAccentBright)
		line("🏷️ ", "Category", m.entry.Category, ColorAccentMain)
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func (m TrackerModel) renderHelpBar() string {
	return centered(m.width, ColorHelpText).
		Italic(true).
		Render("d start/stop day · s stop entry · q quit (day keeps running)")
}
