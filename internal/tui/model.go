// Package tui is the interactive dashboard: today's score, the month
// calendar and the hygiene checklist.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifelog/internal/engine"
	"github.com/julianstephens/lifelog/internal/logger"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
	"github.com/julianstephens/lifelog/internal/tui/components/calendar"
	"github.com/julianstephens/lifelog/internal/tui/components/dashboard"
	"github.com/julianstephens/lifelog/internal/tui/components/habits"
	"github.com/julianstephens/lifelog/internal/utils"
	"github.com/julianstephens/lifelog/internal/validation"
)

type SessionState int

const (
	StateDashboard SessionState = iota
	StateCalendar
	StateHabits
	StateAddHabit
	StateMood
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

type HabitFormModel struct {
	Name        string
	Description string
}

type Model struct {
	store             storage.Provider
	clock             func() time.Time
	state             SessionState
	keys              KeyMap
	help              help.Model
	dashboardModel    dashboard.Model
	calendarModel     calendar.Model
	habitsModel       habits.Model
	form              *huh.Form
	habitForm         *HabitFormModel
	moodForm          *models.MoodEntry
	habitToDeleteID   string
	status            string
	validationWarning string
	quitting          bool
	width             int
	height            int
}

func NewModel(store storage.Provider, clock func() time.Time) Model {
	if clock == nil {
		clock = time.Now
	}
	m := Model{
		store:          store,
		clock:          clock,
		state:          StateDashboard,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		dashboardModel: dashboard.New(0, 0),
		habitsModel:    habits.New(nil, nil, 0, 0),
	}
	m.calendarModel = calendar.New(store, m.now())
	m.refresh()
	return m
}

// now is the current time in the user's timezone, falling back to the
// system zone when settings cannot be read.
func (m Model) now() time.Time {
	t := m.clock()
	settings, err := m.store.GetSettings()
	if err != nil {
		logger.Warn("Failed to read settings", "error", err)
		return t
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings", "timezone", settings.Timezone, "error", err)
		return t
	}
	return t.In(loc)
}

func (m Model) today() string {
	return utils.FormatDate(m.now())
}

// refresh reloads every view from the store.
func (m *Model) refresh() {
	today := m.today()
	m.dashboardModel.SetSummary(dashboard.Load(m.store, today))
	m.calendarModel.Reload()

	habitList, err := m.store.GetAllHygieneHabits()
	if err != nil {
		logger.Warn("Failed to load habits", "error", err)
	}
	completions, err := m.store.GetHygieneCompletionsForDay(today)
	if err != nil {
		logger.Warn("Failed to load habit completions", "date", today, "error", err)
	}
	m.habitsModel.SetHabits(habitList, completions)

	m.updateValidationStatus()
}

// refreshSnapshot recomputes the cached completion row for date after a write.
func (m *Model) refreshSnapshot(date string) {
	snap, err := engine.ComputeSnapshot(m.store, date, m.clock())
	if err != nil {
		logger.Warn("Failed to compute daily completion", "date", date, "error", err)
		return
	}
	if err := m.store.SaveDailyCompletion(snap); err != nil {
		logger.Warn("Failed to save daily completion", "date", date, "error", err)
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateDashboard:
		keys = append(keys, m.keys.DopaminePass, m.keys.WorkoutDone, m.keys.Mood)
	case StateCalendar:
		ck := m.calendarModel.Keys
		keys = append(keys, ck.Prev, ck.Next, ck.Domain)
	case StateHabits:
		hk := m.habitsModel.Keys()
		keys = append(keys, hk.Toggle, hk.Add)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}

	var actions []key.Binding
	switch m.state {
	case StateDashboard:
		actions = []key.Binding{m.keys.DopaminePass, m.keys.DopamineFail, m.keys.WorkoutDone, m.keys.WorkoutRest, m.keys.WorkoutMiss, m.keys.Mood}
	case StateCalendar:
		ck := m.calendarModel.Keys
		actions = []key.Binding{ck.Prev, ck.Next, ck.Domain, ck.Today}
	case StateHabits:
		hk := m.habitsModel.Keys()
		actions = []key.Binding{hk.Toggle, hk.Add, hk.Delete}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// updateValidationStatus runs the record validator and updates the warning message
func (m *Model) updateValidationStatus() {
	data, err := storage.Dump(m.store)
	if err != nil {
		m.validationWarning = "⚠ Validation unavailable"
		return
	}

	result := validation.New().ValidateData(data)
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'lifelog doctor'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}
