package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/report"
	"github.com/julianstephens/lifelog/internal/storage"
	"github.com/julianstephens/lifelog/internal/tui/components/habits"
	"github.com/julianstephens/lifelog/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		contentHeight := msg.Height - v - 4
		m.dashboardModel.SetSize(msg.Width-h, contentHeight)
		m.habitsModel.SetSize(msg.Width-h, contentHeight)
		return m, nil

	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = newHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case habits.ToggleHabitMsg:
		m.toggleHabit(msg.ID)
		return m, nil

	case habits.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil
	}

	switch m.state {
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateMood:
		return m.updateMood(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			m.status = "Refreshed"
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateDashboard:
		if msg, ok := msg.(tea.KeyMsg); ok && m.handleDashboardKey(msg) {
			return m, m.form.Init()
		}
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case StateCalendar:
		m.calendarModel, cmd = m.calendarModel.Update(msg)
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	}
	return m, cmd
}

// handleDashboardKey logs today's dopamine or workout outcome. It reports
// true when a form was opened.
func (m *Model) handleDashboardKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.DopaminePass):
		m.logDopamine(models.DopaminePassed)
	case key.Matches(msg, m.keys.DopamineFail):
		m.logDopamine(models.DopamineFailed)
	case key.Matches(msg, m.keys.WorkoutDone):
		m.logWorkout(models.WorkoutCompleted)
	case key.Matches(msg, m.keys.WorkoutRest):
		m.logWorkout(models.WorkoutRest)
	case key.Matches(msg, m.keys.WorkoutMiss):
		m.logWorkout(models.WorkoutMissed)
	case key.Matches(msg, m.keys.Mood):
		m.moodForm = m.currentMood()
		m.form = newMoodForm(m.moodForm)
		m.state = StateMood
		return true
	}
	return false
}

func (m *Model) afterWrite(date, status string) {
	m.refreshSnapshot(date)
	m.refresh()
	m.status = status
}

func (m *Model) logDopamine(status models.DopamineStatus) {
	today := m.today()
	entry := models.DopamineEntry{
		ID:        uuid.New().String(),
		Date:      today,
		Status:    status,
		CreatedAt: m.clock(),
	}
	if err := validation.CheckDopamineEntry(entry); err != nil {
		m.status = err.Error()
		return
	}
	if err := m.store.SaveDopamineEntry(entry); err != nil {
		m.status = fmt.Sprintf("Failed to save dopamine entry: %v", err)
		return
	}
	m.afterWrite(today, "Dopamine control: "+report.DopamineLabel(status))
}

func (m *Model) logWorkout(t models.WorkoutType) {
	today := m.today()
	entry := models.WorkoutEntry{
		ID:        uuid.New().String(),
		Date:      today,
		Type:      t,
		CreatedAt: m.clock(),
	}
	// Keep template and sets when re-marking a day that was logged in detail.
	if existing, err := m.store.GetWorkoutEntry(today); err == nil {
		entry.TemplateID = existing.TemplateID
		entry.Exercises = existing.Exercises
		entry.DurationMin = existing.DurationMin
		entry.Notes = existing.Notes
	}
	if err := validation.CheckWorkoutEntry(entry); err != nil {
		m.status = err.Error()
		return
	}
	if err := m.store.SaveWorkoutEntry(entry); err != nil {
		m.status = fmt.Sprintf("Failed to save workout: %v", err)
		return
	}
	m.afterWrite(today, "Workout: "+report.WorkoutLabel(t))
}

func (m *Model) toggleHabit(habitID string) {
	today := m.today()
	completion, err := m.store.GetHygieneCompletion(habitID, today)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		completion = models.HygieneCompletion{
			ID:        uuid.New().String(),
			HabitID:   habitID,
			Date:      today,
			Completed: true,
			CreatedAt: m.clock(),
		}
	case err != nil:
		m.status = fmt.Sprintf("Failed to load habit: %v", err)
		return
	default:
		completion.Completed = !completion.Completed
	}
	if err := m.store.SaveHygieneCompletion(completion); err != nil {
		m.status = fmt.Sprintf("Failed to save habit: %v", err)
		return
	}
	m.afterWrite(today, "Habit updated")
}

// currentMood prefills the form with today's entry, if any.
func (m Model) currentMood() *models.MoodEntry {
	today := m.today()
	if entry, err := m.store.GetMoodEntry(today); err == nil {
		return &entry
	}
	mid := (models.MinRating + models.MaxRating) / 2
	return &models.MoodEntry{
		ID:     uuid.New().String(),
		Date:   today,
		Mood:   mid,
		Energy: mid,
		Stress: mid,
		OCD:    mid,
		Numb:   mid,
	}
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		habitList, err := m.store.GetAllHygieneHabits()
		if err != nil {
			m.status = fmt.Sprintf("Failed to load habits: %v", err)
			m.state = StateHabits
			return m, cmd
		}
		order := 1
		for _, h := range habitList {
			order = max(order, h.Order+1)
		}
		habit := models.HygieneHabit{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(m.habitForm.Name),
			Description: strings.TrimSpace(m.habitForm.Description),
			Order:       order,
			Category:    "personal",
			Difficulty:  "easy",
			CreatedAt:   m.clock(),
		}
		if err := m.store.SaveHygieneHabit(habit); err != nil {
			// Stay in the form so the user can retry or cancel with ESC.
			m.status = fmt.Sprintf("Failed to add habit: %v", err)
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.afterWrite(m.today(), "Added habit: "+habit.Name)
		m.state = StateHabits
	case huh.StateAborted:
		m.state = StateHabits
	}
	return m, cmd
}

func (m Model) updateMood(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateDashboard
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		entry := *m.moodForm
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = m.clock()
		}
		if err := validation.CheckMoodEntry(entry); err != nil {
			m.status = err.Error()
		} else if err := m.store.SaveMoodEntry(entry); err != nil {
			m.status = fmt.Sprintf("Failed to save mood: %v", err)
		} else {
			m.refresh()
			m.status = "Mood logged"
		}
		m.state = StateDashboard
	case huh.StateAborted:
		m.state = StateDashboard
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if err := m.store.DeleteHygieneHabit(m.habitToDeleteID); err != nil {
			m.status = fmt.Sprintf("Failed to delete habit: %v", err)
		} else {
			m.afterWrite(m.today(), "Habit deleted")
		}
		m.habitToDeleteID = ""
		m.state = StateHabits
	case "n", "N", "esc":
		m.habitToDeleteID = ""
		m.state = StateHabits
	}
	return m, nil
}
