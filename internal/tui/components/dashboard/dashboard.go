package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifelog/internal/engine"
	"github.com/julianstephens/lifelog/internal/logger"
	"github.com/julianstephens/lifelog/internal/report"
)

const unavailable = "-"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(20)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)

	scoreStyles = map[engine.DayStatus]lipgloss.Style{
		engine.StatusPassed:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		engine.StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		engine.StatusFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		engine.StatusNone:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Bold(true),
	}
)

// Summary is everything the dashboard shows for one day. A nil pointer means
// the value could not be computed.
type Summary struct {
	Date          string
	Report        *report.DailyReport
	CurrentStreak *int
	LongestStreak *int
	Workout       *engine.WorkoutStats
}

// Load gathers a day's summary. Failures are logged and leave the field nil.
func Load(r report.Reader, date string) Summary {
	s := Summary{Date: date}

	if rep, err := report.BuildDailyReport(r, date); err != nil {
		logger.Warn("Failed to build daily report", "date", date, "error", err)
	} else {
		s.Report = &rep
	}
	if n, err := engine.ComputeCurrentStreak(r, date); err != nil {
		logger.Warn("Failed to compute current streak", "date", date, "error", err)
	} else {
		s.CurrentStreak = &n
	}
	if n, err := engine.ComputeLongestStreak(r); err != nil {
		logger.Warn("Failed to compute longest streak", "error", err)
	} else {
		s.LongestStreak = &n
	}
	if stats, err := engine.ComputeWorkoutStats(r, date); err != nil {
		logger.Warn("Failed to compute workout stats", "date", date, "error", err)
	} else {
		s.Workout = &stats
	}
	return s
}

func days(n *int) string {
	if n == nil {
		return unavailable
	}
	return fmt.Sprintf("%d day(s)", *n)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// Render lays the summary out as labelled rows.
func Render(s Summary) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Today "+s.Date), "")

	if rep := s.Report; rep != nil {
		score := scoreStyles[engine.ClassifyScore(rep.OverallCompletion)].
			Render(fmt.Sprintf("%d%%", rep.OverallCompletion))
		rows = append(rows,
			labelStyle.Render("Overall")+score,
			row("Dopamine Control", rep.Dopamine),
			row("Workout", rep.Workout),
			row("Hygiene", fmt.Sprintf("%d%% of %d habit(s)", rep.HygieneCompletion, rep.HabitsTotal)),
		)
		if rep.Mood != nil {
			rows = append(rows, row("Mood", fmt.Sprintf("mood %d  energy %d  stress %d  ocd %d  numb %d",
				rep.Mood.Mood, rep.Mood.Energy, rep.Mood.Stress, rep.Mood.OCD, rep.Mood.Numb)))
		} else {
			rows = append(rows, row("Mood", "Not logged"))
		}
	} else {
		rows = append(rows,
			row("Overall", unavailable),
			row("Dopamine Control", unavailable),
			row("Workout", unavailable),
			row("Hygiene", unavailable),
			row("Mood", unavailable),
		)
	}

	rows = append(rows, "",
		row("Current streak", days(s.CurrentStreak)),
		row("Longest streak", days(s.LongestStreak)),
	)

	if w := s.Workout; w != nil {
		rows = append(rows,
			row("Workouts", fmt.Sprintf("%d this week, %d this month, %d total", w.WeeklyCompleted, w.MonthlyCompleted, w.TotalCompleted)),
			row("Consistency", fmt.Sprintf("%d%%", w.Consistency)),
			row("Workout streak", days(&w.CurrentStreak)),
		)
	} else {
		rows = append(rows,
			row("Workouts", unavailable),
			row("Consistency", unavailable),
			row("Workout streak", unavailable),
		)
	}

	return strings.Join(rows, "\n")
}

type Model struct {
	viewport viewport.Model
	summary  Summary
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m *Model) SetSummary(s Summary) {
	m.summary = s
	m.viewport.SetContent(Render(s))
}

func (m Model) Summary() Summary {
	return m.summary
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}
