package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifelog/internal/engine"
	"github.com/julianstephens/lifelog/internal/logger"
	"github.com/julianstephens/lifelog/internal/utils"
)

type Domain string

const (
	DomainAll      Domain = "all"
	DomainDopamine Domain = "dopamine"
	DomainHygiene  Domain = "hygiene"
	DomainWorkout  Domain = "workout"
)

var Domains = []Domain{DomainAll, DomainDopamine, DomainHygiene, DomainWorkout}

func ParseDomain(s string) (Domain, error) {
	for _, d := range Domains {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown calendar domain %q", s)
}

func (d Domain) Classifier() engine.Classifier {
	switch d {
	case DomainDopamine:
		return engine.ClassifyDopamineDay
	case DomainHygiene:
		return engine.ClassifyHygieneDay
	case DomainWorkout:
		return engine.ClassifyWorkoutDay
	}
	return engine.ClassifyDayForCalendar
}

func (d Domain) next() Domain {
	for i, x := range Domains {
		if x == d {
			return Domains[(i+1)%len(Domains)]
		}
	}
	return DomainAll
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	weekdayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cellStyle    = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	todayStyle   = lipgloss.NewStyle().Underline(true).Bold(true)

	statusStyles = map[engine.DayStatus]lipgloss.Style{
		engine.StatusPassed:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		engine.StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		engine.StatusFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		engine.StatusNone:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		engine.StatusUnknown: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
)

// Render draws a Sunday-first month grid with each day coloured by its status.
func Render(year int, month time.Month, cells []engine.DayCell, today string, domain Domain) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %d (%s)", month, year, domain)))
	b.WriteString("\n")

	var week []string
	for _, wd := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		week = append(week, cellStyle.Render(weekdayStyle.Render(wd)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, week...))
	b.WriteString("\n")

	week = week[:0]
	offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	for range offset {
		week = append(week, cellStyle.Render(""))
	}
	for _, c := range cells {
		text := fmt.Sprintf("%d", c.Day)
		if c.Status == engine.StatusUnknown {
			text = "-"
		}
		label := statusStyles[c.Status].Render(text)
		if c.Date == today {
			label = todayStyle.Inherit(statusStyles[c.Status]).Render(text)
		}
		week = append(week, cellStyle.Render(label))
		if len(week) == 7 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, week...))
			b.WriteString("\n")
			week = week[:0]
		}
	}
	if len(week) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, week...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Legend())
	return b.String()
}

func Legend() string {
	return strings.Join([]string{
		statusStyles[engine.StatusPassed].Render("■ passed"),
		statusStyles[engine.StatusWarning].Render("■ warning"),
		statusStyles[engine.StatusFailed].Render("■ failed"),
		statusStyles[engine.StatusNone].Render("■ nothing logged"),
	}, "  ")
}

type KeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Domain key.Binding
	Today  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←/[", "prev month"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→/]", "next month"),
		),
		Domain: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "switch domain"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "this month"),
		),
	}
}

// Model shows one month at a time. The viewed month and domain live here
// rather than in any global.
type Model struct {
	reader engine.RecordReader
	Keys   KeyMap
	year   int
	month  time.Month
	today  string
	domain Domain
	cells  []engine.DayCell
}

func New(r engine.RecordReader, today time.Time) Model {
	m := Model{
		reader: r,
		Keys:   DefaultKeyMap(),
		domain: DomainAll,
	}
	m.SetToday(today)
	return m
}

// SetToday jumps to the month containing today and reloads it.
func (m *Model) SetToday(today time.Time) {
	m.today = utils.FormatDate(today)
	m.year, m.month = today.Year(), today.Month()
	m.Reload()
}

func (m *Model) Reload() {
	cells, err := engine.ClassifyMonth(m.reader, m.year, m.month, m.domain.Classifier())
	if err != nil {
		logger.Warn("Failed to classify some days", "month", fmt.Sprintf("%d-%02d", m.year, m.month), "error", err)
	}
	m.cells = cells
}

func (m *Model) shift(months int) {
	t := time.Date(m.year, m.month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	m.year, m.month = t.Year(), t.Month()
	m.Reload()
}

func (m Model) Month() (int, time.Month) {
	return m.year, m.month
}

func (m Model) Domain() Domain {
	return m.domain
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.Prev):
			m.shift(-1)
		case key.Matches(msg, m.Keys.Next):
			m.shift(1)
		case key.Matches(msg, m.Keys.Domain):
			m.domain = m.domain.next()
			m.Reload()
		case key.Matches(msg, m.Keys.Today):
			t, err := utils.ParseDate(m.today)
			if err == nil {
				m.SetToday(t)
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	return Render(m.year, m.month, m.cells, m.today, m.domain)
}
