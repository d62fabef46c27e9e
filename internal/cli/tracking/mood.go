package tracking

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/validation"
)

type MoodCmd struct {
	Log  MoodLogCmd  `cmd:"" help:"Log today's mood ratings. Prompts for any rating not given."`
	List MoodListCmd `cmd:"" help:"List recent mood entries."`
}

type MoodLogCmd struct {
	Mood   int    `help:"Overall mood, 1-5."`
	Energy int    `help:"Energy, 1-5."`
	Stress int    `help:"Stress, 1-5."`
	OCD    int    `name:"ocd" help:"OCD intensity, 1-5."`
	Numb   int    `help:"Numbness, 1-5."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)."`
	Notes  string `help:"Optional notes."`
}

func (c *MoodLogCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	entry := models.MoodEntry{
		ID:        cli.NewID(),
		Date:      date,
		Mood:      c.Mood,
		Energy:    c.Energy,
		Stress:    c.Stress,
		OCD:       c.OCD,
		Numb:      c.Numb,
		Notes:     c.Notes,
		CreatedAt: ctx.Clock(),
	}
	if missingRatings(entry) {
		if err := newMoodForm(&entry).Run(); err != nil {
			return fmt.Errorf("mood entry cancelled: %w", err)
		}
	}

	if err := validation.CheckMoodEntry(entry); err != nil {
		return err
	}
	if err := ctx.Store.SaveMoodEntry(entry); err != nil {
		return fmt.Errorf("failed to save mood entry: %w", err)
	}

	fmt.Printf("Logged mood for %s\n", date)
	return nil
}

func missingRatings(m models.MoodEntry) bool {
	return m.Mood == 0 || m.Energy == 0 || m.Stress == 0 || m.OCD == 0 || m.Numb == 0
}

func ratingSelect(title string, value *int) *huh.Select[int] {
	opts := make([]huh.Option[int], 0, models.MaxRating)
	for i := models.MinRating; i <= models.MaxRating; i++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(i), i))
	}
	if *value == 0 {
		*value = (models.MinRating + models.MaxRating) / 2
	}
	return huh.NewSelect[int]().Title(title).Options(opts...).Value(value)
}

func newMoodForm(m *models.MoodEntry) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			ratingSelect("Mood", &m.Mood),
			ratingSelect("Energy", &m.Energy),
			ratingSelect("Stress", &m.Stress),
			ratingSelect("OCD", &m.OCD),
			ratingSelect("Numb", &m.Numb),
			huh.NewText().
				Title("Notes").
				Value(&m.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

type MoodListCmd struct {
	Limit int `help:"Number of entries to show." default:"10"`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.GetRecentMoodEntries(c.Limit)
	if err != nil {
		return fmt.Errorf("failed to get mood entries: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No mood entries found.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  mood %d  energy %d  stress %d  ocd %d  numb %d", e.Date, e.Mood, e.Energy, e.Stress, e.OCD, e.Numb)
		if e.Notes != "" {
			fmt.Printf("  %s", e.Notes)
		}
		fmt.Println()
	}
	return nil
}
