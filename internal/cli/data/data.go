// Package data holds the bulk data management commands: clear, delete,
// export and import.
package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/constants"
	"github.com/julianstephens/lifelog/internal/logger"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
	"github.com/julianstephens/lifelog/internal/validation"
)

type DataCmd struct {
	Clear  ClearCmd  `cmd:"" help:"Delete every record, keeping settings, and re-seed the defaults."`
	Delete DeleteCmd `cmd:"" help:"Delete a single record by kind and id."`
	Export ExportCmd `cmd:"" help:"Export all data as JSON."`
	Import ImportCmd `cmd:"" help:"Import data from a JSON export."`
}

// confirm asks a yes/no question unless assumeYes is set.
func confirm(title string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

type ClearCmd struct {
	Yes        bool `short:"y" help:"Do not ask for confirmation."`
	NoDefaults bool `help:"Do not re-seed the default habits and workout template."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	ok, err := confirm("Delete all tracked data? Settings are kept.", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Store.ClearAll(); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	logger.Info("All data cleared")

	if c.NoDefaults {
		fmt.Println("All data cleared.")
		return nil
	}
	n, err := cli.SeedDefaults(ctx.Store, ctx.Clock())
	if err != nil {
		return err
	}
	fmt.Printf("All data cleared. Re-seeded %d default record(s).\n", n)
	return nil
}

type DeleteCmd struct {
	Kind string `arg:"" enum:"${kinds}" help:"Record kind: ${kinds}."`
	ID   string `arg:"" help:"Record id."`
}

// findDate returns the date of the row with the given id, or "" when absent.
func findDate[T any](rows []T, err error, id string, fields func(T) (string, string)) (string, error) {
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if rowID, date := fields(row); rowID == id {
			return date, nil
		}
	}
	return "", nil
}

// recordDate returns the date of a dated record so its snapshot can be
// refreshed after deletion. Undated kinds return "".
func recordDate(store storage.Provider, kind constants.RecordKind, id string) (string, error) {
	switch kind {
	case constants.KindDopamine:
		rows, err := store.GetAllDopamineEntries()
		return findDate(rows, err, id, func(e models.DopamineEntry) (string, string) { return e.ID, e.Date })
	case constants.KindWorkout:
		rows, err := store.GetAllWorkoutEntries()
		return findDate(rows, err, id, func(e models.WorkoutEntry) (string, string) { return e.ID, e.Date })
	case constants.KindHygieneCompletion:
		rows, err := store.GetAllHygieneCompletions()
		return findDate(rows, err, id, func(e models.HygieneCompletion) (string, string) { return e.ID, e.Date })
	}
	return "", nil
}

func deleter(store storage.Provider, kind constants.RecordKind) func(string) error {
	switch kind {
	case constants.KindDopamine:
		return store.DeleteDopamineEntry
	case constants.KindWorkout:
		return store.DeleteWorkoutEntry
	case constants.KindWorkoutTemplate:
		return store.DeleteWorkoutTemplate
	case constants.KindWorkoutExercise:
		return store.DeleteWorkoutExercise
	case constants.KindHygieneHabit:
		return store.DeleteHygieneHabit
	case constants.KindHygieneCompletion:
		return store.DeleteHygieneCompletion
	case constants.KindMood:
		return store.DeleteMoodEntry
	}
	return nil
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	kind := constants.RecordKind(c.Kind)
	if !slices.Contains(constants.RecordKinds, kind) {
		return fmt.Errorf("unknown record kind %q", c.Kind)
	}

	date, err := recordDate(ctx.Store, kind, c.ID)
	if err != nil {
		return fmt.Errorf("failed to look up %s %s: %w", kind, c.ID, err)
	}

	err = deleter(ctx.Store, kind)(c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s %s not found", kind, c.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	if date != "" {
		ctx.RefreshSnapshot(date)
	}
	fmt.Printf("Deleted %s %s\n", kind, c.ID)
	return nil
}

type ExportCmd struct {
	Output string `short:"o" help:"File to write (default: stdout)." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	d, err := storage.Dump(ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}

	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}
	raw = append(raw, '\n')

	if c.Output == "" || c.Output == "-" {
		_, err := os.Stdout.Write(raw)
		return err
	}
	if err := os.WriteFile(c.Output, raw, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported data to %s\n", c.Output)
	return nil
}

type ImportCmd struct {
	File  string `arg:"" help:"JSON export to import, or - for stdin." type:"path"`
	Force bool   `help:"Import even if the file has validation conflicts."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	var (
		raw []byte
		err error
	)
	if c.File == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(c.File)
	}
	if err != nil {
		return fmt.Errorf("failed to read import: %w", err)
	}

	var d storage.Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return fmt.Errorf("failed to parse import: %w", err)
	}

	result := validation.New().ValidateData(d)
	if result.HasConflicts() {
		if !c.Force {
			return fmt.Errorf("import has %d conflict(s), use --force to import anyway:\n%s",
				len(result.Conflicts), strings.TrimSuffix(result.FormatReport(), "\n"))
		}
		logger.Warn("Importing data with conflicts", "count", len(result.Conflicts))
	}

	ctx.PerformAutomaticBackup()
	if err := storage.Restore(ctx.Store, d); err != nil {
		return fmt.Errorf("failed to import data: %w", err)
	}
	fmt.Printf("Imported %d dopamine, %d workout, %d hygiene completion and %d mood record(s)\n",
		len(d.DopamineEntries), len(d.WorkoutEntries), len(d.HygieneCompletions), len(d.MoodEntries))
	return nil
}
