package tracking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
)

type TemplateCmd struct {
	Add    TemplateAddCmd    `cmd:"" help:"Add a workout template."`
	List   TemplateListCmd   `cmd:"" help:"List workout templates and their exercises."`
	Delete TemplateDeleteCmd `cmd:"" help:"Delete a template and its exercises."`
}

type TemplateAddCmd struct {
	Name     string `arg:"" help:"Template name."`
	Category string `help:"Optional category." default:"strength"`
}

func (c *TemplateAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("template name cannot be empty")
	}
	if _, err := ctx.Store.GetWorkoutTemplateByName(name); err == nil {
		return fmt.Errorf("workout template %q already exists", name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to check existing templates: %w", err)
	}

	tmpl := models.WorkoutTemplate{
		ID:        cli.NewID(),
		Name:      name,
		Category:  c.Category,
		CreatedAt: ctx.Clock(),
	}
	if err := ctx.Store.SaveWorkoutTemplate(tmpl); err != nil {
		return fmt.Errorf("failed to save workout template: %w", err)
	}
	fmt.Printf("Added workout template: %s\n", name)
	return nil
}

type TemplateListCmd struct{}

func (c *TemplateListCmd) Run(ctx *cli.Context) error {
	templates, err := ctx.Store.GetAllWorkoutTemplates()
	if err != nil {
		return fmt.Errorf("failed to get workout templates: %w", err)
	}
	if len(templates) == 0 {
		fmt.Println("No workout templates found.")
		return nil
	}

	for _, t := range templates {
		if t.Category != "" {
			fmt.Printf("%s [%s]\n", t.Name, t.Category)
		} else {
			fmt.Println(t.Name)
		}
		exercises, err := ctx.Store.GetExercisesForTemplate(t.ID)
		if err != nil {
			return fmt.Errorf("failed to get exercises for %s: %w", t.Name, err)
		}
		for _, e := range exercises {
			fmt.Printf("  %d. %s\n", e.Order, describeExercise(e))
		}
	}
	return nil
}

type TemplateDeleteCmd struct {
	Name string `arg:"" help:"Template name."`
}

func (c *TemplateDeleteCmd) Run(ctx *cli.Context) error {
	tmpl, err := findTemplate(ctx.Store, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteWorkoutTemplate(tmpl.ID); err != nil {
		return fmt.Errorf("failed to delete workout template: %w", err)
	}
	fmt.Printf("Deleted workout template: %s\n", tmpl.Name)
	return nil
}

type ExerciseCmd struct {
	Add  ExerciseAddCmd  `cmd:"" help:"Add an exercise to a template."`
	List ExerciseListCmd `cmd:"" help:"List a template's exercises."`
	PR   ExercisePRCmd   `cmd:"" name:"pr" help:"Show or set an exercise's personal record."`
}

type ExerciseAddCmd struct {
	Template string `arg:"" help:"Template name."`
	Name     string `arg:"" help:"Exercise name."`
	Sets     int    `help:"Target sets." default:"3"`
	Reps     int    `help:"Target reps." default:"10"`
}

func (c *ExerciseAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("exercise name cannot be empty")
	}
	if c.Sets <= 0 || c.Reps <= 0 {
		return fmt.Errorf("target sets and reps must be positive")
	}

	tmpl, err := findTemplate(ctx.Store, c.Template)
	if err != nil {
		return err
	}
	existing, err := ctx.Store.GetExercisesForTemplate(tmpl.ID)
	if err != nil {
		return fmt.Errorf("failed to get exercises: %w", err)
	}

	order := 1
	for _, e := range existing {
		if strings.EqualFold(e.Name, name) {
			return fmt.Errorf("exercise %q already exists in %s", name, tmpl.Name)
		}
		order = max(order, e.Order+1)
	}

	ex := models.WorkoutExercise{
		ID:         cli.NewID(),
		TemplateID: tmpl.ID,
		Name:       name,
		Order:      order,
		TargetSets: c.Sets,
		TargetReps: c.Reps,
		CreatedAt:  ctx.Clock(),
	}
	if err := ctx.Store.SaveWorkoutExercise(ex); err != nil {
		return fmt.Errorf("failed to save exercise: %w", err)
	}
	fmt.Printf("Added %s to %s\n", describeExercise(ex), tmpl.Name)
	return nil
}

type ExerciseListCmd struct {
	Template string `arg:"" help:"Template name."`
}

func (c *ExerciseListCmd) Run(ctx *cli.Context) error {
	tmpl, err := findTemplate(ctx.Store, c.Template)
	if err != nil {
		return err
	}
	exercises, err := ctx.Store.GetExercisesForTemplate(tmpl.ID)
	if err != nil {
		return fmt.Errorf("failed to get exercises: %w", err)
	}
	if len(exercises) == 0 {
		fmt.Printf("%s has no exercises.\n", tmpl.Name)
		return nil
	}
	for _, e := range exercises {
		fmt.Printf("%d. %s\n", e.Order, describeExercise(e))
	}
	return nil
}

type ExercisePRCmd struct {
	Template string  `arg:"" help:"Template name."`
	Name     string  `arg:"" help:"Exercise name."`
	Weight   float64 `help:"Record a new personal record weight."`
}

func (c *ExercisePRCmd) Run(ctx *cli.Context) error {
	tmpl, err := findTemplate(ctx.Store, c.Template)
	if err != nil {
		return err
	}
	exercises, err := ctx.Store.GetExercisesForTemplate(tmpl.ID)
	if err != nil {
		return fmt.Errorf("failed to get exercises: %w", err)
	}

	for _, e := range exercises {
		if !strings.EqualFold(e.Name, c.Name) {
			continue
		}
		if c.Weight < 0 {
			return fmt.Errorf("weight cannot be negative")
		}
		if c.Weight == 0 {
			if e.PR == 0 {
				fmt.Printf("%s: no personal record yet\n", e.Name)
			} else {
				fmt.Printf("%s: %s\n", e.Name, formatWeight(e.PR))
			}
			return nil
		}
		e.PR = c.Weight
		if err := ctx.Store.SaveWorkoutExercise(e); err != nil {
			return fmt.Errorf("failed to save exercise: %w", err)
		}
		fmt.Printf("Set PR for %s: %s\n", e.Name, formatWeight(e.PR))
		return nil
	}
	return fmt.Errorf("exercise %q not found in %s", c.Name, tmpl.Name)
}

func describeExercise(e models.WorkoutExercise) string {
	s := fmt.Sprintf("%s %dx%d", e.Name, e.TargetSets, e.TargetReps)
	if e.PR > 0 {
		s += " (PR " + formatWeight(e.PR) + ")"
	}
	return s
}
