package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/engine"
	"github.com/julianstephens/lifelog/internal/models"
	"github.com/julianstephens/lifelog/internal/storage"
)

type DebugCmd struct {
	DBPath  DebugDBPathCmd  `cmd:"" name:"db-path" help:"Show database path."`
	DumpDay DebugDumpDayCmd `cmd:"" name:"dump-day" help:"Dump a day's score breakdown and cached snapshot as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" optional:"" help:"Date to dump (YYYY-MM-DD or 'today')."`
}

type dayDump struct {
	Breakdown engine.Breakdown        `json:"breakdown"`
	Snapshot  *models.DailyCompletion `json:"snapshot,omitempty"`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(cmd.Date)
	if err != nil {
		return err
	}

	var out dayDump
	if out.Breakdown, err = engine.ComputeBreakdown(ctx.Store, date); err != nil {
		return err
	}
	snap, err := ctx.Store.GetDailyCompletion(date)
	switch {
	case err == nil:
		out.Snapshot = &snap
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("failed to get daily completion: %w", err)
	}
	return printJSON(out)
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(b))
	return nil
}
