package system

import (
	"fmt"

	"github.com/julianstephens/lifelog/internal/cli"
)

// schemaStore is implemented by the SQL backends.
type schemaStore interface {
	Migrate() (int, error)
	SchemaVersion() (current, latest int, err error)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, ok := ctx.Store.(schemaStore)
	if !ok {
		return fmt.Errorf("migrate command only supports SQL storage")
	}

	count, err := store.Migrate()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("Successfully applied %d migration(s).\n", count)
	}
	return nil
}
