package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/lifelog/internal/cli"
	"github.com/julianstephens/lifelog/internal/keyring"
	"github.com/julianstephens/lifelog/internal/storage/postgres"
)

// SetConnectionCmd stores a PostgreSQL connection string in the OS keyring.
// Unlike config files, the keyring may hold a password.
type SetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (cmd *SetConnectionCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}
	if err := postgres.ValidateConnString(cmd.ConnectionString); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return fmt.Errorf("invalid connection string: %w", err)
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}
	fmt.Printf("✓ Connection string stored in OS keyring: %s\n", postgres.MaskPassword(cmd.ConnectionString))
	fmt.Println("  Set database.backend to postgres (or LIFELOG_DB_BACKEND=postgres) to use it.")
	return nil
}

type ClearConnectionCmd struct{}

func (cmd *ClearConnectionCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No connection string stored in keyring.")
			return nil
		}
		return err
	}
	fmt.Println("✓ Connection string removed from OS keyring")
	return nil
}
