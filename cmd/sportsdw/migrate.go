// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sportsdw/internal/secrets"
	"github.com/pdiddy/sportsdw/internal/warehouse"
	"github.com/pdiddy/sportsdw/pkg/types"
)

const defaultWarehousePath = "warehouse.db"

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate staged documents into the star-schema warehouse",
	Long: `Migrate reads the staged api-sports documents from MongoDB and loads
them into the relational star schema: dimensions are upserted on their natural
keys and facts reference the resulting surrogate keys, so re-running a
migration does not duplicate rows.

The warehouse runs on SQLite by default; pass --driver postgres with a DSN
(or .secrets/postgres-dsn) to load into Postgres instead.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().String("sports", "all", "sports to migrate: all or a comma-separated subset of soccer,basketball,f1")
	migrateCmd.Flags().String("driver", string(types.DriverSQLite), "warehouse driver: sqlite3 or postgres")
	migrateCmd.Flags().String("dsn", "", "warehouse DSN: SQLite file path (default warehouse.db) or Postgres URL (default from .secrets/postgres-dsn)")
	migrateCmd.Flags().Bool("init-only", false, "create the star schema and exit without migrating")
	migrateCmd.Flags().String("mongo-uri", "", "MongoDB connection string (default from .secrets/mongo-uri or localhost)")
	migrateCmd.Flags().String("database", defaultDatabase, "staging database name")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	sportsFlag, _ := cmd.Flags().GetString("sports")
	sports, err := parseSports(sportsFlag)
	if err != nil {
		return err
	}

	driver, _ := cmd.Flags().GetString("driver")
	dsn, _ := cmd.Flags().GetString("dsn")
	if types.WarehouseDriver(driver) == types.DriverPostgres {
		dsn = secrets.Default(loadedSecrets, "postgres-dsn", dsn)
		if dsn == "" {
			return fmt.Errorf("postgres DSN required: pass --dsn or create .secrets/postgres-dsn")
		}
	} else if dsn == "" {
		dsn = defaultWarehousePath
	}

	store, err := warehouse.Open(types.WarehouseConfig{
		Driver: types.WarehouseDriver(driver),
		DSN:    dsn,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		return err
	}
	if initOnly, _ := cmd.Flags().GetBool("init-only"); initOnly {
		fmt.Println("Warehouse schema created")
		return nil
	}

	src, err := openStaging(ctx, cmd)
	if err != nil {
		return err
	}
	defer src.Close(ctx)

	summary, err := store.Migrate(ctx, src, sports, os.Stdout)
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed migration", summary.Failed)
	}
	return nil
}
