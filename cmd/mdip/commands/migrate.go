package commands

import (
	"errors"

	"mdip/internal/store/postgres"

	"github.com/spf13/cobra"
)

var errNeedsDatabase = errors.New("this command needs DATABASE_URL; the demo store is rebuilt on every start")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Demo() {
			return errNeedsDatabase
		}
		pool, err := postgres.NewPool(cmd.Context(), cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			return err
		}
		defer pool.Close()
		return postgres.Migrate(cmd.Context(), pool)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
