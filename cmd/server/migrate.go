package main

import (
	"github.com/spf13/cobra"

	"github.com/rl1809/kids-stock/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration commands",
	Long:  "Apply or inspect the embedded MySQL schema migrations",
}

func init() {
	for _, c := range []struct {
		use, short string
	}{
		{"up", "Apply all pending migrations"},
		{"down", "Roll back the most recent migration"},
		{"status", "Show the state of every migration"},
	} {
		command := c.use
		migrateCmd.AddCommand(&cobra.Command{
			Use:   c.use,
			Short: c.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, logger, err := bootstrap()
				if err != nil {
					return err
				}
				defer logger.Sync()

				return app.Migrate(commandContext(cmd), cfg.MySQL, command, logger)
			},
		})
	}
}
