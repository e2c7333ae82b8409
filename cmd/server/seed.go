package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rl1809/kids-stock/internal/app"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default clothing categories",
	Long:  "Insert the default clothing catalog when the table is empty and drop the cached catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		a, err := app.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Seed(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			logger.Info("clothing categories already present, nothing seeded")
			return nil
		}
		logger.Info("seeded clothing categories", zap.Int("count", n))
		return nil
	},
}
