package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/railzwaylabs/mrrboard/internal/clock"
	"github.com/railzwaylabs/mrrboard/internal/config"
	"github.com/railzwaylabs/mrrboard/internal/etl"
	"github.com/railzwaylabs/mrrboard/internal/invoice"
	"github.com/railzwaylabs/mrrboard/internal/migration"
	"github.com/railzwaylabs/mrrboard/internal/mrr"
	"github.com/railzwaylabs/mrrboard/internal/observability"
	"github.com/railzwaylabs/mrrboard/internal/redis"
	"github.com/railzwaylabs/mrrboard/internal/scheduler"
	"github.com/railzwaylabs/mrrboard/internal/seed"
	"github.com/railzwaylabs/mrrboard/internal/server"
	"github.com/railzwaylabs/mrrboard/internal/subscription"
	"github.com/railzwaylabs/mrrboard/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mrrboard",
		Short: "MRR dashboard service",
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newETLCmd(), newServeCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(
				config.Module,
				observability.Module,
				db.Module,
				migration.Module,
			)
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a deterministic synthetic subscription portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(
				config.Module,
				observability.Module,
				db.Module,
				clock.Module,
				fx.Provide(seed.RegisterSnowflake),
				subscription.Module,
				seed.Module,
				fx.Invoke(func(s *seed.Seeder) error {
					return s.Run(context.Background())
				}),
			)
		},
	}
}

func newETLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "etl",
		Short: "Extract subscriptions and invoices from Stripe and load the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(
				config.Module,
				observability.Module,
				db.Module,
				clock.Module,
				subscription.Module,
				invoice.Module,
				etl.Module,
				fx.Invoke(func(r *etl.Runner) error {
					return r.Run(context.Background())
				}),
			)
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MRR API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runOnce(
				config.Module,
				observability.Module,
				db.Module,
				migration.Module,
			)
			if err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		redis.Module,
		subscription.Module,
		mrr.Module,
		scheduler.Module,
		server.Module,
	)
	app.Run()
}

// runOnce starts an fx app for its invokes and tears it down.
func runOnce(opts ...fx.Option) error {
	app := fx.New(opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}
	return app.Stop(context.Background())
}
