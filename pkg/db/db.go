package db

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/railzwaylabs/mrrboard/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var Module = fx.Module("db",
	fx.Provide(Open),
)

type Params struct {
	fx.In

	Cfg       config.Config
	Log       *zap.Logger
	Lifecycle fx.Lifecycle
}

func Open(p Params) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch p.Cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(p.Cfg.Database.DSN)
	case "sqlite":
		dialector = sqlite.Open(p.Cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", p.Cfg.Database.Driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}

	// In-memory sqlite keeps its schema per connection.
	if p.Cfg.Database.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	}

	p.Log.Named("db").Info("database connected", zap.String("driver", p.Cfg.Database.Driver))

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return sqlDB.Close()
		},
	})

	return conn, nil
}
