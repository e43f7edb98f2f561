package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"doggywalk/config"
	"doggywalk/internal/domain/lifecycle"
	"doggywalk/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the primary/replica pool, pings it on start and, when migration.auto is
// set, brings the schema up to date before the HTTP server starts accepting requests.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres is not configured")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	// Repositories match gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
	db.TranslateError = true
	db = db.Session(&gorm.Session{
		// Multi-step writes go through TransactionManager.Execute.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if params.Config.Migration.Auto {
				if err := Migrate(ctx, db); err != nil {
					return err
				}
				params.Logger.InfoContext(ctx, "Schema migrated")
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// poolWait summarises connection waits between two pool snapshots.
type poolWait struct {
	count    int64
	duration time.Duration
	current  sql.DBStats
}

func diffPoolStats(prev, cur sql.DBStats) (poolWait, bool) {
	w := poolWait{
		count:    cur.WaitCount - prev.WaitCount,
		duration: cur.WaitDuration - prev.WaitDuration,
		current:  cur,
	}

	return w, w.count > 0
}

// level is Warn once requests queued long enough to be felt by callers.
func (w poolWait) level() slog.Level {
	if w.duration >= dbPoolWarnDurationThreshold {
		return slog.LevelWarn
	}

	return slog.LevelDebug
}

func (w poolWait) attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int64("wait_count", w.count),
		slog.Duration("wait_duration", w.duration),
		slog.Duration("avg_wait", w.duration/time.Duration(w.count)),
		slog.Int("max_open", w.current.MaxOpenConnections),
		slog.Int("open", w.current.OpenConnections),
		slog.Int("in_use", w.current.InUse),
		slog.Int("idle", w.current.Idle),
	}
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			if wait, ok := diffPoolStats(prev, cur); ok {
				logger.LogAttrs(ctx, wait.level(), "Postgres pool wait", wait.attrs()...)
			}
			prev = cur
		}
	}
}
