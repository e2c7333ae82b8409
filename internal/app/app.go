package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/rl1809/kids-stock/internal/adapter/handler"
	"github.com/rl1809/kids-stock/internal/adapter/storage"
	"github.com/rl1809/kids-stock/internal/config"
	"github.com/rl1809/kids-stock/internal/core/service"
)

const healthInterval = 5 * time.Second

// App owns the connections and services of one running process.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	db    *sql.DB
	rdb   *redis.Client
	mysql *storage.MySQLAdapter
	cache *storage.RedisAdapter

	Groups     *service.GroupService
	Children   *service.ChildService
	Categories *service.CategoryService
	Stock      *service.StockService
}

// New connects to MySQL and Redis and wires the services.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := OpenMySQL(ctx, cfg.MySQL)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to mysql")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))

	a := &App{
		cfg:    cfg,
		logger: logger,
		db:     db,
		rdb:    rdb,
		mysql:  storage.NewMySQLAdapter(db),
		cache:  storage.NewRedisAdapter(rdb, cfg.Cache.KeyPrefix),
	}
	a.Categories = service.NewCategoryService(a.mysql, a.cache, cfg.Cache.CategoryTTL, logger.Named("categories"))
	a.Groups = service.NewGroupService(a.mysql, a.mysql, cfg.Group.TokenAttempts)
	a.Children = service.NewChildService(a.mysql, a.mysql)
	a.Stock = service.NewStockService(a.mysql, a.mysql, a.Categories)

	return a, nil
}

// OpenMySQL opens and pings a pool configured from cfg.
func OpenMySQL(ctx context.Context, cfg config.MySQLConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// Serve runs the HTTP and gRPC servers until ctx is cancelled, then shuts
// both down within the configured timeout.
func (a *App) Serve(ctx context.Context) error {
	httpHandler := handler.NewHTTPHandler(handler.Deps{
		Groups:     a.Groups,
		Children:   a.Children,
		Stock:      a.Stock,
		Categories: a.Categories,
		Checks: map[string]handler.Pinger{
			"mysql": a.mysql,
			"redis": a.cache,
		},
		Logger: a.logger.Named("http"),
	})

	httpServer := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      handler.NewRouter(httpHandler),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	grpcServer := grpc.NewServer()
	health := handler.NewGRPCHandler(a.mysql, a.logger.Named("grpc"))
	health.Register(grpcServer)

	lis, err := net.Listen("tcp", a.cfg.Server.GRPCAddr())
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		health.Run(ctx, healthInterval)
		return nil
	})

	g.Go(func() error {
		a.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		a.logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http shutdown", zap.Error(err))
		}
		a.logger.Info("HTTP server stopped")

		grpcServer.GracefulStop()
		a.logger.Info("gRPC server stopped")
		return nil
	})

	return g.Wait()
}

// Seed inserts the default clothing catalog into an empty table and drops
// the cached catalog.
func (a *App) Seed(ctx context.Context) (int, error) {
	n, err := a.mysql.SeedCategories(ctx, storage.DefaultCategories())
	if err != nil {
		return 0, fmt.Errorf("seed categories: %w", err)
	}
	if err := a.Categories.InvalidateCategories(ctx); err != nil {
		a.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
	return n, nil
}

func (a *App) Close() {
	if err := a.rdb.Close(); err != nil {
		a.logger.Warn("close redis", zap.Error(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close mysql", zap.Error(err))
	}
	a.logger.Info("connections closed")
}

// Migrate applies a goose command ("up", "down" or "status") to the
// database in cfg. It needs no Redis connection.
func Migrate(ctx context.Context, cfg config.MySQLConfig, command string, logger *zap.Logger) error {
	db, err := OpenMySQL(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := storage.NewMigrator(db)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		logResults(logger, results)
		return err
	case "down":
		result, err := provider.Down(ctx)
		if result != nil {
			logResults(logger, []*goose.MigrationResult{result})
		}
		return err
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			logger.Info("migration",
				zap.Int64("version", s.Source.Version),
				zap.String("file", s.Source.Path),
				zap.String("state", string(s.State)),
			)
		}
		return nil
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
}

func logResults(logger *zap.Logger, results []*goose.MigrationResult) {
	for _, r := range results {
		fields := []zap.Field{
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.String("direction", r.Direction),
			zap.Duration("duration", r.Duration),
		}
		if r.Error != nil {
			logger.Error("migration failed", append(fields, zap.Error(r.Error))...)
			continue
		}
		logger.Info("migration applied", fields...)
	}
	if len(results) == 0 {
		logger.Info("no migrations to apply")
	}
}
