package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/api/handler"
	"github.com/d60-Lab/microblog/internal/api/router"
	"github.com/d60-Lab/microblog/internal/graph"
	"github.com/d60-Lab/microblog/internal/metrics"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/database"
	"github.com/d60-Lab/microblog/pkg/logger"
	"github.com/d60-Lab/microblog/pkg/tracing"
)

// @title Microblog API
// @version 1.0
// @description 社交关系与内容索引服务
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Environment: cfg.Sentry.Environment}); err != nil {
			log.Warn("Failed to initialize sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	m := metrics.New()
	engine := graph.New()

	var (
		replicator *service.ActivityReplicator
		stopRepl   = func(context.Context) error { return nil }
		activities service.ActivityReader
	)
	if cfg.Activity.Enabled {
		sinks, outbox, err := buildSinks(cfg)
		if err != nil {
			log.Fatal("Failed to build activity sinks", zap.Error(err))
		}
		if outbox != nil {
			activities = outbox
		}
		replicator = service.NewActivityReplicator(sinks, cfg.Activity.QueueSize, m)
		stopRepl = replicator.Start(cfg.Activity.Workers)
		log.Info("Activity export started", zap.Int("sinks", len(sinks)), zap.Int("workers", cfg.Activity.Workers))
	}

	svc := service.New(engine, replicator, activities, m, cfg.Feed.TrendingLimit)
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router.Setup(cfg, handler.New(svc), m),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown", zap.Error(err))
		}
		if err := stopRepl(shutdownCtx); err != nil {
			log.Error("Activity sinks closed with errors", zap.Error(err))
		}
		return shutdownTracing(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", zap.Error(err))
		return
	}
	log.Info("Server exited")
}

// buildSinks 按配置创建活动落地端；返回的 outbox 可能为 nil
func buildSinks(cfg *config.Config) ([]repository.ActivitySink, repository.ActivityRepository, error) {
	var (
		sinks  []repository.ActivitySink
		outbox repository.ActivityRepository
	)
	if cfg.Activity.Outbox.Enabled {
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.AutoMigrate(db); err != nil {
			return nil, nil, fmt.Errorf("migrate activities: %w", err)
		}
		outbox = repository.NewActivityRepository(db)
		sinks = append(sinks, outbox)
	}
	if rc := cfg.Activity.Redis; rc.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: rc.Addr, DB: rc.DB})
		sinks = append(sinks, repository.NewRedisStreamSink(rdb, rc.Stream, rc.MaxLen))
	}
	if ac := cfg.Activity.AMQP; ac.Enabled {
		ch, conn, err := repository.DialAMQP(ac.URL)
		if err != nil {
			return nil, nil, err
		}
		sink, err := repository.NewAMQPActivitySink(ch, conn, ac.Exchange)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		sinks = append(sinks, sink)
	}
	return sinks, outbox, nil
}
