package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/beaconbio/linkgate/internal/botwall"
	"github.com/beaconbio/linkgate/internal/config"
	"github.com/beaconbio/linkgate/internal/httpserver"
	"github.com/beaconbio/linkgate/internal/httpserver/deps"
	"github.com/beaconbio/linkgate/internal/index"
	"github.com/beaconbio/linkgate/internal/linkwrap"
	"github.com/beaconbio/linkgate/internal/logger"
	"github.com/beaconbio/linkgate/internal/ratelimit"
	"github.com/beaconbio/linkgate/internal/redis"
	"github.com/beaconbio/linkgate/internal/scheduler"
	redisstore "github.com/beaconbio/linkgate/internal/store/redis"
	"github.com/beaconbio/linkgate/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	catalogIdx  *index.CatalogIndex
	reloader    *scheduler.CatalogReloader
	gc          *scheduler.GarbageCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	store := redisstore.NewStore(redisClient)
	catalogIdx := index.NewCatalogIndex()

	classifier := botwall.New(linkwrap.SensitiveEndpoints)
	limiter := ratelimit.New(store, cfg.RevealRateLimit, cfg.RevealRateWindow, loggerClient)
	links := linkwrap.NewService(store, classifier, limiter, store, loggerClient)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		cfg.CatalogFile,
		catalogIdx,
		loggerClient,
		cfg.CatalogInterval,
		reloadTrigger,
	)

	gc := scheduler.NewGarbageCollector(store, loggerClient, cfg.GCInterval)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:               loggerClient,
		StartTime:            time.Now(),
		Version:              version.Version,
		Commit:               version.Commit,
		BuildDate:            version.BuildDate,
		GoVersion:            version.GoVersion,
		TimeNow:              time.Now,
		AdminCIDRS:           cfg.AdminCIDRS,
		TrustProxy:           cfg.TrustProxy,
		PublicBaseURL:        cfg.PublicBaseURL,
		RedisClient:          redisClient,
		Store:                store,
		Links:                links,
		Catalog:              catalogIdx,
		DefaultLinkTTL:       cfg.DefaultLinkTTL,
		CatalogReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		catalogIdx:  catalogIdx,
		reloader:    reloader,
		gc:          gc,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting linkgate v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("linkgate %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog reloader (loads the catalog and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.CatalogInterval))

	// Start garbage collector
	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("Redis closed cleanly")
		}
	}

	a.logger.Info("linkgate stopped cleanly")
	return nil
}
