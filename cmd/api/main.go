package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-queue/internal/audit"
	"github.com/BruksfildServices01/salon-queue/internal/clock"
	"github.com/BruksfildServices01/salon-queue/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-queue/internal/db"
	"github.com/BruksfildServices01/salon-queue/internal/infra/cache"
	"github.com/BruksfildServices01/salon-queue/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/salon-queue/internal/infra/repository"
	"github.com/BruksfildServices01/salon-queue/internal/logger"
	"github.com/BruksfildServices01/salon-queue/internal/media"
	"github.com/BruksfildServices01/salon-queue/internal/notify"
	"github.com/BruksfildServices01/salon-queue/internal/routes"
	ucQueue "github.com/BruksfildServices01/salon-queue/internal/usecase/queue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		zlog.Fatal().Err(err).Msg("api stopped")
	}
}

// run owns every resource it opens and releases them before returning.
func run(ctx context.Context) error {

	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ======================================================
	// STORES
	// ======================================================
	deps := routes.Deps{Clock: clock.NewSystem(clock.DefaultTimezone)}
	var auditStore audit.Store

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		zlog.Warn().Msg("using in-memory store, data is lost on restart")
		mem := memory.New()
		deps.Queue, deps.Salons, deps.Users, deps.Visits, deps.Offers = mem, mem, mem, mem, mem
		auditStore = mem

	default:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return err
		}
		defer dbpkg.Close(db)

		deps.Queue = infraRepo.NewQueueGormStore(db)
		deps.Salons = infraRepo.NewSalonGormRepository(db)
		deps.Users = infraRepo.NewUserGormRepository(db)
		deps.Visits = infraRepo.NewVisitGormRepository(db)
		deps.Offers = infraRepo.NewOfferGormRepository(db)
		auditStore = infraRepo.NewAuditGormRepository(db)
	}

	// ======================================================
	// CACHE
	// ======================================================
	deps.Cache = cache.Nop{}
	if cfg.RedisEnabled() {
		rdb := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()

		if err := cache.Ping(ctx, rdb); err != nil {
			zlog.Warn().Err(err).Msg("redis unreachable, queue cache disabled")
		} else {
			deps.Cache = cache.NewRedisQueueCache(rdb, cfg.QueueCacheTTL)
		}
	}

	// ======================================================
	// NOTIFICATIONS
	// ======================================================
	switch cfg.NotifyTransport {
	case config.NotifyTransportAsynq:
		if !cfg.RedisEnabled() {
			return errors.New("NOTIFY_TRANSPORT=asynq needs REDIS_ADDR")
		}
		client := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		deps.Publisher = notify.NewAsynqPublisher(client)
	case config.NotifyTransportKafka:
		deps.Publisher = notify.NewKafkaPublisher(notify.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
	default:
		deps.Publisher = notify.NewLogPublisher()
	}
	defer func() {
		if err := deps.Publisher.Close(); err != nil {
			zlog.Error().Err(err).Msg("failed to close notification publisher")
		}
	}()

	if cfg.MediaEnabled() {
		deps.Uploader = media.NewS3Uploader(cfg)
	}

	// ======================================================
	// AUDIT
	// ======================================================
	deps.AuditLogger = audit.New(auditStore)
	deps.AuditDispatcher = audit.NewDispatcher(deps.AuditLogger)

	// ======================================================
	// SWEEPER
	// ======================================================
	expireUC := ucQueue.NewExpireStale(deps.Queue, deps.Cache, deps.AuditDispatcher, deps.Clock, cfg.QueueWaitingTTL)
	sweeper, err := ucQueue.StartSweeper(cfg.QueueSweepSchedule, expireUC)
	if err != nil {
		deps.AuditDispatcher.Close(context.Background())
		return errors.Wrapf(err, "sweep schedule %q", cfg.QueueSweepSchedule)
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()
	routes.RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", cfg.Addr()).Str("store", cfg.StoreDriver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		zlog.Info().Msg("shutting down")
	case err := <-serveErr:
		runErr = errors.Wrap(err, "listen")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("http shutdown")
	}
	<-sweeper.Stop().Done()
	deps.AuditDispatcher.Close(shutdownCtx)

	return runErr
}
