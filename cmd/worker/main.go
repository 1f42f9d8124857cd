package main

import (
	"github.com/hibiken/asynq"
	zlog "github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-queue/internal/config"
	"github.com/BruksfildServices01/salon-queue/internal/logger"
	"github.com/BruksfildServices01/salon-queue/internal/notify"
)

// The worker delivers customer-called notifications enqueued by the API when
// NOTIFY_TRANSPORT=asynq.
func main() {

	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.IsProduction())

	if !cfg.RedisEnabled() {
		zlog.Fatal().Msg("worker needs REDIS_ADDR")
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				notify.QueueCritical: 6,
				"default":            3,
				"low":                1,
			},
		},
	)

	mux := asynq.NewServeMux()
	notify.NewTaskHandler(notify.NewSender(cfg.SMSAPIURL, cfg.SMSAPIKey)).Register(mux)

	zlog.Info().Str("redis", cfg.RedisAddr).Msg("notification worker running")
	// Run blocks until SIGTERM/SIGINT and drains in-flight tasks.
	if err := srv.Run(mux); err != nil {
		zlog.Fatal().Err(err).Msg("worker stopped")
	}
}
