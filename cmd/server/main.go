package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ruhtouch/contactapi/modules/contact"
	"github.com/ruhtouch/contactapi/pkg/clientip"
	"github.com/ruhtouch/contactapi/pkg/config"
	"github.com/ruhtouch/contactapi/pkg/environment"
	"github.com/ruhtouch/contactapi/pkg/httpserver"
	"github.com/ruhtouch/contactapi/pkg/logger"
	"github.com/ruhtouch/contactapi/pkg/ratelimit"
	"github.com/ruhtouch/contactapi/pkg/redis"
	"github.com/ruhtouch/contactapi/pkg/requestid"
)

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(environment.Parse(cfg.AppEnv), cfg.AppName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("application stopped with error", logger.Error(err))
		os.Exit(1)
	}
	log.Info("application stopped")
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	var (
		rdb    goredis.UniversalClient
		probes []httpserver.Probe
		hooks  []httpserver.Option
	)
	if cfg.RateLimit.Store == ratelimit.StoreRedis {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		rdb = client
		probes = append(probes, redis.Probe(client))
		hooks = append(hooks, httpserver.WithStopHook("redis", func(context.Context) error {
			return client.Close()
		}))
	}

	store, err := ratelimit.NewStore(cfg.RateLimit, rdb)
	if err != nil {
		return err
	}
	if c, ok := store.(io.Closer); ok {
		hooks = append(hooks, httpserver.WithStopHook("ratelimit", func(context.Context) error {
			return c.Close()
		}))
	}

	limiter, err := ratelimit.NewFromConfig(store, cfg.RateLimit)
	if err != nil {
		return err
	}

	mail, err := newMail(cfg, log)
	if err != nil {
		return err
	}

	svc, err := contact.NewService(cfg.Contact, limiter, mail,
		contact.WithLogger(log),
		contact.WithCORS(cfg.CORS),
	)
	if err != nil {
		return err
	}

	ips, err := clientip.NewResolver(cfg.ClientIP)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware, ips.Middleware, httpserver.AccessLog(log))
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, probes...))
	r.Mount(cfg.MountPath, svc.Handle())

	srv := httpserver.NewFromConfig(cfg.Server, append(hooks, httpserver.WithLogger(log))...)
	return srv.Run(ctx, r)
}
