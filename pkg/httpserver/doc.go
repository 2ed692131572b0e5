// Package httpserver runs the HTTP listener with graceful shutdown and
// provides the health endpoints and access log shared by the service.
//
// Server binds its listener before calling start hooks, so WithAddr(":0")
// works and hooks see the real address. Run returns when its context is
// cancelled, SIGINT or SIGTERM arrives, or Shutdown is called. Shutdown
// drains in-flight requests and then runs stop hooks, such as closing the
// Redis client, inside the same deadline.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook("redis", func(context.Context) error { return client.Close() }),
//	)
//	r := chi.NewRouter()
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, redis.Probe(client)))
//	err := srv.Run(ctx, r)
//
// Listen errors are wrapped with ErrStart and drain failures with
// ErrShutdown.
package httpserver
