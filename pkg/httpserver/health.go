package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ruhtouch/contactapi/handler"
	"github.com/ruhtouch/contactapi/pkg/logger"
)

// DefaultProbeTimeout bounds each readiness check.
const DefaultProbeTimeout = 2 * time.Second

// Probe checks one dependency, e.g. redis.Healthcheck.
type Probe struct {
	Name  string
	Check func(context.Context) error
}

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LivenessHandler always answers 200 while the process serves requests.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = handler.WriteJSON(w, r, http.StatusOK, healthBody{Status: "alive"})
	}
}

// ReadinessHandler runs every probe and answers 200 when all pass, 503
// otherwise. Failure details are logged, never returned.
func ReadinessHandler(log *slog.Logger, probes ...Probe) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		body := healthBody{Status: "ready", Checks: make(map[string]string, len(probes))}
		status := http.StatusOK

		for _, p := range probes {
			if err := runProbe(r.Context(), p); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					logger.Component("httpserver"),
					slog.String("probe", p.Name),
					logger.Error(err),
				)
				body.Checks[p.Name] = "unavailable"
				body.Status = "not_ready"
				status = http.StatusServiceUnavailable
				continue
			}
			body.Checks[p.Name] = "ok"
		}

		_ = handler.WriteJSON(w, r, status, body)
	}
}

func runProbe(ctx context.Context, p Probe) error {
	if p.Check == nil {
		return errors.Join(ErrNotReady, errors.New("no check function"))
	}
	ctx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()
	if err := p.Check(ctx); err != nil {
		return errors.Join(ErrNotReady, err)
	}
	return nil
}
