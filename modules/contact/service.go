package contact

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ruhtouch/contactapi/handler"
	"github.com/ruhtouch/contactapi/pkg/binder"
	"github.com/ruhtouch/contactapi/pkg/clientip"
	"github.com/ruhtouch/contactapi/pkg/cors"
	"github.com/ruhtouch/contactapi/pkg/email"
	"github.com/ruhtouch/contactapi/pkg/logger"
	"github.com/ruhtouch/contactapi/pkg/ratelimit"
)

// ErrBodyTooLarge is returned for bodies over the binder limits.
var ErrBodyTooLarge = handler.NewHTTPError(http.StatusRequestEntityTooLarge, "Request body too large")

// Mail is the outbound side of the service. A nil Dispatcher, or a missing
// From or To address, means delivery is not configured.
type Mail struct {
	Dispatcher email.Dispatcher
	From       string
	To         string
}

func (m Mail) configured() bool {
	return m.Dispatcher != nil && m.From != "" && m.To != ""
}

// Service handles contact form submissions.
//
// A POST passes through the per-client limiter first, so rejected and
// malformed requests still spend the caller's allowance. The body is then
// bound from JSON or form encoding, checked by the Validator, rendered and
// handed to the mail dispatcher. Every outcome is reported as the JSON
// envelope {"success": ..., "message": ...} and client errors never echo
// field values back.
//
// Service is safe for concurrent use once constructed; all its state lives
// in the limiter store and the dispatcher.
type Service struct {
	limiter   ratelimit.Limiter
	validator *Validator
	renderer  *Renderer
	mail      Mail
	log       *slog.Logger
	now       func() time.Time
	cors      func(http.Handler) http.Handler
	binder    binder.Binder
	errors    handler.ErrorHandler[handler.Context]
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	log     *slog.Logger
	catalog *Catalog
	now     func() time.Time
	cors    cors.Config
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithCatalog replaces DefaultCatalog.
func WithCatalog(c *Catalog) ServiceOption {
	return func(o *serviceOptions) {
		if c != nil {
			o.catalog = c
		}
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithCORS sets the cross-origin policy. The default allows any origin.
func WithCORS(cfg cors.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.cors = cfg
	}
}

// NewService wires the submission pipeline. The limiter is shared by every
// request handled by the returned service.
func NewService(cfg Config, limiter ratelimit.Limiter, mail Mail, opts ...ServiceOption) (*Service, error) {
	if limiter == nil {
		return nil, fmt.Errorf("%w: limiter is required", ErrInvalidConfig)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	o := serviceOptions{
		log:     slog.Default(),
		catalog: DefaultCatalog(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	bind := binder.Negotiate(
		binder.JSON(binder.WithMaxJSONSize(cfg.MaxBodyBytes)),
		binder.Form(binder.WithMaxMemory(cfg.MaxBodyBytes)),
	)

	log := o.log.With(logger.Component("contact"))
	return &Service{
		limiter:   limiter,
		validator: NewValidator(o.catalog, cfg.HoneypotField),
		renderer:  NewRenderer(o.catalog, WithBrand(cfg.Brand), WithLocation(loc)),
		mail:      mail,
		log:       log,
		now:       o.now,
		cors:      cors.Middleware(o.cors),
		binder:    bind,
		errors:    handler.NewErrorHandler(log),
	}, nil
}

// Handle returns the endpoint router, to be mounted at the form's URL.
//
// Every request gets CORS headers. Only POST counts against the client's
// quota: preflights and requests answered with 405 pass the limiter
// untouched. A limiter failure rejects the submission with 500 rather than
// letting it through unmetered.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(s.cors)
	r.Use(ratelimit.Middleware(s.limiter, ratelimit.ByIP,
		ratelimit.WithSkipFunc(func(r *http.Request) bool { return r.Method != http.MethodPost }),
		ratelimit.WithOnLimitReached(s.limitReached),
		ratelimit.WithOnError(s.limiterFailed),
	))
	r.MethodNotAllowed(s.methodNotAllowed)

	r.Options("/", s.preflight)
	r.Post("/", handler.Wrap[handler.Context, binder.Values](s.submit,
		handler.WithBinders[handler.Context, binder.Values](s.binder),
		handler.WithErrorHandler[handler.Context, binder.Values](s.handleError),
	))

	return r
}

func (s *Service) submit(ctx handler.Context, fields binder.Values) handler.Response {
	start := s.now()
	ip := clientip.GetIPFromContext(ctx)

	res := s.validator.Validate(fields)
	if !res.IsValid {
		if suspectedAbuse(res) {
			s.log.WarnContext(ctx, "honeypot field filled",
				logger.Event("suspected_abuse"),
				logger.ClientIP(ip),
			)
		}
		return handler.Error(ErrValidationFailed.WithDetails(res.Errors...))
	}
	sub := res.SanitizedData

	if !s.mail.configured() {
		s.log.ErrorContext(ctx, "mail delivery is not configured",
			logger.Event("mail_not_configured"),
		)
		return handler.Error(ErrMailNotConfigured)
	}

	if err := s.mail.Dispatcher.Verify(ctx); err != nil {
		return handler.Error(ErrMailUnavailable.Wrap(err))
	}

	rendered, err := s.renderer.Render(ctx, sub, RenderContext{
		ClientIP:    ip,
		SubmittedAt: start,
	})
	if err != nil {
		return handler.Error(ErrUnexpected.Wrap(err))
	}

	err = s.mail.Dispatcher.Send(ctx, email.Message{
		From:     s.mail.From,
		FromName: sub.Name,
		To:       s.mail.To,
		ReplyTo:  sub.Email,
		Subject:  rendered.Subject,
		HTML:     rendered.HTML,
		Text:     rendered.Text,
	})
	switch {
	case errors.Is(err, email.ErrThrottled):
		return handler.Error(ErrMailUnavailable.Wrap(err))
	case err != nil:
		return handler.Error(ErrUnexpected.Wrap(err))
	}

	s.log.InfoContext(ctx, "contact notification sent",
		logger.Event("contact_sent"),
		slog.String("service", sub.Service),
		logger.Duration(s.now().Sub(start)),
	)

	return handler.JSON(map[string]any{
		"success": true,
		"message": MsgSent,
	})
}

// handleError maps binder failures to public errors before logging and
// writing the response.
func (s *Service) handleError(ctx handler.Context, err error) {
	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		err = ErrBodyTooLarge.Wrap(err)
	case errors.Is(err, binder.ErrFailedToParseJSON):
		err = ErrInvalidJSON.Wrap(err)
	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrFailedToParseForm):
		err = ErrInvalidContentType.Wrap(err)
	}
	s.errors(ctx, err)
}

func (s *Service) preflight(w http.ResponseWriter, r *http.Request) {
	_ = handler.WriteJSON(w, r, http.StatusOK, map[string]string{"message": MsgPreflight})
}

func (s *Service) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "POST, OPTIONS")
	s.errors(handler.NewContext(w, r), handler.ErrMethodNotAllowed)
}

func (s *Service) limitReached(w http.ResponseWriter, r *http.Request, res *ratelimit.Result) {
	retryAfter := res.RetryAfterSeconds()
	s.log.InfoContext(r.Context(), "rate limit exceeded",
		logger.Event("rate_limited"),
		logger.RetryAfter(retryAfter),
	)
	_ = handler.WriteJSON(w, r, http.StatusTooManyRequests, map[string]any{
		"error":      MsgTooManyRequests,
		"retryAfter": retryAfter,
	})
}

// limiterFailed rejects the request when the counter store is unreachable.
func (s *Service) limiterFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.errors(handler.NewContext(w, r), ErrUnexpected.Wrap(err))
}
