package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ruhtouch/contactapi/pkg/logger"
)

// DefaultErrorMessage is sent for errors that carry no public message.
const DefaultErrorMessage = "An unexpected error occurred. Please try again later."

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	Details    []string
	LogLevel   slog.Level
}

// ErrorHandlerOption configures NewErrorHandler.
type ErrorHandlerOption func(*errorHandlerConfig)

type errorHandlerConfig struct {
	fallback string
}

// WithFallbackMessage replaces DefaultErrorMessage.
func WithFallbackMessage(msg string) ErrorHandlerOption {
	return func(c *errorHandlerConfig) {
		if msg != "" {
			c.fallback = msg
		}
	}
}

// ClassifyError maps err to a status code, public message and log level.
// Client errors log at warn, server errors at error.
func ClassifyError(err error, fallback string) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    fallback,
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Message
		info.Details = httpErr.Details
	}

	info.LogLevel = slog.LevelError
	if info.StatusCode >= 400 && info.StatusCode < 500 {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler returns an ErrorHandler that logs err and writes an
// ErrorBody. Request id and client ip reach the log through the logger's
// context decorator.
func NewErrorHandler(log *slog.Logger, opts ...ErrorHandlerOption) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	cfg := errorHandlerConfig{fallback: DefaultErrorMessage}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx Context, err error) {
		info := ClassifyError(err, cfg.fallback)
		r := ctx.Request()

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		body := ErrorBody{Error: info.Message, Details: info.Details}
		if renderErr := WriteJSON(ctx.ResponseWriter(), r, info.StatusCode, body); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to write error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
