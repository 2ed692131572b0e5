package clientip

import (
	"context"
	"log/slog"

	"github.com/ruhtouch/contactapi/pkg/logger"
)

type clientIPContextKey struct{}

// SetIPToContext stores client IP in context
func SetIPToContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

// GetIPFromContext retrieves client IP from context, Anonymous when unset.
func GetIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPContextKey{}).(string); ok && ip != "" {
		return ip
	}
	return Anonymous
}

// LoggerExtractor adds the client ip to records logged with a context that
// passed through Middleware.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		ip, ok := ctx.Value(clientIPContextKey{}).(string)
		if !ok || ip == "" {
			return slog.Attr{}, false
		}
		return logger.ClientIP(ip), true
	}
}
