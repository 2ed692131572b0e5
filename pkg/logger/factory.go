package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ruhtouch/contactapi/pkg/environment"
)

// Format selects the slog handler.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat accepts "json" or "text" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("logger: unknown format %q", s)
	}
}

type settings struct {
	level      slog.Level
	format     Format
	out        io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// Option tunes New.
type Option func(*settings)

// WithFormat forces the output format. An empty format is a no-op; an
// unknown one panics.
func WithFormat(f Format) Option {
	return func(s *settings) {
		if f == "" {
			return
		}
		parsed, err := ParseFormat(string(f))
		if err != nil {
			panic(err)
		}
		s.format = parsed
	}
}

// WithOutput redirects records. Nil keeps stdout.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.out = w
		}
	}
}

// WithAttr attaches attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) { s.attrs = append(s.attrs, attrs...) }
}

// WithContextExtractors adds per-record attributes read from the context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) { s.extractors = append(s.extractors, extractors...) }
}

// WithEnvironment applies the defaults of the given deployment stage and tags
// every record with the service name and environment. Development logs text
// at debug level; staging and production log JSON at info level.
func WithEnvironment(env environment.Environment, service string) Option {
	return func(s *settings) {
		s.level, s.format = slog.LevelInfo, FormatJSON
		if env == environment.Development {
			s.level, s.format = slog.LevelDebug, FormatText
		}
		if service != "" {
			s.attrs = append(s.attrs, slog.String("service", service))
		}
		s.attrs = append(s.attrs, slog.String("env", env.String()))
	}
}

// WithLevelName sets the level from a name such as "debug" or "WARN".
// Unknown names leave the current level in place.
func WithLevelName(name string) Option {
	return func(s *settings) {
		var l slog.Level
		if name != "" && l.UnmarshalText([]byte(name)) == nil {
			s.level = l
		}
	}
}

// New builds a JSON logger at info level on stdout unless options say otherwise.
func New(opts ...Option) *slog.Logger {
	s := &settings{level: slog.LevelInfo, format: FormatJSON, out: os.Stdout}
	for _, opt := range opts {
		opt(s)
	}

	ho := &slog.HandlerOptions{Level: s.level}
	var h slog.Handler = slog.NewJSONHandler(s.out, ho)
	if s.format == FormatText {
		h = slog.NewTextHandler(s.out, ho)
	}
	if len(s.attrs) > 0 {
		h = h.WithAttrs(s.attrs)
	}
	return slog.New(NewLogHandlerDecorator(h, s.extractors...))
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
