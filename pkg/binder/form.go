package binder

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// FormOption configures the form binder.
type FormOption func(*formConfig)

type formConfig struct {
	maxMemory int64
}

// WithMaxMemory overrides DefaultMaxMemory.
func WithMaxMemory(n int64) FormOption {
	return func(c *formConfig) {
		if n > 0 {
			c.maxMemory = n
		}
	}
}

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies. Only the first value of each field is kept.
func Form(opts ...FormOption) Binder {
	cfg := formConfig{maxMemory: DefaultMaxMemory}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		mt, params := mediaType(r)

		var values map[string][]string
		switch mt {
		case "application/x-www-form-urlencoded":
			dst, err := target(v)
			if err != nil {
				return err
			}
			r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxMemory)
			if err := r.ParseForm(); err != nil {
				return formError(err)
			}
			values = r.PostForm
			copyFirst(*dst, values)
			return nil

		case "multipart/form-data":
			dst, err := target(v)
			if err != nil {
				return err
			}
			if !validBoundary(params["boundary"]) {
				return fmt.Errorf("%w: invalid boundary parameter", ErrFailedToParseForm)
			}
			r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxMemory)
			if err := r.ParseMultipartForm(cfg.maxMemory); err != nil {
				return formError(err)
			}
			if r.MultipartForm != nil {
				values = r.MultipartForm.Value
				_ = r.MultipartForm.RemoveAll()
			}
			copyFirst(*dst, values)
			return nil
		}

		return ErrBinderNotApplicable
	}
}

func copyFirst(dst Values, src map[string][]string) {
	for k, vals := range src {
		if len(vals) > 0 {
			dst[k] = vals[0]
		}
	}
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
}

// validBoundary checks RFC 2046: 1-70 characters from a restricted set,
// not ending in a space.
func validBoundary(b string) bool {
	if b == "" || len(b) > 70 || strings.HasSuffix(b, " ") {
		return false
	}
	for _, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}
