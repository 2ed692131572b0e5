package binder

import (
	"errors"
	"mime"
	"net/http"
	"strings"
)

// Values holds the first submitted value of every field.
type Values map[string]string

// Get returns the value for key or "".
func (v Values) Get(key string) string {
	if v == nil {
		return ""
	}
	return v[key]
}

// Has reports whether key was submitted, even if empty.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Binder decodes r into v. v must be a *Values.
type Binder func(r *http.Request, v any) error

// Negotiate returns a binder that delegates to the first applicable binder.
func Negotiate(binders ...Binder) Binder {
	return func(r *http.Request, v any) error {
		if r.Header.Get("Content-Type") == "" {
			return ErrMissingContentType
		}
		for _, b := range binders {
			err := b(r, v)
			if errors.Is(err, ErrBinderNotApplicable) {
				continue
			}
			return err
		}
		return ErrUnsupportedMediaType
	}
}

func target(v any) (*Values, error) {
	dst, ok := v.(*Values)
	if !ok || dst == nil {
		return nil, ErrInvalidTarget
	}
	if *dst == nil {
		*dst = make(Values)
	}
	return dst, nil
}

// mediaType returns the lowercased media type without parameters.
func mediaType(r *http.Request) (string, map[string]string) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "", nil
	}
	mt, params, err := mime.ParseMediaType(ct)
	if err != nil {
		if i := strings.Index(ct, ";"); i >= 0 {
			ct = ct[:i]
		}
		return strings.ToLower(strings.TrimSpace(ct)), nil
	}
	return mt, params
}
