package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrInvalidTarget        = errors.New("binder target must be *binder.Values")

	// ErrBinderNotApplicable is returned when a binder does not handle the
	// request's media type. Callers chaining binders skip to the next one.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)
