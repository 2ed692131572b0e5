// Package binder decodes HTTP request bodies into a flat set of named string
// values.
//
// Form submissions arrive either as a JSON object or as a classic HTML form
// post. Both are reduced to Values so that validation runs on one shape
// regardless of the encoding:
//
//	b := binder.Negotiate(binder.JSON(), binder.Form())
//	var v binder.Values
//	if err := b(r, &v); err != nil {
//	    // errors.Is(err, binder.ErrUnsupportedMediaType), binder.ErrFailedToParseJSON, ...
//	}
//	name := v.Get("name")
//
// Each binder checks the request media type first and returns
// ErrBinderNotApplicable when the request is not its concern. Negotiate
// tries binders in order and reports ErrUnsupportedMediaType when none of
// them applies.
//
// Bodies are read through a size limit (DefaultMaxJSONSize for JSON,
// DefaultMaxMemory for multipart). Uploaded files are ignored.
package binder
