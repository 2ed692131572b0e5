// Package handler provides type-safe HTTP request handling.
//
// A HandlerFunc receives a Context and a request value already decoded by the
// configured binders, and returns a Response that renders itself:
//
//	h := handler.HandlerFunc[handler.Context, binder.Values](
//		func(ctx handler.Context, req binder.Values) handler.Response {
//			if req.Get("name") == "" {
//				return handler.Error(handler.NewHTTPError(http.StatusBadRequest, "Name is required"))
//			}
//			return handler.JSON(map[string]any{"ok": true})
//		},
//	)
//
//	r.Post("/submit", handler.Wrap(h,
//		handler.WithBinders[handler.Context, binder.Values](binder.Negotiate(binder.JSON(), binder.Form())),
//		handler.WithErrorHandler[handler.Context, binder.Values](handler.NewErrorHandler(log)),
//	))
//
// Errors from binders, from Error responses and from failed renders all go to
// one ErrorHandler. NewErrorHandler writes a JSON body of the form
// {"error": "...", "details": [...]} using the status and public message of
// an HTTPError, and a generic 500 otherwise, so internal error text never
// reaches the client. Panics inside a handler are recovered and reported
// the same way.
package handler
