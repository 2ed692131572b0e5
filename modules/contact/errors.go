package contact

import (
	"errors"
	"net/http"

	"github.com/ruhtouch/contactapi/handler"
)

var (
	ErrInvalidConfig = errors.New("contact: invalid config")
	ErrRender        = errors.New("contact: failed to render notification")
)

// Client-facing errors. Messages are part of the public API.
var (
	ErrInvalidJSON        = handler.NewHTTPError(http.StatusBadRequest, "Invalid JSON")
	ErrInvalidContentType = handler.NewHTTPError(http.StatusBadRequest, "Invalid content type")
	ErrValidationFailed   = handler.NewHTTPError(http.StatusBadRequest, "Validation failed")
	ErrMailNotConfigured  = handler.NewHTTPError(http.StatusInternalServerError, "Email service is not configured")
	ErrMailUnavailable    = handler.NewHTTPError(http.StatusInternalServerError, "Email service is temporarily unavailable")
	ErrUnexpected         = handler.NewHTTPError(http.StatusInternalServerError, handler.DefaultErrorMessage)
)

// Public response messages. Validation messages are listed in the order
// their rules run.
const (
	MsgSuspectedAbuse  = "Invalid submission detected"
	MsgNameLength      = "Name must be between 2 and 100 characters"
	MsgNameCharacters  = "Name contains invalid characters"
	MsgEmailInvalid    = "Valid email is required"
	MsgEmailTooLong    = "Email is too long"
	MsgPhoneInvalid    = "Invalid phone number format"
	MsgServiceInvalid  = "Invalid service selection"
	MsgMessageLength   = "Message must be between 10 and 2000 characters"
	MsgTooManyRequests = "Too many requests. Please try again later."
	MsgSent            = "Your message has been sent successfully!"
	MsgPreflight       = "OK"
)
