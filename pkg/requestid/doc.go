// Package requestid attaches a correlation identifier to every request.
//
// Middleware reuses a well-formed X-Request-ID header from the client or
// generates a UUIDv4, stores it in the request context and echoes it in the
// response. LoggerExtractor feeds the ID into structured logs.
package requestid
