// Package logger builds *slog.Logger instances for the contact service.
//
// New applies functional options over production defaults (JSON, info level,
// stdout). WithEnvironment switches to text output at debug level for
// development. Context extractors registered with WithContextExtractors add
// request-scoped attributes, such as the request ID, to every record:
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Parse(cfg.Env), "contact-api"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "submission accepted", logger.ClientIP(ip))
//
// The attribute helpers keep key names consistent across packages.
package logger
