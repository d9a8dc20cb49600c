// Package log builds antenna's slog loggers.
//
// Every logger wraps its text or JSON handler in a SecureHandler, which masks
// webhook URLs (they embed the webhook token), mention identifiers, MongoDB
// credentials and the usual authorization values before they are written.
// This holds in verbose mode too.
//
//	logger := log.Setup(os.Stderr, log.Options{Verbose: true})
//	logger.Info("delivery failed", "error", err) // webhook URL in err is masked
package log
