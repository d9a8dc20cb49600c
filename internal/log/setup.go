package log

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Options configures the process logger.
type Options struct {
	// Verbose lowers the level to Debug. The default level is Info.
	Verbose bool

	// JSON selects the JSON handler instead of the text handler.
	JSON bool
}

var (
	setupOnce   sync.Once
	setupLogger *slog.Logger
)

// New creates a logger writing to w that masks secrets.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(NewSecureHandler(handler))
}

// Setup installs the process-wide default logger. Only the first call has
// an effect; later calls return the logger installed by the first.
func Setup(w io.Writer, opts Options) *slog.Logger {
	setupOnce.Do(func() {
		setupLogger = New(w, opts)
		slog.SetDefault(setupLogger)
	})
	return setupLogger
}

// RecoverPanic logs a panic and turns it into an error in *errp.
// Use it as the first deferred call of a command:
//
//	defer log.RecoverPanic(logger, &err)
func RecoverPanic(logger *slog.Logger, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("panic recovered", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
	if errp != nil {
		*errp = fmt.Errorf("panic: %v", r)
	}
}
