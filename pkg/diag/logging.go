package diag

import (
	"io"
	"log/slog"
	"os"
)

var logLevel = new(slog.LevelVar)

// logOutput is where the configured handler writes. Swappable in tests.
var logOutput io.Writer = os.Stderr

// log is the handler warnings flow through. Defaults to the process-wide
// slog logger until ConfigureLogging is called.
var log *slog.Logger

func logger() *slog.Logger {
	if log != nil {
		return log
	}
	return slog.Default()
}

// ConfigureLogging routes diagnostics through a stderr text handler and sets
// the level from the GIT2_LOG_LEVEL environment variable (DEBUG, WARN or
// ERROR; Info otherwise). Applications that already configure slog themselves
// can skip this; warnings then flow through slog.Default.
func ConfigureLogging() {
	logLevel.Set(slog.LevelInfo)

	switch os.Getenv("GIT2_LOG_LEVEL") {
	case "DEBUG":
		logLevel.Set(slog.LevelDebug)
	case "WARN":
		logLevel.Set(slog.LevelWarn)
	case "ERROR":
		logLevel.Set(slog.LevelError)
	}

	log = slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

// SetLogLevel adjusts the level used by the logger installed by
// ConfigureLogging.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}
