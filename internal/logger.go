// Logging for the sync engine and the commands. Lines carry a level tag;
// lines from the engine also name the worker and, when known, the room,
// e.g. "[DEBUG] poller: room 5f1a: 15 fetched, 2 new, watermark 5f1b".
// While the chat window is open output goes to --log-file or nowhere.

package internal

import (
	"io"
	"log"
	"os"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var (
	logLevel = LogLevelInfo
	logger   = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	logLevel = level
}

// SetLogOutput redirects log output, e.g. to a file while the terminal UI owns the screen
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		SetLogLevel(LogLevelDebug)
	} else {
		SetLogLevel(LogLevelInfo)
	}
}

// WorkerLog logs at level on behalf of a worker of the sync engine.
// roomID may be empty when the line is not about a room.
func WorkerLog(level LogLevel, worker, roomID, format string, args ...interface{}) {
	prefix := worker + ": "
	if roomID != "" {
		prefix += "room " + roomID + ": "
	}
	format = "%s" + format
	args = append([]interface{}{prefix}, args...)

	switch level {
	case LogLevelError:
		logError(format, args...)
	case LogLevelWarn:
		logWarn(format, args...)
	case LogLevelInfo:
		logInfo(format, args...)
	default:
		logDebug(format, args...)
	}
}

func logError(format string, args ...interface{}) {
	if logLevel >= LogLevelError {
		logger.Printf("[ERROR] "+format, args...)
	}
}

func logWarn(format string, args ...interface{}) {
	if logLevel >= LogLevelWarn {
		logger.Printf("[WARN] "+format, args...)
	}
}

func logInfo(format string, args ...interface{}) {
	if logLevel >= LogLevelInfo {
		logger.Printf("[INFO] "+format, args...)
	}
}

func logDebug(format string, args ...interface{}) {
	if logLevel >= LogLevelDebug {
		logger.Printf("[DEBUG] "+format, args...)
	}
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	logError(format, args...)
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	logWarn(format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	logInfo(format, args...)
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	logDebug(format, args...)
}
