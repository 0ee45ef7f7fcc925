// pkg/logging/logging.go - leveled key/value logging for vendorwatch.

package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/robotadmins/vendorwatch/pkg/config"
)

// LogLevel represents the severity of the log message.
type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// String returns the string representation of the LogLevel.
func (ll LogLevel) String() string {
	switch ll {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a configured level name to a LogLevel, defaulting to
// INFO for anything unrecognized.
func ParseLevel(name string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "DEBUG":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger writes leveled messages with trailing key/value pairs to the
// console and, when configured, a log file.
type Logger struct {
	mu    sync.Mutex
	out   *log.Logger
	level LogLevel
	file  *os.File
}

// singleton instance and sync.Once for thread-safe initialization
var (
	instance *Logger
	once     sync.Once
)

// Init initializes the singleton Logger based on the provided
// configuration. It must be called before any logging functions are used;
// calls on an uninitialized package are dropped rather than panicking.
func Init(cfg *config.Configuration) error {
	var initErr error
	once.Do(func() {
		instance, initErr = newLogger(cfg)
	})
	return initErr
}

func newLogger(cfg *config.Configuration) (*Logger, error) {
	level := ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = LevelDebug
	}

	writers := []io.Writer{os.Stderr}
	var file *os.File
	if cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		file = f
		writers = append(writers, f)
	}

	return &Logger{
		out:   log.New(io.MultiWriter(writers...), "", log.LstdFlags),
		level: level,
		file:  file,
	}, nil
}

// Close releases the log file, if any.
func Close() {
	if instance != nil && instance.file != nil {
		_ = instance.file.Close()
	}
}

func (l *Logger) logf(level LogLevel, message string, keyvals ...interface{}) {
	if l == nil || level > l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("%-5s %s%s", level.String(), message, formatKeyvals(keyvals))
}

// formatKeyvals renders trailing key/value pairs as " key=value". A
// dangling key is rendered with a bare "=".
func formatKeyvals(keyvals []interface{}) string {
	if len(keyvals) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=", keyvals[i])
		if i+1 < len(keyvals) {
			fmt.Fprintf(&b, "%v", keyvals[i+1])
		}
	}
	return b.String()
}

// Error logs a message at ERROR level.
func Error(message string, keyvals ...interface{}) {
	instance.logf(LevelError, message, keyvals...)
}

// Warn logs a message at WARN level.
func Warn(message string, keyvals ...interface{}) {
	instance.logf(LevelWarn, message, keyvals...)
}

// Info logs a message at INFO level.
func Info(message string, keyvals ...interface{}) {
	instance.logf(LevelInfo, message, keyvals...)
}

// Debug logs a message at DEBUG level.
func Debug(message string, keyvals ...interface{}) {
	instance.logf(LevelDebug, message, keyvals...)
}
