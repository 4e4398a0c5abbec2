// Package logger provides the process-wide structured logger.
// The TUI owns the terminal, so output normally goes to a file under the
// config home rather than stderr.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the global logger instance.
var Logger *log.Logger

var (
	output  io.Writer = os.Stderr
	logFile *os.File // Open log file, closed on reconfigure
)

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetLevel(log.InfoLevel)
}

// Configure sets the level and destination. An empty path keeps stderr.
// The flag value wins over NYSSA_LOG_LEVEL.
func Configure(logLevel string, path string) error {
	level := logLevel
	if level == "" {
		level = strings.ToLower(os.Getenv("NYSSA_LOG_LEVEL"))
	}

	var (
		out  io.Writer = os.Stderr
		file *os.File
	)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		out, file = f, f
	}

	SetOutput(out)
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	Logger.SetLevel(parseLogLevel(level))
	return nil
}

// SetOutput replaces the global logger, keeping its level.
func SetOutput(w io.Writer) {
	level := Logger.GetLevel()
	output = w
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	Logger.SetLevel(level)
}

func parseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// NewComponentLogger returns a logger sharing the global output and level,
// with the component name as prefix (e.g. "chat", "alert").
func NewComponentLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()
	styles.Keys["state"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Values["state"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	componentLogger := log.NewWithOptions(output, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
	componentLogger.SetStyles(styles)
	componentLogger.SetLevel(Logger.GetLevel())

	return componentLogger
}
