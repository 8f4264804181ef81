package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel is used to determine which log severities should actually log
type LogLevel int

// LogFormat is used to set the how the log messages should be displayed
type LogFormat int

const (
	// NOTSET will log everything
	NOTSET LogLevel = 0
	// DEBUG will enable these logs and higher
	DEBUG LogLevel = 10
	// INFO will enable these logs and higher
	INFO LogLevel = 20
	// WARNING will enable these logs and higher
	WARNING LogLevel = 30
	// ERROR will enable these logs and higher
	ERROR LogLevel = 40
	// CRITICAL will enable these logs and higher
	CRITICAL LogLevel = 50
)

const (
	// JSON displays the logs as JSON dicts
	JSON LogFormat = 0
	// HUMAN displays the logs in a way that's nice for humans to read
	HUMAN LogFormat = 1
)

// String renders a LogLevel as its string value
func (l LogLevel) String() string {
	switch l {
	case NOTSET:
		return "NOTSET"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "INVALID"
	}
}

func (l LogLevel) zerologLevel() zerolog.Level {
	switch l {
	case NOTSET, DEBUG:
		return zerolog.DebugLevel
	case INFO:
		return zerolog.InfoLevel
	case WARNING:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.FatalLevel
	}
}

var currentLogLevel = INFO
var currentLogFormat = HUMAN
var output io.Writer = os.Stderr
var log zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.LevelFieldName = "severity"
	rebuild()
}

// rebuild swaps the underlying zerolog logger after a format or output change
func rebuild() {
	var w io.Writer = output

	if currentLogFormat == HUMAN {
		w = zerolog.ConsoleWriter{
			Out:        output,
			NoColor:    true,
			PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
			FormatLevel: func(i any) string {
				return fmt.Sprintf("[%s]", severityName(fmt.Sprint(i)))
			},
		}
	}

	log = zerolog.New(w).Level(currentLogLevel.zerologLevel()).With().Timestamp().Logger()
}

// severityName maps zerolog's level names onto the leaktk severity names
func severityName(level string) string {
	switch level {
	case zerolog.WarnLevel.String():
		return "WARNING"
	case zerolog.FatalLevel.String():
		return "CRITICAL"
	default:
		return strings.ToUpper(level)
	}
}

// SetOutput redirects the logs (defaults to stderr)
func SetOutput(w io.Writer) {
	output = w
	rebuild()
}

// SetLoggerFormat adjusts how log entries are rendered
func SetLoggerFormat(logFormat LogFormat) error {
	switch logFormat {
	case JSON, HUMAN:
		currentLogFormat = logFormat
	default:
		return fmt.Errorf("invalid log format: log_format=%v", logFormat)
	}

	rebuild()
	return nil
}

// ParseLoggerFormat takes the string name of a format and returns its LogFormat
func ParseLoggerFormat(formatName string) (LogFormat, error) {
	switch strings.ToUpper(formatName) {
	case "JSON":
		return JSON, nil
	case "HUMAN":
		return HUMAN, nil
	default:
		return HUMAN, fmt.Errorf("invalid log format: log_format=%q", formatName)
	}
}

// SetLoggerLevel takes the string version of the name and sets the current level
func SetLoggerLevel(levelName string) error {
	switch strings.ToUpper(levelName) {
	case "DEBUG":
		currentLogLevel = DEBUG
	case "INFO":
		currentLogLevel = INFO
	case "WARNING":
		currentLogLevel = WARNING
	case "ERROR":
		currentLogLevel = ERROR
	case "CRITICAL":
		currentLogLevel = CRITICAL
	default:
		return fmt.Errorf("invalid log level: level=%q", levelName)
	}

	rebuild()
	return nil
}

// GetLoggerLevel returns the current logger level
func GetLoggerLevel() LogLevel {
	return currentLogLevel
}

// Debug emits an DEBUG level log
func Debug(msg string, a ...any) {
	log.Debug().Msgf(msg, a...)
}

// Info emits an INFO level log
func Info(msg string, a ...any) {
	log.Info().Msgf(msg, a...)
}

// Warning emits an WARNING level log
func Warning(msg string, a ...any) {
	log.Warn().Msgf(msg, a...)
}

// Error emits an ERROR level log
func Error(msg string, a ...any) {
	log.Error().Msg(fmt.Errorf(msg, a...).Error())
}

// Critical emits a CRITICAL level log without stopping the program
func Critical(msg string, a ...any) {
	log.WithLevel(zerolog.FatalLevel).Msg(fmt.Errorf(msg, a...).Error())
}
