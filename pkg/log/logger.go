// Structured logging for the delta kinematics tools
//
// Provides a small logging facade over charmbracelet/log with support for:
// - Log levels (DEBUG, INFO, WARN, ERROR)
// - Structured fields (key-value pairs)
// - Multiple output formats (text, JSON, logfmt)
// - Per-component loggers with prefixes
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// DEBUG level for detailed debugging information
	DEBUG LogLevel = iota

	// INFO level for general informational messages
	INFO

	// WARN level for warning messages
	WARN

	// ERROR level for error messages
	ERROR
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a LogLevel
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func (l LogLevel) charm() charmlog.Level {
	switch l {
	case DEBUG:
		return charmlog.DebugLevel
	case WARN:
		return charmlog.WarnLevel
	case ERROR:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

func fromCharm(l charmlog.Level) LogLevel {
	switch {
	case l <= charmlog.DebugLevel:
		return DEBUG
	case l <= charmlog.InfoLevel:
		return INFO
	case l <= charmlog.WarnLevel:
		return WARN
	default:
		return ERROR
	}
}

// OutputFormat specifies the output format for log messages
type OutputFormat int

const (
	// FormatText outputs human-readable text format
	FormatText OutputFormat = iota
	// FormatJSON outputs machine-readable JSON format
	FormatJSON
	// FormatLogfmt outputs key=value pairs
	FormatLogfmt
)

// ParseFormat parses text, json or logfmt. Anything else yields FormatText.
func ParseFormat(s string) OutputFormat {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "logfmt":
		return FormatLogfmt
	default:
		return FormatText
	}
}

func (f OutputFormat) charm() charmlog.Formatter {
	switch f {
	case FormatJSON:
		return charmlog.JSONFormatter
	case FormatLogfmt:
		return charmlog.LogfmtFormatter
	default:
		return charmlog.TextFormatter
	}
}

// Fields is a map of structured logging fields
type Fields map[string]interface{}

// keyvals flattens the fields in key order so output is deterministic.
func (f Fields) keyvals() []interface{} {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]interface{}, 0, 2*len(keys))
	for _, k := range keys {
		kv = append(kv, k, f[k])
	}
	return kv
}

// Logger is the main logging interface
type Logger struct {
	base   *charmlog.Logger
	prefix string
	format OutputFormat
}

// Entry represents a single log entry with fields
type Entry struct {
	logger *Logger
	fields Fields
}

var defaultLogger *Logger

// New creates a new logger with the given prefix
func New(prefix string) *Logger {
	base := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05.000",
		Level:           charmlog.InfoLevel,
		Prefix:          prefix,
		CallerOffset:    1,
	})
	l := &Logger{base: base, prefix: prefix}
	if os.Getenv("NO_COLOR") != "" {
		l.SetColorize(false)
	}
	return l
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.base.SetLevel(level.charm())
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return fromCharm(l.base.GetLevel())
}

// SetWriter sets the output writer (e.g., for testing)
func (l *Logger) SetWriter(w io.Writer) {
	l.base.SetOutput(w)
}

// SetTimeFormat sets the time format string
func (l *Logger) SetTimeFormat(format string) {
	l.base.SetTimeFormat(format)
}

// SetTimestamp enables or disables timestamps
func (l *Logger) SetTimestamp(enable bool) {
	l.base.SetReportTimestamp(enable)
}

// SetColorize forces colored output on or off
func (l *Logger) SetColorize(enable bool) {
	if enable {
		l.base.SetColorProfile(termenv.ANSI256)
		return
	}
	l.base.SetColorProfile(termenv.Ascii)
}

// SetFormat sets the output format
func (l *Logger) SetFormat(format OutputFormat) {
	l.format = format
	l.base.SetFormatter(format.charm())
}

// Format returns the current output format
func (l *Logger) Format() OutputFormat {
	return l.format
}

// SetCaller enables or disables caller info in log output
func (l *Logger) SetCaller(enable bool) {
	l.base.SetReportCaller(enable)
}

// Prefix returns the component prefix
func (l *Logger) Prefix() string {
	return l.prefix
}

// WithField returns an Entry with the given field
func (l *Logger) WithField(key string, value interface{}) *Entry {
	return &Entry{
		logger: l,
		fields: Fields{key: value},
	}
}

// WithFields returns an Entry with the given fields
func (l *Logger) WithFields(fields Fields) *Entry {
	return &Entry{
		logger: l,
		fields: fields,
	}
}

// WithError returns an Entry with the error field set
func (l *Logger) WithError(err error) *Entry {
	return l.WithField("error", err.Error())
}

// Debug logs a message at DEBUG level
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.base.Debug(sprintf(msg, args))
}

// Info logs a message at INFO level
func (l *Logger) Info(msg string, args ...interface{}) {
	l.base.Info(sprintf(msg, args))
}

// Warn logs a message at WARN level
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.base.Warn(sprintf(msg, args))
}

// Error logs a message at ERROR level
func (l *Logger) Error(msg string, args ...interface{}) {
	l.base.Error(sprintf(msg, args))
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(msg string, args ...interface{}) {
	l.base.Error(sprintf(msg, args))
}

func sprintf(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// WithPrefix returns a new logger with a modified prefix
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		base:   l.base.WithPrefix(prefix),
		prefix: prefix,
		format: l.format,
	}
}

// With returns a new logger that attaches fields to every message
func (l *Logger) With(fields Fields) *Logger {
	return &Logger{
		base:   l.base.With(fields.keyvals()...),
		prefix: l.prefix,
		format: l.format,
	}
}

// Entry methods - log with fields

// WithField adds a field to the entry
func (e *Entry) WithField(key string, value interface{}) *Entry {
	newFields := make(Fields, len(e.fields)+1)
	for k, v := range e.fields {
		newFields[k] = v
	}
	newFields[key] = value
	return &Entry{
		logger: e.logger,
		fields: newFields,
	}
}

// WithFields adds multiple fields to the entry
func (e *Entry) WithFields(fields Fields) *Entry {
	newFields := make(Fields, len(e.fields)+len(fields))
	for k, v := range e.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &Entry{
		logger: e.logger,
		fields: newFields,
	}
}

// WithError adds an error field to the entry
func (e *Entry) WithError(err error) *Entry {
	return e.WithField("error", err.Error())
}

// Debug logs at DEBUG level with fields
func (e *Entry) Debug(msg string) {
	e.logger.base.Debug(msg, e.fields.keyvals()...)
}

// Info logs at INFO level with fields
func (e *Entry) Info(msg string) {
	e.logger.base.Info(msg, e.fields.keyvals()...)
}

// Warn logs at WARN level with fields
func (e *Entry) Warn(msg string) {
	e.logger.base.Warn(msg, e.fields.keyvals()...)
}

// Error logs at ERROR level with fields
func (e *Entry) Error(msg string) {
	e.logger.base.Error(msg, e.fields.keyvals()...)
}

// Debugf logs formatted message at DEBUG level with fields
func (e *Entry) Debugf(format string, args ...interface{}) {
	e.logger.base.Debug(fmt.Sprintf(format, args...), e.fields.keyvals()...)
}

// Infof logs formatted message at INFO level with fields
func (e *Entry) Infof(format string, args ...interface{}) {
	e.logger.base.Info(fmt.Sprintf(format, args...), e.fields.keyvals()...)
}

// Warnf logs formatted message at WARN level with fields
func (e *Entry) Warnf(format string, args ...interface{}) {
	e.logger.base.Warn(fmt.Sprintf(format, args...), e.fields.keyvals()...)
}

// Errorf logs formatted message at ERROR level with fields
func (e *Entry) Errorf(format string, args ...interface{}) {
	e.logger.base.Error(fmt.Sprintf(format, args...), e.fields.keyvals()...)
}

// Context plumbing, so commands can hand a configured logger down the call
// chain without globals.

type ctxKey struct{}

// NewContext returns a copy of ctx carrying l.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok && l != nil {
		return l
	}
	return GetLogger("")
}

// Package-level functions using default logger

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetLogger returns the default logger or creates one if needed.
// An empty prefix returns the default logger itself.
func GetLogger(prefix string) *Logger {
	if defaultLogger == nil {
		defaultLogger = New("deltakin")
	}
	if prefix == "" {
		return defaultLogger
	}
	return defaultLogger.WithPrefix(prefix)
}

// Debug logs at DEBUG level using default logger
func Debug(msg string, args ...interface{}) {
	GetLogger("").Debug(msg, args...)
}

// Info logs at INFO level using default logger
func Info(msg string, args ...interface{}) {
	GetLogger("").Info(msg, args...)
}

// Warn logs at WARN level using default logger
func Warn(msg string, args ...interface{}) {
	GetLogger("").Warn(msg, args...)
}

// Error logs at ERROR level using default logger
func Error(msg string, args ...interface{}) {
	GetLogger("").Error(msg, args...)
}

// Initialize logging system from environment
func init() {
	defaultLogger = New("deltakin")
	ConfigureFromEnv(defaultLogger)
}

// ConfigureFromEnv applies environment-based configuration to the logger.
// Environment variables:
//   - DELTAKIN_LOG_LEVEL: DEBUG, INFO, WARN, ERROR
//   - DELTAKIN_LOG_FORMAT: text, json, logfmt
//   - DELTAKIN_LOG_CALLER: any non-empty value enables caller info
//   - NO_COLOR: any non-empty value disables colors
func ConfigureFromEnv(l *Logger) {
	if levelStr := os.Getenv("DELTAKIN_LOG_LEVEL"); levelStr != "" {
		l.SetLevel(ParseLevel(levelStr))
	}
	if formatStr := os.Getenv("DELTAKIN_LOG_FORMAT"); formatStr != "" {
		l.SetFormat(ParseFormat(formatStr))
	}
	if os.Getenv("DELTAKIN_LOG_CALLER") != "" {
		l.SetCaller(true)
	}
	if os.Getenv("NO_COLOR") != "" {
		l.SetColorize(false)
	}
}
