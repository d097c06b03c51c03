package utils

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// LogLevel represents different log levels
type LogLevel string

const (
	INFO  LogLevel = "INFO"
	WARN  LogLevel = "WARN"
	ERROR LogLevel = "ERROR"
	DEBUG LogLevel = "DEBUG"
)

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp time.Time   `json:"timestamp"`
	Level     LogLevel    `json:"level"`
	Component string      `json:"component,omitempty"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Logger provides structured JSON logging. Diagnostic payloads (model
// response lengths, snippets) belong here and never in API responses.
type Logger struct {
	logger    *log.Logger
	component string
}

// NewLogger creates a logger tagged with a component name.
func NewLogger(component string) *Logger {
	return &Logger{
		logger:    log.New(os.Stdout, "", 0),
		component: component,
	}
}

func (l *Logger) Info(message string, data ...interface{}) {
	l.log(INFO, message, nil, data...)
}

func (l *Logger) Warn(message string, data ...interface{}) {
	l.log(WARN, message, nil, data...)
}

func (l *Logger) Error(message string, err error, data ...interface{}) {
	l.log(ERROR, message, err, data...)
}

func (l *Logger) Debug(message string, data ...interface{}) {
	l.log(DEBUG, message, nil, data...)
}

func (l *Logger) log(level LogLevel, message string, err error, data ...interface{}) {
	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Component: l.component,
		Message:   message,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if len(data) > 0 {
		entry.Data = data[0]
	}

	jsonBytes, merr := json.Marshal(entry)
	if merr != nil {
		log.Printf("error marshaling log entry: %v", merr)
		return
	}
	l.logger.Println(string(jsonBytes))
}
