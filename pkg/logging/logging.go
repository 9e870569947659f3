package logging

import "unsafe"

// DebugLogger is the minimum a component needs to report what it skipped.
type DebugLogger interface {
	Debug(args ...interface{})
}

// InfoLogger logs lifecycle messages.
type InfoLogger interface {
	Info(args ...interface{})
}

// ErrorLogger logs failures that are not returned to a caller.
type ErrorLogger interface {
	Error(args ...interface{})
}

// Logger is satisfied by *zap.SugaredLogger.
type Logger interface {
	DebugLogger
	InfoLogger
	ErrorLogger
}

func Debug(log DebugLogger, args ...interface{}) {
	if !isNilValue(log) {
		log.Debug(args...)
	}
}

func Info(log InfoLogger, args ...interface{}) {
	if !isNilValue(log) {
		log.Info(args...)
	}
}

func Error(log ErrorLogger, args ...interface{}) {
	if !isNilValue(log) {
		log.Error(args...)
	}
}

func isNilValue(i interface{}) bool {
	return (*[2]uintptr)(unsafe.Pointer(&i))[1] == 0
}
