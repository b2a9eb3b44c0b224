// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"os"
	"sync/atomic"
)

var defaultLogger atomic.Pointer[LoggerImpl]

func init() {
	defaultLogger.Store(NewConsoleLogger(INFO, true))
}

// GetLogger returns the default logger
func GetLogger() *LoggerImpl {
	return defaultLogger.Load()
}

// SetLogger replaces the default logger
func SetLogger(l *LoggerImpl) {
	defaultLogger.Store(l)
}

// SetConsoleLogger replaces the default logger by a console logger with the given level
func SetConsoleLogger(level Level, colorize bool) {
	SetLogger(NewConsoleLogger(level, colorize))
}

// GetLevel returns the level of the default logger
func GetLevel() Level {
	return GetLogger().GetLevel()
}

// IsTrace returns true if the default logger writes trace events
func IsTrace() bool {
	return GetLogger().LevelEnabled(TRACE)
}

// IsDebug returns true if the default logger writes debug events
func IsDebug() bool {
	return GetLogger().LevelEnabled(DEBUG)
}

// Trace records trace log
func Trace(format string, v ...any) {
	GetLogger().Log(1, TRACE, format, v...)
}

// Debug records debug log
func Debug(format string, v ...any) {
	GetLogger().Log(1, DEBUG, format, v...)
}

// Info records info log
func Info(format string, v ...any) {
	GetLogger().Log(1, INFO, format, v...)
}

// Warn records warning log
func Warn(format string, v ...any) {
	GetLogger().Log(1, WARN, format, v...)
}

// Error records error log
func Error(format string, v ...any) {
	GetLogger().Log(1, ERROR, format, v...)
}

// Fatal records fatal log and exit process
func Fatal(format string, v ...any) {
	GetLogger().Log(1, FATAL, format, v...)
	os.Exit(1)
}

// Log writes an event with the given level, skip is the number of extra stack frames to skip for the caller info
func Log(skip int, level Level, format string, v ...any) {
	GetLogger().Log(skip+1, level, format, v...)
}

// Stack will skip back the provided number of frames and return a stacktrace with source code
func Stack(skip int) string {
	return fmt.Sprintf("%+v", callers(skip+1))
}
