// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Event represents a logging event
type Event struct {
	Time     time.Time
	Level    Level
	Filename string
	Line     int
	Msg      string
}

// LoggerImpl writes formatted events to a single writer
type LoggerImpl struct {
	mu       sync.Mutex
	out      io.Writer
	level    Level
	flags    int
	prefix   string
	colorize bool
}

var _ Logger = (*LoggerImpl)(nil)

// NewLogger creates a logger writing to out, events below level are discarded
func NewLogger(out io.Writer, level Level, flags int, colorize bool) *LoggerImpl {
	return &LoggerImpl{out: out, level: level, flags: flags, colorize: colorize}
}

// NewConsoleLogger creates a logger writing to stderr, colorized when the terminal supports it
func NewConsoleLogger(level Level, colorize bool) *LoggerImpl {
	return NewLogger(os.Stderr, level, LstdFlags, colorize && CanColorStderr)
}

// SetPrefix sets the text written at the beginning of every line
func (l *LoggerImpl) SetPrefix(prefix string) {
	l.mu.Lock()
	l.prefix = prefix
	l.mu.Unlock()
}

// SetLevel changes the minimal level of the events to write
func (l *LoggerImpl) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// GetLevel returns the minimal level of the events to write
func (l *LoggerImpl) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// LevelEnabled checks if the level is enabled
func (l *LoggerImpl) LevelEnabled(level Level) bool {
	return level >= l.GetLevel() && level != NONE
}

// Log prepares the log event, if the level matches, the event will be written
func (l *LoggerImpl) Log(skip int, level Level, format string, logArgs ...any) {
	if !l.LevelEnabled(level) {
		return
	}

	event := &Event{Time: time.Now(), Level: level}
	if _, filename, line, ok := runtime.Caller(skip + 1); ok {
		event.Filename, event.Line = filename, line
	}

	for i, v := range logArgs {
		if s, ok := v.(LogStringer); ok {
			logArgs[i] = s.LogString()
		}
	}
	if len(logArgs) == 0 {
		event.Msg = format
	} else {
		event.Msg = fmt.Sprintf(format, logArgs...)
	}
	l.writeEvent(event)
}

func (l *LoggerImpl) writeEvent(event *Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	buf := make([]byte, 0, 128+len(event.Msg))
	buf = append(buf, l.prefix...)
	t := event.Time
	if l.flags&LUTC != 0 {
		t = t.UTC()
	}
	if l.flags&Ldate != 0 {
		buf = t.AppendFormat(buf, "2006/01/02 ")
	}
	if l.flags&(Ltime|Lmicroseconds) != 0 {
		if l.flags&Lmicroseconds != 0 {
			buf = t.AppendFormat(buf, "15:04:05.000000 ")
		} else {
			buf = t.AppendFormat(buf, "15:04:05 ")
		}
	}
	if l.flags&(Lshortfile|Llongfile) != 0 && event.Filename != "" {
		file := event.Filename
		if l.flags&Lmedfile == Lmedfile {
			if startIndex := len(file) - 20; startIndex > 0 {
				file = "..." + file[startIndex:]
			}
		} else if l.flags&Lshortfile != 0 {
			if startIndex := strings.LastIndexByte(file, '/'); startIndex >= 0 {
				file = file[startIndex+1:]
			}
		}
		buf = append(buf, file...)
		buf = append(buf, ':')
		buf = append(buf, fmt.Sprint(event.Line)...)
		buf = append(buf, ' ')
	}
	if l.flags&(Llevel|Llevelinitial) != 0 {
		level := strings.ToUpper(event.Level.String())
		if l.colorize {
			buf = append(buf, ColorBytes(event.Level.ColorAttributes()...)...)
		}
		buf = append(buf, '[')
		if l.flags&Llevel != 0 {
			buf = append(buf, level...)
		} else {
			buf = append(buf, level[0])
		}
		buf = append(buf, ']')
		if l.colorize {
			buf = append(buf, resetBytes...)
		}
		buf = append(buf, ' ')
	}
	buf = append(buf, event.Msg...)
	if len(event.Msg) == 0 || event.Msg[len(event.Msg)-1] != '\n' {
		buf = append(buf, '\n')
	}
	_, _ = l.out.Write(buf)
}

// Trace logs a message with trace level
func (l *LoggerImpl) Trace(format string, v ...any) {
	l.Log(1, TRACE, format, v...)
}

// Debug logs a message with debug level
func (l *LoggerImpl) Debug(format string, v ...any) {
	l.Log(1, DEBUG, format, v...)
}

// Info logs a message with info level
func (l *LoggerImpl) Info(format string, v ...any) {
	l.Log(1, INFO, format, v...)
}

// Warn logs a message with warning level
func (l *LoggerImpl) Warn(format string, v ...any) {
	l.Log(1, WARN, format, v...)
}

// Error logs a message with error level
func (l *LoggerImpl) Error(format string, v ...any) {
	l.Log(1, ERROR, format, v...)
}
