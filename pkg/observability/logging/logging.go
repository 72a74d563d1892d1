/*
 * Copyright 2025 The Halgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logging provides the leveled, structured logger used by the gateway
package logging

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/halgateway/halgate/pkg/observability/logging/level"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	_ Logger    = &logger{}
	_ io.Writer = &logger{}
)

// Logger is the leveled event logger. Events are a short fixed string; the
// variable request details ride in the Pairs map.
type Logger interface {
	SetLogLevel(level.Level)
	Level() level.Level
	Close()
	Log(logLevel level.Level, event string, detail Pairs)
	Debug(event string, detail Pairs)
	Info(event string, detail Pairs)
	Warn(event string, detail Pairs)
	Error(event string, detail Pairs)
	Fatal(code int, event string, detail Pairs)
}

// Pairs represents the key=value pairs that describe a log event
type Pairs map[string]any

// FileLogger returns a Logger that writes to logFile with rotation
func FileLogger(logFile string, logLevel level.Level) Logger {
	l := &logger{
		writer: &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    256, // megabytes
			MaxBackups: 80,
			MaxAge:     7, // days
			Compress:   true,
		},
		now: time.Now,
	}
	if c, ok := l.writer.(io.Closer); ok {
		l.closer = c
	}
	l.SetLogLevel(logLevel)
	return l
}

// ConsoleLogger returns a Logger that writes to standard output
func ConsoleLogger(logLevel level.Level) Logger {
	l := &logger{
		writer: os.Stdout,
		now:    time.Now,
	}
	l.SetLogLevel(logLevel)
	return l
}

// StreamLogger returns a Logger that writes to the provided writer
func StreamLogger(w io.Writer, logLevel level.Level) Logger {
	l := &logger{
		writer: w,
		now:    time.Now,
	}
	l.SetLogLevel(logLevel)
	return l
}

// NoopLogger returns a Logger that discards all events
func NoopLogger() Logger {
	return &logger{
		levelID: level.InfoID,
		level:   level.Info,
		now:     time.Now,
	}
}

type logger struct {
	level   level.Level
	levelID level.ID
	writer  io.Writer
	closer  io.Closer
	mtx     sync.Mutex
	now     func() time.Time
}

func (l *logger) Write(b []byte) (int, error) {
	if l.writer == nil {
		return 0, nil
	}
	return l.writer.Write(b)
}

func (l *logger) SetLogLevel(logLevel level.Level) {
	id := level.GetID(logLevel)
	if id == 0 {
		logLevel = level.Info
		id = level.InfoID
	}
	l.level = logLevel
	l.levelID = id
}

func (l *logger) Level() level.Level {
	return l.level
}

func (l *logger) Log(logLevel level.Level, event string, detail Pairs) {
	lid := level.GetID(logLevel)
	if lid == 0 || lid < l.levelID {
		return
	}
	l.log(logLevel, event, detail)
}

func (l *logger) Debug(event string, detail Pairs) {
	l.logConditionally(level.Debug, level.DebugID, event, detail)
}

func (l *logger) Info(event string, detail Pairs) {
	l.logConditionally(level.Info, level.InfoID, event, detail)
}

func (l *logger) Warn(event string, detail Pairs) {
	l.logConditionally(level.Warn, level.WarnID, event, detail)
}

func (l *logger) Error(event string, detail Pairs) {
	l.logConditionally(level.Error, level.ErrorID, event, detail)
}

func (l *logger) Fatal(code int, event string, detail Pairs) {
	l.log(level.Fatal, event, detail)
	if code < 0 {
		// tests send a negative code to avoid exiting the test binary
		return
	}
	if code == 0 {
		code = 1
	}
	os.Exit(code)
}

func (l *logger) logConditionally(logLevel level.Level, levelID level.ID,
	event string, detail Pairs) {
	if l.levelID > levelID {
		return
	}
	l.log(logLevel, event, detail)
}

const (
	space = " "
	equal = "="
)

func (l *logger) log(logLevel level.Level, event string, detail Pairs) {
	if l.writer == nil {
		return
	}
	ts := l.now()
	event = strings.TrimSpace(event)

	line := "time=" + ts.UTC().Format(time.RFC3339Nano) + space +
		"app=halgate" + space +
		"level=" + string(logLevel) + space +
		"event=" + quoteAsNeeded(event)

	if len(detail) > 0 {
		keys := make([]string, 0, len(detail))
		for k := range detail {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			line += space + k + equal + quoteAsNeeded(stringValue(detail[k]))
		}
	}
	line += "\n"

	l.mtx.Lock()
	l.writer.Write([]byte(line))
	l.mtx.Unlock()
}

func (l *logger) Close() {
	if l.closer != nil {
		l.closer.Close()
	}
}
