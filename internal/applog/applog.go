// Package applog is the small leveled logger used by the background pieces
// (notification scheduler, calendar sync). Output goes to stderr so it never
// mixes with the rendered views on stdout.
package applog

import (
	"fmt"
	stdlog "log"
	"os"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

var (
	mu       sync.Mutex
	logger   = stdlog.New(os.Stderr, "", stdlog.LstdFlags)
	minLevel = LevelInfo
)

// SetLevel adjusts the minimum level that gets written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// Debug logs a development-time message with key=value pairs.
func Debug(msg string, kv ...any) {
	write(LevelDebug, "DEBUG", msg, kv)
}

// Info logs an operational message with key=value pairs.
func Info(msg string, kv ...any) {
	write(LevelInfo, "INFO", msg, kv)
}

// Error logs a failure; the error is prepended to the key-value pairs.
func Error(msg string, err error, kv ...any) {
	write(LevelError, "ERROR", msg, append([]any{"err", err}, kv...))
}

func write(level Level, label, msg string, kv []any) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}
	line := "[" + label + "] " + msg
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		line += " " + key + "=" + fmt.Sprint(kv[i+1])
	}
	logger.Println(line)
}
