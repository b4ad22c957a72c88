// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// EnvLevel names the variable holding the startup log level.
const EnvLevel = "MODCLI_LOG"

// InitLogger sets up Apex with a custom handler and a log level from the
// MODCLI_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv(EnvLevel))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{})
	log.SetLevel(ParseLevel(level))
}

// ParseLevel is log.ParseLevel falling back to ErrorLevel.
func ParseLevel(s string) log.Level {
	l, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.ErrorLevel
	}
	return l
}

// CurrentLevel reports the level of the package logger.
func CurrentLevel() log.Level {
	if l, ok := log.Log.(*log.Logger); ok {
		return l.Level
	}
	return log.ErrorLevel
}

// LevelForVerbosity maps a -v count onto a level. Zero keeps current.
func LevelForVerbosity(current log.Level, count int) log.Level {
	switch {
	case count <= 0:
		return current
	case count == 1:
		return min(current, log.InfoLevel)
	default:
		return log.DebugLevel
	}
}

// CustomHandler formats log messages and writes to W, or stderr when W is nil.
type CustomHandler struct {
	W io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.W
	if w == nil {
		w = os.Stderr
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())
	message := e.Message
	if len(e.Fields) > 0 {
		names := e.Fields.Names()
		pairs := make([]string, 0, len(names))
		for _, n := range names {
			pairs = append(pairs, fmt.Sprintf("%s=%v", n, e.Fields.Get(n)))
		}
		message += " " + strings.Join(pairs, " ")
	}
	_, err := fmt.Fprintf(w, "%s %.1s %s\n", timestamp, level, message)
	return err
}
