// Package logging builds the go-kit logger shared by the server and engine.
package logging

import (
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var levels = map[string]level.Option{
	"debug": level.AllowDebug(),
	"info":  level.AllowInfo(),
	"warn":  level.AllowWarn(),
	"error": level.AllowError(),
	"none":  level.AllowNone(),
}

func ValidLevel(name string) bool {
	_, ok := levels[strings.ToLower(name)]
	return ok
}

// New returns a logfmt logger writing to w that drops records below lvl.
// Unknown levels fall back to info.
func New(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	allow, ok := levels[strings.ToLower(lvl)]
	if !ok {
		allow = level.AllowInfo()
	}
	return level.NewFilter(logger, allow)
}
