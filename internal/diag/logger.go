// Package diag is the diagnostic channel: structured log lines for
// operators, never shown to end users.
package diag

import (
	"fmt"
	"io"

	"github.com/labstack/gommon/log"
)

// Logger records diagnostic events. args are alternating key/value pairs;
// an error value may also be passed on its own and is logged under "error".
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// GommonLogger writes JSON lines through labstack/gommon.
type GommonLogger struct {
	l *log.Logger
}

var _ Logger = (*GommonLogger)(nil)

// New returns a logger writing to w. debug lowers the level to DEBUG.
func New(w io.Writer, prefix string, debug bool) *GommonLogger {
	l := log.New(prefix)
	l.SetOutput(w)
	l.SetHeader(`{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}"}`)
	if debug {
		l.SetLevel(log.DEBUG)
	} else {
		l.SetLevel(log.INFO)
	}
	return &GommonLogger{l: l}
}

// Gommon exposes the underlying logger, e.g. to share it with echo.
func (g *GommonLogger) Gommon() *log.Logger { return g.l }

func (g *GommonLogger) Debug(msg string, args ...interface{}) { g.l.Debugj(fields(msg, args)) }
func (g *GommonLogger) Info(msg string, args ...interface{})  { g.l.Infoj(fields(msg, args)) }
func (g *GommonLogger) Warn(msg string, args ...interface{})  { g.l.Warnj(fields(msg, args)) }
func (g *GommonLogger) Error(msg string, args ...interface{}) { g.l.Errorj(fields(msg, args)) }

// fields turns msg and key/value args into a gommon JSON payload.
func fields(msg string, args []interface{}) log.JSON {
	j := log.JSON{"message": msg}
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			j["error"] = v.Error()
		case string:
			if i+1 < len(args) {
				j[v] = stringify(args[i+1])
				i++
			} else {
				j[fmt.Sprintf("arg%d", i)] = v
			}
		default:
			j[fmt.Sprintf("arg%d", i)] = stringify(v)
		}
	}
	return j
}

func stringify(v interface{}) interface{} {
	switch val := v.(type) {
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return val
	}
}

// Nop discards everything.
type Nop struct{}

var _ Logger = Nop{}

func (Nop) Debug(string, ...interface{}) {}
func (Nop) Info(string, ...interface{})  {}
func (Nop) Warn(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
