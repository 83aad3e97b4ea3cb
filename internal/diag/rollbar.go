package diag

import (
	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
)

// RollbarOptions configures remote error reporting.
type RollbarOptions struct {
	Token       string
	Environment string
	CodeVersion string
}

// RollbarLogger forwards warnings and errors to Rollbar and every event to
// the wrapped logger.
type RollbarLogger struct {
	next Logger
}

var _ Logger = (*RollbarLogger)(nil)

// WithRollbar wraps next with Rollbar reporting. An empty token disables
// reporting and returns next unchanged.
func WithRollbar(next Logger, opts RollbarOptions) Logger {
	if opts.Token == "" {
		return next
	}
	rollbar.SetToken(opts.Token)
	rollbar.SetEnvironment(opts.Environment)
	if opts.CodeVersion != "" {
		rollbar.SetCodeVersion(opts.CodeVersion)
	}
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{next: next}
}

// CloseRollbar flushes queued reports.
func CloseRollbar() {
	rollbar.Close()
}

// expected fmt: msg, [error], key/value pairs
func (l *RollbarLogger) report(level, msg string, args []interface{}) {
	extras := map[string]interface{}{}
	var cause error
	for k, v := range fields(msg, args) {
		if k == "message" {
			continue
		}
		extras[k] = v
	}
	for _, a := range args {
		if err, ok := a.(error); ok {
			cause = err
			break
		}
	}
	if cause != nil {
		rollbar.ErrorWithExtras(level, cause, extras)
		return
	}
	rollbar.MessageWithExtras(level, msg, extras)
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) { l.next.Debug(msg, args...) }
func (l *RollbarLogger) Info(msg string, args ...interface{})  { l.next.Info(msg, args...) }

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	l.report(rollbar.WARN, msg, args)
	l.next.Warn(msg, args...)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	l.report(rollbar.ERR, msg, args)
	l.next.Error(msg, args...)
}
