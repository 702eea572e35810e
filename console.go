package hsm

import (
	"fmt"
	"log/slog"

	"github.com/latticefsm/hsm/clock"
)

// Console is the logging sink injection point (spec §6). Log/Warn never
// abort anything; Error is also non-fatal by contract — the evaluator
// decides for itself, per error class, whether to additionally panic
// (spec §7.3's ill-formed compound transition) rather than relying on
// Console to do it.
type Console interface {
	Log(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// slogConsole is the default Console, wrapping log/slog the way the
// teacher's builder calls slog.Error directly — centralised here instead
// of scattered across call sites, and timestamped by an injectable
// clock.Clock so tests can pin log output to a fixed instant.
type slogConsole struct {
	logger *slog.Logger
	clock  clock.Clock
}

// NewConsole wraps logger (or slog.Default() if nil) as a Console, stamped
// by the given clock.Clock (or clock.Make() if nil).
func NewConsole(logger *slog.Logger, c clock.Clock) Console {
	if logger == nil {
		logger = slog.Default()
	}
	if c == nil {
		c = clock.Make()
	}
	return &slogConsole{logger: logger, clock: c}
}

func (c *slogConsole) Log(msg string, args ...any) {
	c.logger.Info(msg, append(args, "time", c.clock.Now())...)
}

func (c *slogConsole) Warn(msg string, args ...any) {
	c.logger.Warn(msg, append(args, "time", c.clock.Now())...)
}

func (c *slogConsole) Error(msg string, args ...any) {
	c.logger.Error(msg, append(args, "time", c.clock.Now())...)
}

// errorf is a convenience used when a Console.Error message is also
// needed as a Go error value (e.g. to panic with, or to attach to a
// Diagnostic).
func errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
