package hsm

import (
	"math/rand"

	"go.opentelemetry.io/otel/trace"

	"github.com/latticefsm/hsm/clock"
	"github.com/latticefsm/hsm/pkg/telemetry"
)

// RNG draws a uniform value in [0, max) for Choice pseudostate selection
// among multiple passing guards (spec §4.6's select). Its thread-safety
// is the caller's responsibility, per spec §5.
type RNG func(max int) int

func defaultRNG(max int) int {
	if max <= 0 {
		return 0
	}
	return rand.Intn(max)
}

// EngineConfig is the single explicit-configuration object Design Notes
// §9 asks for in place of the teacher's global mutables (console,
// internalTransitionsTriggerCompletion, random): it is attached to the
// StateMachine at construction and consulted by the compiler and
// evaluator instead of reaching for package-level state.
type EngineConfig[M any] struct {
	Console Console
	RNG     RNG
	Clock   clock.Clock

	// InternalTransitionsTriggerCompletion mirrors spec §4.5: when set,
	// an Internal transition additionally checks for completion on its
	// source state after its effect runs. Default false.
	InternalTransitionsTriggerCompletion bool

	TracerProvider trace.TracerProvider
}

// DefaultEngineConfig returns the configuration a StateMachine gets when
// none is supplied explicitly.
func DefaultEngineConfig[M any]() EngineConfig[M] {
	c := clock.Make()
	return EngineConfig[M]{
		Console:        NewConsole(nil, c),
		RNG:            defaultRNG,
		Clock:          c,
		TracerProvider: telemetry.NewProvider(),
	}
}

func (c *EngineConfig[M]) normalise() {
	if c.Console == nil {
		c.Console = NewConsole(nil, c.Clock)
	}
	if c.RNG == nil {
		c.RNG = defaultRNG
	}
	if c.Clock == nil {
		c.Clock = clock.Make()
	}
	if c.TracerProvider == nil {
		c.TracerProvider = telemetry.NewProvider()
	}
}

func (c *EngineConfig[M]) tracer() trace.Tracer {
	return c.TracerProvider.Tracer("github.com/latticefsm/hsm")
}
