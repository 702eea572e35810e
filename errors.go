package hsm

import "errors"

// Sentinel errors for the runtime error taxonomy in spec §7.
var (
	// ErrDispatchAmbiguous marks "multiple outbound transitions evaluated
	// true" at a state or a Junction (spec §7.2). evaluate(model,
	// instance, message) → bool per spec §6, so this sentinel is never
	// returned from Evaluate itself; evaluateState and selectPseudoState
	// both log it through Console.Error (message and "err" attribute)
	// and report no transition fired rather than panicking with it.
	ErrDispatchAmbiguous = errors.New("hsm: multiple outbound transitions evaluated true")

	// ErrIllFormedTransition marks a Choice or Junction with no passing
	// guard and no else-transition. Per spec §7.3 the default console's
	// Error is expected to abort the traversal, so the evaluator panics
	// with this error after logging it.
	ErrIllFormedTransition = errors.New("hsm: compound transition has no passing guard and no else")

	// ErrReentrantEvaluate marks a same-instance Evaluate call observed
	// from inside a running Evaluate on that instance (spec §5: "user
	// code invoked from entry/exit/transition behaviors must not
	// re-enter evaluate on the same instance").
	ErrReentrantEvaluate = errors.New("hsm: evaluate re-entered on an instance already evaluating")
)
