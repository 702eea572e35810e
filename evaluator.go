package hsm

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
)

// evaluating tracks which instances currently have an Evaluate call in
// progress, so a re-entrant call from inside an entry/exit/effect
// callback (spec §5's "must not re-enter evaluate on the same instance")
// is caught instead of corrupting the instance's current-state map.
var evaluating = struct {
	sync.Mutex
	set map[Instance]bool
}{set: make(map[Instance]bool)}

func beginEvaluating(instance Instance) bool {
	evaluating.Lock()
	defer evaluating.Unlock()
	if evaluating.set[instance] {
		return false
	}
	evaluating.set[instance] = true
	return true
}

func endEvaluating(instance Instance) {
	evaluating.Lock()
	defer evaluating.Unlock()
	delete(evaluating.set, instance)
}

// Initialise compiles model if it (or anything reachable from it) has
// changed since the last compile (spec §4.7). It is idempotent and safe
// to call before every Evaluate — most callers won't need to call it
// directly at all.
func Initialise[M any](model *Vertex[M]) {
	if model.dirty {
		model.compile()
	}
}

// InitialiseInstance compiles model if needed, then runs its
// onInitialise sequence against instance, entering the StateMachine's
// own regions and therefore every composite's initial pseudostate chain
// down to the leaves (spec §4.7).
func InitialiseInstance[M any](model *Vertex[M], instance Instance) {
	Initialise(model)
	var zero M
	_, span := model.config.tracer().Start(context.Background(), "enter")
	defer span.End()
	span.SetAttributes(attribute.String("element", model.qualifiedName))
	model.onInitialise.Invoke(zero, instance, false)
}

// Evaluate dispatches message into instance against model, returning
// whether any transition fired (spec §4.6). A terminated instance always
// returns false without inspecting message.
func Evaluate[M any](model *Vertex[M], instance Instance, message M) bool {
	Initialise(model)
	if instance.IsTerminated() {
		return false
	}
	if !beginEvaluating(instance) {
		model.config.Console.Error("evaluate re-entered on an instance already evaluating")
		panic(ErrReentrantEvaluate)
	}
	defer endEvaluating(instance)

	_, span := model.config.tracer().Start(context.Background(), "evaluate")
	defer span.End()
	span.SetAttributes(attribute.String("element", model.qualifiedName))
	return evaluateState(model, instance, message, nil)
}

// evaluateState implements spec §4.6's "evaluate_state". completionSource
// replaces the source's "message == state" self-signalling trick (flagged
// by Design Notes §9) with an explicit marker: non-nil and equal to state
// means this call itself is a completion dispatch for state. A completion
// dispatch evaluates state's guards against the zero M, not against the
// message that triggered it, so only transitions that accept a
// completion event can fire.
func evaluateState[M any](state *Vertex[M], instance Instance, message M, completionSource *Vertex[M]) bool {
	consumed := false

	if completionSource != state {
		for _, region := range state.regions {
			cur, ok := instance.GetCurrent(region)
			if !ok || cur == nil {
				continue
			}
			child, ok := cur.(*Vertex[M])
			if !ok {
				continue
			}
			if evaluateState(child, instance, message, completionSource) {
				consumed = true
			}
			if consumed && !isActive(state, instance) {
				break
			}
		}
	}

	if consumed {
		if completionSource != state && isComplete(state, instance) {
			evaluateState(state, instance, message, state)
		}
		return true
	}

	if completionSource == state {
		var zero M
		message = zero
	}

	var candidates []*Transition[M]
	for _, t := range state.outgoing {
		if t.guard.Evaluate(message, instance) {
			candidates = append(candidates, t)
		}
	}

	switch len(candidates) {
	case 0:
		return false
	case 1:
		return traverse(candidates[0], instance, message)
	default:
		state.root().config.Console.Error(ErrDispatchAmbiguous.Error(), "element", state.qualifiedName, "err", ErrDispatchAmbiguous)
		return false
	}
}

// traverse implements spec §4.6's "traverse": static Junction chains are
// fully resolved — and their onTraverse sequences concatenated — before
// any behavior runs; a Choice, being dynamic, is only resolved (and its
// chosen branch recursively traversed) after.
func traverse[M any](t *Transition[M], instance Instance, message M) bool {
	_, span := t.source.root().config.tracer().Start(context.Background(), "traverse")
	defer span.End()
	span.SetAttributes(attribute.String("element", t.qualifiedName))

	cur := t
	var combined Behavior[M]
	combined.Push(cur.onTraverse)

	for cur.target != nil && isKind(cur.target.kind, kindJunction) {
		next, ok := selectPseudoState(cur.target, instance, message)
		if !ok {
			return false
		}
		combined.Push(next.onTraverse)
		cur = next
	}

	combined.Invoke(message, instance, false)

	if cur.target != nil && isKind(cur.target.kind, kindChoice) {
		if next, ok := selectPseudoState(cur.target, instance, message); ok {
			traverse(next, instance, message)
		}
		return true
	}

	if cur.target != nil && isKind(cur.target.kind, kindState) && isComplete(cur.target, instance) {
		evaluateState(cur.target, instance, message, cur.target)
	}

	return true
}

// selectPseudoState implements spec §4.6's "select" for Choice and
// Junction. ok is false only for the Junction-ambiguity case (spec
// §7.2): logged, no state change, traversal aborts cleanly. The
// no-passing-guard-and-no-else case is ErrIllFormedTransition and panics
// (spec §7.3).
func selectPseudoState[M any](pseudo *Vertex[M], instance Instance, message M) (*Transition[M], bool) {
	_, span := pseudo.root().config.tracer().Start(context.Background(), "select")
	defer span.End()
	span.SetAttributes(attribute.String("element", pseudo.qualifiedName))

	console := pseudo.root().config.Console

	var passing []*Transition[M]
	var elseT *Transition[M]
	for _, t := range pseudo.outgoing {
		if t.guard.IsElse() {
			elseT = t
			continue
		}
		if t.guard.Evaluate(message, instance) {
			passing = append(passing, t)
		}
	}

	if isKind(pseudo.kind, kindChoice) {
		if len(passing) > 0 {
			idx := pseudo.root().config.RNG(len(passing))
			if idx < 0 || idx >= len(passing) {
				idx = 0
			}
			return passing[idx], true
		}
		if elseT != nil {
			return elseT, true
		}
		console.Error("choice has no passing guard and no else-transition", "element", pseudo.qualifiedName)
		panic(ErrIllFormedTransition)
	}

	// Junction.
	if len(passing) > 1 {
		console.Error(ErrDispatchAmbiguous.Error(), "element", pseudo.qualifiedName, "err", ErrDispatchAmbiguous)
		return nil, false
	}
	if len(passing) == 1 {
		return passing[0], true
	}
	if elseT != nil {
		return elseT, true
	}
	console.Error("junction has no passing guard and no else-transition", "element", pseudo.qualifiedName)
	panic(ErrIllFormedTransition)
}

// IsActive reports whether v is part of instance's current configuration
// (spec §6's is_active(vertex, instance)).
func IsActive[M any](v *Vertex[M], instance Instance) bool {
	return isActive(v, instance)
}

// IsComplete reports whether the State v has finished: every child
// region's current vertex is a FinalState (spec §6's
// is_complete(region_or_state, instance), State overload).
func IsComplete[M any](v *Vertex[M], instance Instance) bool {
	return isComplete(v, instance)
}

// IsRegionComplete is IsComplete's Region overload: a region is complete
// iff its current vertex is a FinalState.
func IsRegionComplete[M any](r *Region[M], instance Instance) bool {
	cur, ok := instance.GetCurrent(r)
	if !ok || cur == nil {
		return false
	}
	return isKind(cur.Kind(), kindFinalState)
}

// isActive reports whether v is part of instance's current configuration
// (spec §4.6): its owning chain up to the root must agree at every level.
func isActive[M any](v *Vertex[M], instance Instance) bool {
	if v.owner == nil {
		return true
	}
	if !isActive(v.owner.owner, instance) {
		return false
	}
	cur, ok := instance.GetCurrent(v.owner)
	return ok && cur == v
}

// isComplete reports whether v is "done": a FinalState always is; any
// other non-State vertex trivially is (it has no regions to wait on); a
// State with no child regions is; a State with child regions is complete
// once every region's current vertex is a FinalState (spec §3, §4.6).
func isComplete[M any](v *Vertex[M], instance Instance) bool {
	if isKind(v.kind, kindFinalState) {
		return true
	}
	if !isKind(v.kind, kindState) || len(v.regions) == 0 {
		return true
	}
	for _, r := range v.regions {
		cur, ok := instance.GetCurrent(r)
		if !ok || cur == nil {
			return false
		}
		if !isKind(cur.Kind(), kindFinalState) {
			return false
		}
	}
	return true
}
