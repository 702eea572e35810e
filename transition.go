package hsm

import "github.com/latticefsm/hsm/embedded"

// Transition is a directed edge between vertices. A Transition with no
// target is forced to TransitionKind Internal at construction time,
// exactly as spec §3 requires.
type Transition[M any] struct {
	element
	source *Vertex[M]
	target *Vertex[M]
	tkind  embedded.TransitionKind
	guard  Guard[M]
	effect Behavior[M]

	// compiled by the visitor (spec §4.5)
	onTraverse Behavior[M]
}

func (t *Transition[M]) Source() embedded.Vertex { return t.source }

func (t *Transition[M]) Target() embedded.Vertex {
	if t.target == nil {
		return nil
	}
	return t.target
}

func (t *Transition[M]) TransitionKind() embedded.TransitionKind { return t.tkind }

// SourceT and TargetT expose the typed endpoints for the compiler and
// evaluator.
func (t *Transition[M]) SourceT() *Vertex[M] { return t.source }
func (t *Transition[M]) TargetT() *Vertex[M] { return t.target }

// GuardT exposes the transition's guard predicate.
func (t *Transition[M]) GuardT() Guard[M] { return t.guard }

func classifyTransitionKind[M any](source, target *Vertex[M]) embedded.TransitionKind {
	if target == nil {
		return embedded.InternalKind
	}
	if isDescendant(target, source) {
		return embedded.LocalKind
	}
	return embedded.ExternalKind
}

// isDescendant reports whether source appears in target's ancestry above
// target itself — the invariant a Local transition's target must satisfy
// (spec §3).
func isDescendant[M any](target, source *Vertex[M]) bool {
	anc := ancestry(target)
	for _, a := range anc {
		if a == source {
			return a != target
		}
	}
	return false
}
