package hsm

import "github.com/latticefsm/hsm/embedded"

// Vertex is the tagged union behind Region/Vertex/State/FinalState/
// StateMachine/PseudoState (spec Design Notes §9: "the set of kinds is
// fixed and closed" favors a tagged union over a trait hierarchy). The
// element's kind field discriminates which of the kind-specific fields
// below are meaningful.
type Vertex[M any] struct {
	element
	owner    *Region[M] // nil only for the root StateMachine
	outgoing []*Transition[M]
	incoming []*Transition[M]

	// State / FinalState / StateMachine only.
	regions []*Region[M]
	entry   Behavior[M]
	exit    Behavior[M]

	// PseudoState only.
	psKind embedded.PseudoStateKind

	// StateMachine only.
	dirty        bool
	onInitialise Behavior[M]
	config       EngineConfig[M]

	// Compiled by the visitor (spec §4.3); valid for every kind.
	leave      Behavior[M]
	beginEnter Behavior[M]
	endEnter   Behavior[M]
}

func (v *Vertex[M]) Outgoing() []embedded.Transition {
	out := make([]embedded.Transition, len(v.outgoing))
	for i, t := range v.outgoing {
		out[i] = t
	}
	return out
}

func (v *Vertex[M]) Incoming() []embedded.Transition {
	out := make([]embedded.Transition, len(v.incoming))
	for i, t := range v.incoming {
		out[i] = t
	}
	return out
}

func (v *Vertex[M]) Regions() []embedded.Region {
	out := make([]embedded.Region, len(v.regions))
	for i, r := range v.regions {
		out[i] = r
	}
	return out
}

func (v *Vertex[M]) PseudoStateKind() embedded.PseudoStateKind { return v.psKind }

// OutgoingT and IncomingT expose the typed slices for the compiler and
// evaluator, which operate on *Vertex[M]/*Transition[M] directly.
func (v *Vertex[M]) OutgoingT() []*Transition[M] { return v.outgoing }
func (v *Vertex[M]) IncomingT() []*Transition[M] { return v.incoming }

// ChildRegions returns the ordered, typed child regions.
func (v *Vertex[M]) ChildRegions() []*Region[M] { return v.regions }

// Region returns the owning Region, nil only for the root StateMachine.
func (v *Vertex[M]) Region() *Region[M] { return v.owner }

// IsComposite reports whether v is a State (or subkind) with at least
// one child region.
func (v *Vertex[M]) IsComposite() bool {
	return isKind(v.kind, kindState) && len(v.regions) > 0
}

// IsOrthogonal reports whether v is a State with two or more child
// regions — concurrent sub-machines, per the GLOSSARY.
func (v *Vertex[M]) IsOrthogonal() bool {
	return isKind(v.kind, kindState) && len(v.regions) >= 2
}

// root walks up to the owning StateMachine.
func (v *Vertex[M]) root() *Vertex[M] {
	cur := v
	for cur.owner != nil {
		cur = cur.owner.owner
	}
	return cur
}

func (v *Vertex[M]) markDirty() {
	v.root().dirty = true
}

// defaultRegion returns v's region named "default", creating it (and
// marking the model dirty) if v has no region by that name — spec §3: "states
// with vertices added directly obtain one implicit default region."
func (v *Vertex[M]) defaultRegion() *Region[M] {
	for _, r := range v.regions {
		if r.name == "default" {
			return r
		}
	}
	return newRegion(v, "default")
}

// enter returns begin_enter ++ end_enter, always freshly materialised so
// no two callers can alias into the same backing slice — spec §4.3.
func (v *Vertex[M]) enter() Behavior[M] {
	return Concat(v.beginEnter, v.endEnter)
}
