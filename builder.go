package hsm

import (
	"strconv"

	"github.com/latticefsm/hsm/embedded"
)

// Owner is satisfied by *Vertex[M] (a State) and *Region[M] — every
// constructor that needs a parent container accepts either, resolving a
// bare State to its "default" region. This mirrors the Open Question in
// spec §9: "the intent is clearly resolve to default region if a state
// was given" — made explicit here instead of left to shadowed lookups.
type Owner[M any] interface {
	resolveRegion() *Region[M]
}

func (v *Vertex[M]) resolveRegion() *Region[M] {
	if !isKind(v.kind, kindState) {
		panic(errorf("hsm: %s is not a State and cannot own vertices directly", v.qualifiedName))
	}
	return v.defaultRegion()
}

func (r *Region[M]) resolveRegion() *Region[M] { return r }

// NewStateMachine creates the root of a model. Passing a config
// overrides DefaultEngineConfig; any zero fields in it are still filled
// in by normalise().
func NewStateMachine[M any](name string, config ...EngineConfig[M]) *Vertex[M] {
	cfg := DefaultEngineConfig[M]()
	if len(config) > 0 {
		cfg = config[0]
	}
	cfg.normalise()
	return &Vertex[M]{
		element: newElement(kindStateMachine, "", name),
		config:  cfg,
		dirty:   true,
	}
}

// NewRegion adds an explicitly named child Region to a State.
func NewRegion[M any](owner *Vertex[M], name string) *Region[M] {
	if !isKind(owner.kind, kindState) {
		panic(errorf("hsm: %s is not a State and cannot own regions", owner.qualifiedName))
	}
	return newRegion(owner, name)
}

// NewState adds a State under parent (a State, resolving to its default
// region, or an explicit Region).
func NewState[M any](parent Owner[M], name string) *Vertex[M] {
	region := parent.resolveRegion()
	v := &Vertex[M]{element: newElement(kindState, region.QualifiedName(), name)}
	region.addVertex(v)
	v.markDirty()
	return v
}

// NewFinalState adds a FinalState, representing completion of its
// containing region (spec §3). It may carry no outgoing transitions and
// no child regions — enforced by Validate, not the constructor, so a
// model under construction is never in a permanently-invalid state.
func NewFinalState[M any](parent Owner[M], name string) *Vertex[M] {
	region := parent.resolveRegion()
	v := &Vertex[M]{element: newElement(kindFinalState, region.QualifiedName(), name)}
	region.addVertex(v)
	v.markDirty()
	return v
}

func pseudoStateTag(k embedded.PseudoStateKind) uint64 {
	switch k {
	case embedded.InitialKind:
		return kindInitial
	case embedded.ShallowHistoryKind:
		return kindShallowHistory
	case embedded.DeepHistoryKind:
		return kindDeepHistory
	case embedded.ChoiceKind:
		return kindChoice
	case embedded.JunctionKind:
		return kindJunction
	case embedded.TerminateKind:
		return kindTerminate
	default:
		panic(errorf("hsm: unknown pseudostate kind %v", k))
	}
}

// NewPseudoState adds a PseudoState of the given kind under parent.
func NewPseudoState[M any](parent Owner[M], name string, k embedded.PseudoStateKind) *Vertex[M] {
	region := parent.resolveRegion()
	v := &Vertex[M]{
		element: newElement(pseudoStateTag(k), region.QualifiedName(), name),
		psKind:  k,
	}
	region.addVertex(v)
	v.markDirty()
	return v
}

func transitionAutoName[M any](source *Vertex[M]) string {
	return "transition_" + strconv.Itoa(len(source.outgoing))
}

// NewTransition creates a Transition sourced from source. target may be
// nil, which forces TransitionKind Internal (spec §3). An explicit kind
// overrides the structurally-derived one (the builder's `to(target?,
// kind?)` per spec §6).
func NewTransition[M any](source *Vertex[M], target *Vertex[M], kind ...embedded.TransitionKind) *Transition[M] {
	t := &Transition[M]{
		element: newElement(kindTransition, source.QualifiedName(), transitionAutoName(source)),
		source:  source,
		target:  target,
	}
	t.tkind = resolveTransitionKind(source, target, kind...)
	source.outgoing = append(source.outgoing, t)
	if target != nil {
		target.incoming = append(target.incoming, t)
	}
	source.markDirty()
	return t
}

func resolveTransitionKind[M any](source, target *Vertex[M], kind ...embedded.TransitionKind) embedded.TransitionKind {
	if target == nil {
		return embedded.InternalKind
	}
	if len(kind) > 0 {
		return kind[0]
	}
	return classifyTransitionKind(source, target)
}

// Entry appends fn to the State's entry behavior.
func (v *Vertex[M]) Entry(fn func(message M, instance Instance)) *Vertex[M] {
	v.entry.Push(Action[M](func(m M, i Instance, _ bool) { fn(m, i) }))
	v.markDirty()
	return v
}

// Exit appends fn to the State's exit behavior.
func (v *Vertex[M]) Exit(fn func(message M, instance Instance)) *Vertex[M] {
	v.exit.Push(Action[M](func(m M, i Instance, _ bool) { fn(m, i) }))
	v.markDirty()
	return v
}

// Remove detaches v from its owning region (and, for a StateMachine,
// does nothing — the root has no owner) and marks the model dirty.
func (v *Vertex[M]) Remove() {
	if v.owner != nil {
		v.owner.removeVertex(v)
		v.markDirty()
	}
}

// Remove detaches r from its owning state and marks the model dirty.
func (r *Region[M]) Remove() {
	if r.owner == nil {
		return
	}
	for i, rg := range r.owner.regions {
		if rg == r {
			r.owner.regions = append(r.owner.regions[:i], r.owner.regions[i+1:]...)
			break
		}
	}
	r.owner.markDirty()
}

// To sets (or changes) t's target, re-deriving its TransitionKind unless
// an explicit override is given.
func (t *Transition[M]) To(target *Vertex[M], kind ...embedded.TransitionKind) *Transition[M] {
	t.target = target
	if target != nil {
		target.incoming = append(target.incoming, t)
	}
	t.tkind = resolveTransitionKind(t.source, target, kind...)
	t.source.markDirty()
	return t
}

// When attaches a guard predicate.
func (t *Transition[M]) When(fn func(message M, instance Instance) bool) *Transition[M] {
	t.guard = NewGuard(fn)
	return t
}

// Else marks t as the constant-false else-branch of a Choice or Junction
// (spec §3): permitted only on those pseudostate kinds, at most once.
func (t *Transition[M]) Else() *Transition[M] {
	t.guard = ElseGuard[M]()
	return t
}

// Effect appends fn to t's transition behavior.
func (t *Transition[M]) Effect(fn func(message M, instance Instance)) *Transition[M] {
	t.effect.Push(Action[M](func(m M, i Instance, _ bool) { fn(m, i) }))
	t.source.markDirty()
	return t
}

func removeTransitionFrom[M any](list *[]*Transition[M], t *Transition[M]) {
	for i, c := range *list {
		if c == t {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}

// Remove detaches t from its source's outgoing list and (if targeted)
// its target's incoming list, and marks the model dirty.
func (t *Transition[M]) Remove() {
	removeTransitionFrom(&t.source.outgoing, t)
	if t.target != nil {
		removeTransitionFrom(&t.target.incoming, t)
	}
	t.source.markDirty()
}
