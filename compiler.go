package hsm

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/latticefsm/hsm/embedded"
)

// compile runs the compilation visitor over the whole model rooted at sm
// (spec §4.4), then the transition-compilation pass (spec §4.5), then
// materialises sm.onInitialise = sm.enter() (spec §4.4 "StateMachine").
// Idempotent per spec §4.6 step 1 and §3's Lifecycle: resetCompiled
// clears every previously compiled sequence first, so recompiling after
// a structural mutation (any builder call that reaches markDirty) never
// re-appends an action onto one already baked in by an earlier compile.
func (sm *Vertex[M]) compile() {
	resetCompiled(sm)
	visitVertex(sm, false)
	compileTransitionsFrom(sm)
	sm.onInitialise = sm.enter()
	sm.dirty = false
}

// resetCompiled zeroes every leave/beginEnter/endEnter the visitor fills
// in and every onTraverse the transition compiler fills in, recursively
// over the whole tree rooted at v, before compile() re-runs both passes.
func resetCompiled[M any](v *Vertex[M]) {
	v.leave = Behavior[M]{}
	v.beginEnter = Behavior[M]{}
	v.endEnter = Behavior[M]{}
	for _, t := range v.outgoing {
		t.onTraverse = Behavior[M]{}
	}
	for _, r := range v.regions {
		r.leave = Behavior[M]{}
		r.endEnter = Behavior[M]{}
		for _, child := range r.vertices {
			resetCompiled(child)
		}
	}
}

// visitVertex dispatches on kind, the tagged-union "match" Design Notes
// §9 recommends in place of a visitor-per-subclass hierarchy.
func visitVertex[M any](v *Vertex[M], deepHistoryAbove bool) {
	if isKind(v.kind, kindPseudostate) {
		visitPseudoState(v, deepHistoryAbove)
		return
	}
	visitState(v, deepHistoryAbove)
}

// elementLogHooks appends the Element-level observability hook (spec
// §4.4 "Element") to leave and beginEnter. Design Notes §9 flags the
// source's "enter" logged from both hooks as a copy-paste bug; this
// implementation logs "exit" on leave and "enter" on beginEnter.
//
// Pushed unconditionally for every State and PseudoState, whichever
// Console is installed: there is no check for a non-default Console, so
// with the default Console (slog.Default(), Info level) every enter and
// exit is written as a log line. Region, also an Element per spec §3,
// never receives this hook:
// it has a leave field but no beginEnter field to push the "enter" half
// onto, since a region is entered by entering one of its children, not
// by any action of its own.
func elementLogHooks[M any](v *Vertex[M]) {
	cfg := v.root().config
	name := v.qualifiedName
	v.leave.Push(Action[M](func(_ M, _ Instance, _ bool) {
		cfg.Console.Log("exit", "element", name)
	}))
	v.beginEnter.Push(Action[M](func(_ M, _ Instance, _ bool) {
		cfg.Console.Log("enter", "element", name)
	}))
}

func visitState[M any](v *Vertex[M], deepHistoryAbove bool) {
	elementLogHooks(v)

	for _, r := range v.regions {
		visitRegion(r, deepHistoryAbove)
		v.leave.Push(r.leave)
		v.endEnter.Push(r.endEnter)
	}

	v.leave.Push(v.exit)
	v.beginEnter.Push(v.entry)

	if v.owner != nil {
		self := v
		v.beginEnter.Push(Action[M](func(_ M, i Instance, _ bool) {
			i.SetCurrent(self.owner, self)
		}))
	}
}

func visitPseudoState[M any](v *Vertex[M], _ bool) {
	elementLogHooks(v)

	if isKind(v.kind, kindInitial, kindShallowHistory, kindDeepHistory) {
		self := v
		v.endEnter.Push(Action[M](func(m M, i Instance, h bool) {
			_, span := self.root().config.tracer().Start(context.Background(), "enter")
			defer span.End()
			span.SetAttributes(attribute.String("element", self.qualifiedName))

			if cur, ok := i.GetCurrent(self.owner); ok && cur != nil {
				self.leave.Invoke(m, i, h)
				if cv, ok := cur.(*Vertex[M]); ok {
					cvEnter := cv.enter()
					cvEnter.Invoke(m, i, h)
				}
				return
			}
			if len(self.outgoing) == 0 {
				v.root().config.Console.Error("pseudostate has no outgoing transition", "element", self.qualifiedName)
				return
			}
			traverse(self.outgoing[0], i, m)
		}))
	}

	if isKind(v.kind, kindTerminate) {
		v.beginEnter.Push(Action[M](func(_ M, i Instance, _ bool) {
			i.SetTerminated(true)
		}))
	}
}

// visitRegion implements spec §4.4 "Region": it identifies region_initial,
// recurses into every child vertex, and composes the region's leave and
// end_enter.
func visitRegion[M any](r *Region[M], deepHistoryAboveParent bool) {
	regionInitial := r.initialPseudoState()
	deepHistoryHere := deepHistoryAboveParent || (regionInitial != nil && isKind(regionInitial.kind, kindDeepHistory))

	for _, child := range r.vertices {
		visitVertex(child, deepHistoryHere)
	}

	region := r
	r.leave.Push(Action[M](func(m M, i Instance, h bool) {
		_, span := region.owner.root().config.tracer().Start(context.Background(), "leave")
		defer span.End()
		span.SetAttributes(attribute.String("element", region.qualifiedName))

		cur, ok := i.GetCurrent(region)
		if !ok || cur == nil {
			return
		}
		if cv, ok := cur.(*Vertex[M]); ok {
			cv.leave.Invoke(m, i, h)
		}
	}))

	dynamic := deepHistoryAboveParent || regionInitial == nil || isKind(regionInitial.kind, kindShallowHistory, kindDeepHistory)
	if !dynamic {
		r.endEnter.Push(regionInitial.enter())
		return
	}

	ri := regionInitial
	r.endEnter.Push(Action[M](func(m M, i Instance, h bool) {
		_, span := region.owner.root().config.tracer().Start(context.Background(), "enter")
		defer span.End()
		span.SetAttributes(attribute.String("element", region.qualifiedName))

		var target *Vertex[M]
		if stored, ok := i.GetCurrent(region); ok && stored != nil {
			isHistoryInitial := ri != nil && isKind(ri.kind, kindShallowHistory, kindDeepHistory)
			if h || isHistoryInitial {
				target, _ = stored.(*Vertex[M])
			}
		}
		if target == nil {
			target = ri
		}
		if target == nil {
			return
		}
		nextHistory := h || (ri != nil && isKind(ri.kind, kindDeepHistory))
		targetEnter := target.enter()
		targetEnter.Invoke(m, i, nextHistory)
	}))
}

// compileTransitionsFrom walks the whole tree compiling every outgoing
// transition (spec §4.5).
func compileTransitionsFrom[M any](v *Vertex[M]) {
	for _, t := range v.outgoing {
		compileTransition(t)
	}
	for _, r := range v.regions {
		for _, child := range r.vertices {
			compileTransitionsFrom(child)
		}
	}
}

func compileTransition[M any](t *Transition[M]) {
	switch t.tkind {
	case embedded.InternalKind:
		compileInternal(t)
	case embedded.LocalKind:
		compileLocal(t)
	case embedded.ExternalKind:
		compileExternal(t)
	}
}

func compileInternal[M any](t *Transition[M]) {
	var b Behavior[M]
	b.Push(t.effect)
	if t.source.root().config.InternalTransitionsTriggerCompletion {
		source := t.source
		b.Push(Action[M](func(m M, i Instance, _ bool) {
			if isComplete(source, i) {
				evaluateState(source, i, m, source)
			}
		}))
	}
	t.onTraverse = b
}

// compileLocal stores a single dynamic action: the entry index into the
// target's ancestry can only be known once the instance's current
// configuration is known, so — unlike External — the behavior is
// recomputed at traversal time rather than baked in at compile time
// (spec §4.5).
func compileLocal[M any](t *Transition[M]) {
	target := t.target
	effect := t.effect
	var b Behavior[M]
	b.Push(Action[M](func(m M, i Instance, _ bool) {
		targetAncestry := ancestry(target)
		idx := 0
		for idx < len(targetAncestry)-1 && isActive(targetAncestry[idx], i) {
			idx++
		}
		if region := targetAncestry[idx].owner; region != nil {
			if cur, ok := i.GetCurrent(region); ok && cur != nil {
				if cv, ok := cur.(*Vertex[M]); ok {
					cv.leave.Invoke(m, i, false)
				}
			}
		}
		effect.Invoke(m, i, false)
		cascade := cascadeEnter(targetAncestry[idx:])
		cascade.Invoke(m, i, false)
		target.endEnter.Invoke(m, i, false)
	}))
	t.onTraverse = b
}

// compileExternal precomputes the entire onTraverse sequence because
// both ancestries are fixed once the model is built (spec §4.5).
func compileExternal[M any](t *Transition[M]) {
	sourceAnc := ancestry(t.source)
	targetAnc := ancestry(t.target)
	bound := len(sourceAnc)
	if len(targetAnc) < bound {
		bound = len(targetAnc)
	}
	i := lca(sourceAnc, targetAnc) + 1
	if i > bound-1 {
		i = bound - 1
	}
	var b Behavior[M]
	b.Push(sourceAnc[i].leave)
	b.Push(t.effect)
	b.Push(cascadeEnter(targetAnc[i:]))
	b.Push(t.target.endEnter)
	t.onTraverse = b
}

// cascadeStep implements spec §4.5 "Cascade entry" for one (element,
// next) pair: begin_enter(element), and — only when descending into a
// composite with next inside one of its child regions — fully enter
// every *other* child region while leaving the region on the path to be
// finished by the next cascade step (or by the final end_enter(target)).
func cascadeStep[M any](element, next *Vertex[M]) Behavior[M] {
	var b Behavior[M]
	b.Push(element.beginEnter)
	if next == nil || !isKind(element.kind, kindState) || len(element.regions) == 0 {
		return b
	}
	for _, r := range element.regions {
		if next.owner == r {
			continue
		}
		b.Push(r.endEnter)
	}
	return b
}

func cascadeEnter[M any](path []*Vertex[M]) Behavior[M] {
	var b Behavior[M]
	for k, v := range path {
		var next *Vertex[M]
		if k+1 < len(path) {
			next = path[k+1]
		}
		b.Push(cascadeStep(v, next))
	}
	return b
}
