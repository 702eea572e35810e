package hsm

import "github.com/latticefsm/hsm/embedded"

// Region is an ordered set of child Vertices owned by a State. Its
// active child at runtime is recorded in the Instance, never here — a
// Region is immutable-after-build model data, shared across every
// instance of the machine.
type Region[M any] struct {
	element
	owner    *Vertex[M]
	vertices []*Vertex[M]

	// compiled by the visitor (spec §4.4)
	leave    Behavior[M]
	endEnter Behavior[M]
}

func newRegion[M any](owner *Vertex[M], name string) *Region[M] {
	r := &Region[M]{
		element: newElement(kindRegion, owner.QualifiedName(), name),
		owner:   owner,
	}
	owner.regions = append(owner.regions, r)
	owner.markDirty()
	return r
}

func (r *Region[M]) Vertices() []embedded.Vertex {
	out := make([]embedded.Vertex, len(r.vertices))
	for i, v := range r.vertices {
		out[i] = v
	}
	return out
}

// State returns the Region's owning State.
func (r *Region[M]) State() *Vertex[M] { return r.owner }

// ChildVertices exposes the typed, ordered children for the compiler and
// evaluator, which need *Vertex[M] rather than the embedded.Vertex
// interface.
func (r *Region[M]) ChildVertices() []*Vertex[M] { return r.vertices }

// initialPseudoState returns the first child pseudostate whose kind is
// Initial, ShallowHistory or DeepHistory — spec §4.4's "region_initial".
func (r *Region[M]) initialPseudoState() *Vertex[M] {
	for _, v := range r.vertices {
		if isKind(v.kind, kindInitial, kindShallowHistory, kindDeepHistory) {
			return v
		}
	}
	return nil
}

func (r *Region[M]) addVertex(v *Vertex[M]) {
	r.vertices = append(r.vertices, v)
	v.owner = r
}

// removeVertex detaches v from this region's ordered children. It is a
// no-op if v is not currently a child.
func (r *Region[M]) removeVertex(v *Vertex[M]) {
	for i, child := range r.vertices {
		if child == v {
			r.vertices = append(r.vertices[:i], r.vertices[i+1:]...)
			return
		}
	}
}
