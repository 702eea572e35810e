package hsm

import "github.com/latticefsm/hsm/embedded"

// Instance is the mutable surface the evaluator depends on. The model
// never mutates it directly; only the evaluator, for the duration of one
// Evaluate call, reads and writes it. Alternate implementations (e.g.
// persistence-backed) only need to satisfy this interface — spec §6.
type Instance = embedded.Instance

// MapInstance is the default Instance: an in-memory region->vertex map
// plus a termination flag, exactly the "opaque mapping region->state"
// spec §1 scopes instances down to.
type MapInstance struct {
	id          string
	current     map[string]embedded.Vertex
	terminated  bool
}

// NewInstance allocates a fresh, untouched MapInstance. Its current map
// is populated by InitialiseInstance(model, instance), never by the constructor.
func NewInstance() *MapInstance {
	return &MapInstance{id: newID(), current: make(map[string]embedded.Vertex)}
}

// Id returns the instance's identity, minted once at construction. The
// engine itself never reads it; no trace span is tagged with it.
func (i *MapInstance) Id() string { return i.id }

func (i *MapInstance) IsTerminated() bool { return i.terminated }

func (i *MapInstance) SetTerminated(terminated bool) { i.terminated = terminated }

func (i *MapInstance) SetCurrent(region embedded.Region, state embedded.Vertex) {
	if region == nil {
		return
	}
	i.current[region.QualifiedName()] = state
}

func (i *MapInstance) GetCurrent(region embedded.Region) (embedded.Vertex, bool) {
	if region == nil {
		return nil, false
	}
	v, ok := i.current[region.QualifiedName()]
	return v, ok
}
