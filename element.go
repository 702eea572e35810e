package hsm

import "github.com/google/uuid"

// NameSeparator joins a qualified name's path segments. It is a package
// variable, not per-model state, because spec §6 calls it out as globally
// configurable rather than a per-instance setting.
var NameSeparator = "."

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func joinName(owner, name string) string {
	if owner == "" {
		return name
	}
	return owner + NameSeparator + name
}

// element is the common embed for every model node: Region, Vertex,
// Transition. It is never constructed or referenced on its own.
type element struct {
	kind          uint64
	name          string
	qualifiedName string
	id            string
}

func newElement(k uint64, ownerQualifiedName, name string) element {
	return element{
		kind:          k,
		name:          name,
		qualifiedName: joinName(ownerQualifiedName, name),
		id:            newID(),
	}
}

func (e *element) Kind() uint64          { return e.kind }
func (e *element) Id() string            { return e.id }
func (e *element) Name() string          { return e.name }
func (e *element) QualifiedName() string { return e.qualifiedName }
