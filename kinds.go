package hsm

import "github.com/latticefsm/hsm/kind"

// Local, unexported aliases onto the kind package's bit-packed tags, so
// the rest of this package reads as plain identifiers instead of
// kind.Foo everywhere a tag is checked or assigned.
var (
	kindRegion         = kind.Region
	kindVertex         = kind.Vertex
	kindState          = kind.State
	kindFinalState     = kind.FinalState
	kindStateMachine   = kind.StateMachine
	kindPseudostate    = kind.Pseudostate
	kindInitial        = kind.Initial
	kindShallowHistory = kind.ShallowHistory
	kindDeepHistory    = kind.DeepHistory
	kindChoice         = kind.Choice
	kindJunction       = kind.Junction
	kindTerminate      = kind.Terminate
	kindTransition     = kind.Transition
	kindInternal       = kind.Internal
	kindLocal          = kind.Local
	kindExternal       = kind.External
)

func isKind(k uint64, bases ...uint64) bool { return kind.IsKind(k, bases...) }
