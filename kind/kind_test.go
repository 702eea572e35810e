package kind_test

import (
	"testing"

	"github.com/latticefsm/hsm/kind"
)

func TestKinds(t *testing.T) {
	if !kind.IsKind(kind.StateMachine, kind.State) {
		t.Errorf("StateMachine should be a State")
	}
	if kind.IsKind(kind.StateMachine, kind.Transition) {
		t.Errorf("StateMachine should not be a Transition")
	}
	if !kind.IsKind(kind.State, kind.Vertex) {
		t.Errorf("State should be a Vertex")
	}
	if kind.IsKind(kind.State, kind.Transition) {
		t.Errorf("State should not be a Transition")
	}
	if !kind.IsKind(kind.Choice, kind.Pseudostate) {
		t.Errorf("Choice should be a Pseudostate")
	}
	if !kind.IsKind(kind.Choice, kind.Vertex) {
		t.Errorf("Choice should be a Vertex")
	}
	if !kind.IsHistory(kind.ShallowHistory) {
		t.Errorf("ShallowHistory should be a history kind")
	}
	if !kind.IsHistory(kind.DeepHistory) {
		t.Errorf("DeepHistory should be a history kind")
	}
	if kind.IsHistory(kind.Initial) {
		t.Errorf("Initial should not be a history kind")
	}
}
