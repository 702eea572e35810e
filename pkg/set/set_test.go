package set_test

import (
	"testing"

	"github.com/latticefsm/hsm/pkg/set"
)

func TestSet(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		s := set.New[string]("a", "b", "c")
		if s == nil {
			t.Error("Expected non-nil set")
		}
		if !s.Contains("a") {
			t.Error("Expected set to contain 'a'")
		}
		if !s.Contains("b") {
			t.Error("Expected set to contain 'b'")
		}
		if !s.Contains("c") {
			t.Error("Expected set to contain 'c'")
		}
	})

	t.Run("Add", func(t *testing.T) {
		s := set.Set[string]{}
		s.Add("test")
		if !s.Contains("test") {
			t.Error("Expected set to contain 'test'")
		}
	})

	t.Run("Contains", func(t *testing.T) {
		s := set.Set[string]{}
		if s.Contains("test") {
			t.Error("Expected set to not contain 'test'")
		}
		s.Add("test")
		if !s.Contains("test") {
			t.Error("Expected set to contain 'test'")
		}
	})
}
