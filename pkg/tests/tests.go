// Package tests is a scenario-driven harness for exercising a compiled
// model step by step, growing the teacher's empty Run(t, sm, events)
// stub into something that actually drives hsm.Evaluate and asserts on
// the resulting instance state with testify.
package tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticefsm/hsm"
	"github.com/latticefsm/hsm/embedded"
)

// Step is one message dispatched into a Scenario, plus what should be
// true of the instance afterward.
type Step[M any] struct {
	Name      string
	Message   M
	WantFired bool
	Check     func(t *testing.T, instance hsm.Instance)
}

// Scenario pairs a compiled model with the instance Steps are run
// against.
type Scenario[M any] struct {
	Model    *hsm.Vertex[M]
	Instance hsm.Instance
}

// Run dispatches every step's Message into the scenario's Instance in
// order, asserting WantFired and, if set, Check after each one. Steps
// run as subtests named by Step.Name so a failure midway still reports
// which step failed.
func Run[M any](t *testing.T, scenario Scenario[M], steps ...Step[M]) {
	t.Helper()
	for _, step := range steps {
		step := step
		t.Run(step.Name, func(t *testing.T) {
			fired := hsm.Evaluate(scenario.Model, scenario.Instance, step.Message)
			require.Equal(t, step.WantFired, fired, "Evaluate(%q) fired", step.Name)
			if step.Check != nil {
				step.Check(t, scenario.Instance)
			}
		})
	}
}

// AssertActive asserts that region's current vertex in instance has
// qualifiedName wantName.
func AssertActive(t *testing.T, instance hsm.Instance, region embedded.Region, wantName string) {
	t.Helper()
	cur, ok := instance.GetCurrent(region)
	require.True(t, ok, "region %s has no current state", region.QualifiedName())
	require.NotNil(t, cur)
	require.Equal(t, wantName, cur.QualifiedName())
}
