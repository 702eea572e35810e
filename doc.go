// Package hsm implements a hierarchical, event-driven finite state
// machine engine after UML State Machine semantics: composite and
// orthogonal states, entry/exit behavior, completion transitions,
// pseudostates (initial, shallow/deep history, choice, junction,
// terminate), and internal/local/external transitions.
//
// A Model is built once with the fluent constructors in builder.go,
// compiled by Initialise (or lazily by Evaluate), and then driven by
// repeated calls to Evaluate against an Instance. Evaluation is
// synchronous: the caller is responsible for serialising concurrent
// calls against the same Instance.
package hsm
