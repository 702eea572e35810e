package hsm

import (
	"github.com/latticefsm/hsm/embedded"
	"github.com/latticefsm/hsm/pkg/diagnostics"
	"github.com/latticefsm/hsm/pkg/set"
)

// Validate walks the whole model and reports every structural invariant
// violation it can find without ever running user code — spec §6/§7.1.
// It does not require the model to have been compiled first.
func Validate[M any](model *Vertex[M]) diagnostics.Report {
	var diags []diagnostics.Diagnostic
	seenNames := set.New[string]()
	var walkVertex func(v *Vertex[M])
	var walkRegion func(r *Region[M])

	claim := func(qualifiedName string) bool {
		if seenNames.Contains(qualifiedName) {
			return false
		}
		seenNames.Add(qualifiedName)
		return true
	}

	walkVertex = func(v *Vertex[M]) {
		if !claim(v.qualifiedName) {
			diags = append(diags, diagnostics.Diagnostic{
				Severity: diagnostics.SeverityError,
				Element:  v.qualifiedName,
				Message:  "duplicate qualified name in model",
			})
		}
		switch {
		case isKind(v.kind, kindFinalState):
			if len(v.outgoing) > 0 {
				diags = append(diags, diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Element:  v.qualifiedName,
					Message:  "final state has outgoing transitions",
				})
			}
			if len(v.regions) > 0 {
				diags = append(diags, diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Element:  v.qualifiedName,
					Message:  "final state has child regions",
				})
			}
		case isKind(v.kind, kindInitial, kindShallowHistory, kindDeepHistory):
			if len(v.outgoing) != 1 {
				diags = append(diags, diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Element:  v.qualifiedName,
					Message:  "initial or history pseudostate must have exactly one outgoing transition",
				})
			} else if v.outgoing[0].guard.IsSet() && !isAlwaysTrueGuard(v.outgoing[0].guard) {
				diags = append(diags, diagnostics.Diagnostic{
					Severity: diagnostics.SeverityWarning,
					Element:  v.outgoing[0].qualifiedName,
					Message:  "initial or history transition should not carry a conditional guard",
				})
			}
		case isKind(v.kind, kindTerminate):
			if len(v.outgoing) > 0 {
				diags = append(diags, diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Element:  v.qualifiedName,
					Message:  "terminate pseudostate has outgoing transitions",
				})
			}
		case isKind(v.kind, kindChoice, kindJunction):
			elseCount := 0
			for _, t := range v.outgoing {
				if t.guard.IsElse() {
					elseCount++
				}
			}
			if elseCount > 1 {
				diags = append(diags, diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Element:  v.qualifiedName,
					Message:  "more than one else-transition out of a choice or junction",
				})
			}
			if len(v.outgoing) == 0 {
				diags = append(diags, diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Element:  v.qualifiedName,
					Message:  "choice or junction has no outgoing transitions",
				})
			}
		}

		for _, t := range v.outgoing {
			if t.target == nil {
				continue
			}
			if t.tkind == embedded.LocalKind && !isDescendant(t.target, t.source) {
				diags = append(diags, diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Element:  t.qualifiedName,
					Message:  "local transition's target is not a descendant of its source",
				})
			}
			if t.guard.IsElse() && !isKind(v.kind, kindChoice, kindJunction) {
				diags = append(diags, diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Element:  t.qualifiedName,
					Message:  "else-transition is only valid out of a choice or junction",
				})
			}
		}

		for _, r := range v.regions {
			walkRegion(r)
		}
	}

	walkRegion = func(r *Region[M]) {
		// spec §3: at most one Initial, at most one ShallowHistory, at
		// most one DeepHistory — three independent limits, not one
		// combined limit, so a region with exactly one of each is
		// well-formed.
		var initials, shallowHistories, deepHistories int
		for _, v := range r.vertices {
			switch {
			case isKind(v.kind, kindInitial):
				initials++
			case isKind(v.kind, kindShallowHistory):
				shallowHistories++
			case isKind(v.kind, kindDeepHistory):
				deepHistories++
			}
		}
		if initials > 1 {
			diags = append(diags, diagnostics.Diagnostic{
				Severity: diagnostics.SeverityError,
				Element:  r.qualifiedName,
				Message:  "region has more than one initial pseudostate",
			})
		}
		if shallowHistories > 1 {
			diags = append(diags, diagnostics.Diagnostic{
				Severity: diagnostics.SeverityError,
				Element:  r.qualifiedName,
				Message:  "region has more than one shallow history pseudostate",
			})
		}
		if deepHistories > 1 {
			diags = append(diags, diagnostics.Diagnostic{
				Severity: diagnostics.SeverityError,
				Element:  r.qualifiedName,
				Message:  "region has more than one deep history pseudostate",
			})
		}
		for _, v := range r.vertices {
			walkVertex(v)
		}
	}

	walkVertex(model)
	return diagnostics.NewReport(diags)
}

func isAlwaysTrueGuard[M any](g Guard[M]) bool {
	return g.kind == guardAlwaysTrue
}
