// Package diagnostics renders the findings of hsm.Validate as YAML, the
// same family of "list of structured warnings" the engine's default
// Console otherwise only ever writes to a log stream.
package diagnostics

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Severity classifies how serious a Diagnostic is. A model with only
// SeverityWarning entries still compiles and runs; one with any
// SeverityError entry describes behavior the evaluator is expected to
// either refuse at runtime or only partially honor.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic describes one finding against a single model element,
// addressed by its qualified name rather than a live reference so this
// package never needs to import the model it is reporting on.
type Diagnostic struct {
	Severity Severity `yaml:"severity"`
	Element  string   `yaml:"element"`
	Message  string   `yaml:"message"`
}

// Report is the full result of one Validate call, plus whether the model
// is usable at all (no SeverityError diagnostics).
type Report struct {
	OK          bool         `yaml:"ok"`
	Diagnostics []Diagnostic `yaml:"diagnostics"`
}

// NewReport builds a Report from diags, computing OK from the absence of
// any SeverityError entry.
func NewReport(diags []Diagnostic) Report {
	r := Report{OK: true, Diagnostics: diags}
	for _, d := range diags {
		if d.Severity == SeverityError {
			r.OK = false
			break
		}
	}
	return r
}

// Render writes r to w as YAML.
func Render(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}
