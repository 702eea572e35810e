// Package plantuml renders a compiled model as a PlantUML state diagram,
// the same debugging visualizer the teacher carried for its own flat,
// namespace-addressed model — adapted here to walk this module's
// Region/Vertex tree directly instead of scanning a qualifiedName-keyed
// map for children.
package plantuml

import (
	"fmt"
	"io"
	"strings"

	"github.com/latticefsm/hsm/embedded"
	"github.com/latticefsm/hsm/kind"
)

func id(qualifiedName string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_")
	out := r.Replace(qualifiedName)
	if out == "" {
		return "root"
	}
	return out
}

func tag(k uint64) string {
	switch {
	case kind.IsKind(k, kind.Choice):
		return " <<choice>>"
	case kind.IsKind(k, kind.Junction):
		return " <<junction>>"
	case kind.IsKind(k, kind.Terminate):
		return " <<end>>"
	case kind.IsKind(k, kind.Initial):
		return " <<initial>>"
	case kind.IsKind(k, kind.ShallowHistory):
		return " <<history>>"
	case kind.IsKind(k, kind.DeepHistory):
		return " <<history*>>"
	default:
		return ""
	}
}

func transitionLabel(t embedded.Transition) string {
	switch t.TransitionKind() {
	case embedded.InternalKind:
		return "internal"
	case embedded.LocalKind:
		return "local"
	default:
		return ""
	}
}

// Generate writes root and everything reachable under it as a PlantUML
// state diagram to w.
func Generate(w io.Writer, root embedded.State) error {
	var b strings.Builder
	fmt.Fprintf(&b, "@startuml %s\n", id(root.QualifiedName()))
	writeVertex(&b, 1, root)
	fmt.Fprintln(&b, "@enduml")
	_, err := w.Write([]byte(b.String()))
	return err
}

func writeVertex(b *strings.Builder, depth int, v embedded.Vertex) {
	indent := strings.Repeat("  ", depth)
	nodeID := id(v.QualifiedName())

	state, isState := v.(embedded.State)
	if isState && len(state.Regions()) > 0 {
		fmt.Fprintf(b, "%sstate %s {\n", indent, nodeID)
		for ri, region := range state.Regions() {
			if ri > 0 {
				fmt.Fprintf(b, "%s  --\n", indent)
			}
			for _, child := range region.Vertices() {
				writeVertex(b, depth+1, child)
			}
		}
		fmt.Fprintf(b, "%s}\n", indent)
	} else {
		fmt.Fprintf(b, "%sstate %s%s\n", indent, nodeID, tag(v.Kind()))
	}

	writeOutgoing(b, depth, v)
}

func writeOutgoing(b *strings.Builder, depth int, v embedded.Vertex) {
	indent := strings.Repeat("  ", depth)
	source := "[*]"
	if !kind.IsKind(v.Kind(), kind.Initial) {
		source = id(v.QualifiedName())
	}
	for _, t := range v.Outgoing() {
		label := transitionLabel(t)
		target := t.Target()
		if target == nil {
			fmt.Fprintf(b, "%sstate %s : %s\n", indent, source, orDash(label))
			continue
		}
		if label == "" {
			fmt.Fprintf(b, "%s%s --> %s\n", indent, source, id(target.QualifiedName()))
		} else {
			fmt.Fprintf(b, "%s%s --> %s : %s\n", indent, source, id(target.QualifiedName()), label)
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
