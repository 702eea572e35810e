package hsm

// ancestry returns [root, ..., v]: v's region's parent state's ancestry
// with v appended. A StateMachine (owner == nil) has ancestry [self] —
// spec §4.1.
func ancestry[M any](v *Vertex[M]) []*Vertex[M] {
	if v.owner == nil {
		return []*Vertex[M]{v}
	}
	parent := ancestry(v.owner.owner)
	out := make([]*Vertex[M], len(parent)+1)
	copy(out, parent)
	out[len(parent)] = v
	return out
}

// lca returns the greatest index i such that a[0..=i] == b[0..=i],
// comparing vertices by identity. -1 means even the roots differ, which
// only happens for ancestries rooted in different machines — spec §4.1
// says using it in that case is undefined, so callers never probe it.
func lca[M any](a, b []*Vertex[M]) int {
	i := -1
	for i+1 < len(a) && i+1 < len(b) && a[i+1] == b[i+1] {
		i++
	}
	return i
}
