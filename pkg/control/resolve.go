package control

// Resolve rebuilds a result shaped like tree, taking each leaf's value from
// values when present and from the tree's literal default otherwise.
// Reserved keys and unrecognized entries are omitted. Resolve does not
// modify its arguments.
func Resolve(tree *Tree, values map[string]any) Result {
	var entries []Entry
	if tree != nil {
		entries = tree.entries
	}
	return resolveGroup(entries, "", values)
}

func resolveGroup(entries []Entry, prefix string, values map[string]any) Result {
	out := make(Result, len(entries))
	for _, e := range entries {
		if isReserved(e.Key) {
			continue
		}
		kind, ok := Classify(e.Value)
		if !ok {
			continue
		}
		path := joinPath(prefix, e.Key)

		if kind == KindGroup {
			children, _ := mappingEntries(e.Value)
			out[e.Key] = resolveGroup(children, path, values)
			continue
		}
		out[e.Key] = resolveLeaf(kind, e.Value, values, path)
	}
	return out
}

func resolveLeaf(kind Kind, v any, values map[string]any, path string) any {
	live, hasLive := values[path]
	switch kind {
	case KindChoice, KindText, KindColor:
		// These always resolve to a string.
		if s, ok := live.(string); ok {
			return s
		}
		return defaultValue(kind, v)
	default:
		if hasLive {
			return live
		}
		return defaultValue(kind, v)
	}
}
