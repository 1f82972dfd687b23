package control

import "log/slog"

// Node is the render-oriented description of one control or group.
type Node struct {
	Kind        Kind     `json:"kind"`
	Key         string   `json:"key"`
	Path        string   `json:"path"`
	Label       string   `json:"label"`
	Range       *Bounds  `json:"range,omitempty"`
	Options     []Option `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Collapsed   bool     `json:"collapsed,omitempty"`
	Default     any      `json:"default,omitempty"`
	Children    []*Node  `json:"children,omitempty"`
}

// Schema is the result of building a configuration tree.
type Schema struct {
	// Root is a group node whose children are the top-level controls.
	Root *Node

	// Values maps every leaf path to its initial value.
	Values map[string]any

	// Modes maps every spring path to its initial mode.
	Modes map[string]string

	// Leaves indexes the leaf nodes of Root by path.
	Leaves map[string]*Node
}

// BuildOption configures Build.
type BuildOption func(*builder)

// WithLogger logs dropped entries at debug level.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(b *builder) {
		b.logger = logger
	}
}

type builder struct {
	logger *slog.Logger
	schema Schema
}

// Build classifies every entry of tree and returns the control metadata,
// the initial flat values and the initial spring modes.
func Build(tree *Tree, opts ...BuildOption) Schema {
	b := &builder{
		schema: Schema{
			Values: make(map[string]any),
			Modes:  make(map[string]string),
			Leaves: make(map[string]*Node),
		},
	}
	for _, opt := range opts {
		opt(b)
	}

	root := &Node{Kind: KindGroup}
	var entries []Entry
	if tree != nil {
		entries = tree.entries
	}
	root.Collapsed = collapsed(entries)
	root.Children = b.group(entries, "")
	b.schema.Root = root
	return b.schema
}

func (b *builder) group(entries []Entry, prefix string) []*Node {
	var nodes []*Node
	for _, e := range entries {
		if isReserved(e.Key) {
			continue
		}
		path := joinPath(prefix, e.Key)
		kind, ok := Classify(e.Value)
		if !ok {
			if b.logger != nil {
				b.logger.Debug("dropping unrecognized config entry", "path", path)
			}
			continue
		}

		if kind == KindGroup {
			children, _ := mappingEntries(e.Value)
			nodes = append(nodes, &Node{
				Kind:      KindGroup,
				Key:       e.Key,
				Path:      path,
				Label:     Label(e.Key),
				Collapsed: collapsed(children),
				Children:  b.group(children, path),
			})
			continue
		}

		node := leaf(kind, e.Key, path, e.Value)
		b.schema.Values[path] = node.Default
		b.schema.Leaves[path] = node
		if kind == KindSpring {
			b.schema.Modes[path] = springMode(node.Default.(Record))
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// leaf builds the node of a classified leaf entry. Node.Default holds the
// initial flat value.
func leaf(kind Kind, key, path string, v any) *Node {
	n := &Node{Kind: kind, Key: key, Path: path, Label: Label(key)}
	rec, _ := asRecord(v)
	if l, ok := rec.String("label"); ok && l != "" && kind != KindAction {
		n.Label = l
	}

	switch kind {
	case KindRange:
		var b Bounds
		var def float64
		if t, ok := asTuple(v); ok {
			b, def = tupleBounds(t)
		} else if f, ok := toFloat(v); ok {
			b, def = InferBounds(f), f
		} else {
			b, def = recordBounds(rec)
		}
		n.Range = &b
		n.Default = def
	case KindChoice:
		n.Options = parseOptions(rec["options"])
		n.Default = choiceDefault(rec, n.Options)
	case KindText:
		if p, ok := rec.String("placeholder"); ok {
			n.Placeholder = p
		}
		n.Default = defaultValue(kind, v)
	default:
		n.Default = defaultValue(kind, v)
	}
	return n
}

// defaultValue returns the literal default of a leaf entry as the resolver
// sees it: bare literals are their own default, tagged records use their
// "default" field with a fixed fallback, and easing and action records are
// their own value. Springs are normalized to a single field family.
func defaultValue(kind Kind, v any) any {
	rec, isRec := asRecord(v)
	switch kind {
	case KindRange:
		if t, ok := asTuple(v); ok {
			_, def := tupleBounds(t)
			return def
		}
		if f, ok := toFloat(v); ok {
			return f
		}
		_, def := recordBounds(rec)
		return def
	case KindBoolean:
		if b, ok := v.(bool); ok {
			return b
		}
		b, _ := rec["default"].(bool)
		return b
	case KindText, KindColor:
		if s, ok := v.(string); ok {
			return s
		}
		if s, ok := rec.String("default"); ok {
			return s
		}
		if kind == KindColor {
			return FallbackColor
		}
		return ""
	case KindChoice:
		return choiceDefault(rec, parseOptions(rec["options"]))
	case KindSpring:
		if isRec {
			return normalizeSpring(rec)
		}
	case KindEasing, KindAction:
		if isRec {
			return rec.Clone()
		}
	}
	return nil
}

func choiceDefault(rec Record, options []Option) string {
	if s, ok := rec.String("default"); ok {
		return s
	}
	if len(options) > 0 {
		return options[0].Value
	}
	return ""
}

func collapsed(entries []Entry) bool {
	for _, e := range entries {
		if e.Key == CollapsedKey {
			b, _ := e.Value.(bool)
			return b
		}
	}
	return false
}
