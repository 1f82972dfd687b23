package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dialkit-go/dialkit/pkg/control"
)

// Panel describes a registered panel.
type Panel struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Controls       *control.Node     `json:"controls"`
	Values         map[string]any    `json:"values"`
	Modes          map[string]string `json:"modes"`
	Version        uint64            `json:"version"`
	ActivePresetID string            `json:"activePresetId,omitempty"`
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers fn to be called after the listeners of every
// change, including panel changes nobody subscribed to.
func WithObserver(fn func(Change)) Option {
	return func(s *Store) {
		s.observer = fn
	}
}

// Store holds registered panels, their values and presets.
type Store struct {
	mu       sync.Mutex
	closed   bool
	version  uint64
	logger   *slog.Logger
	observer func(Change)

	panels map[string]*panel
	order  []string

	listeners map[string]*listenerSet[Listener]
	actions   map[string]*listenerSet[ActionListener]
	global    listenerSet[Listener]
}

type panel struct {
	id     string
	name   string
	tree   *control.Tree
	schema control.Schema
	snap   *Snapshot

	presets   []*Preset
	active    string
	base      map[string]any
	baseModes map[string]string
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		logger:    slog.Default().With("component", "store"),
		panels:    make(map[string]*panel),
		listeners: make(map[string]*listenerSet[Listener]),
		actions:   make(map[string]*listenerSet[ActionListener]),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close drops all panels and listeners. Later calls are no-ops, Values
// returns EmptySnapshot and SavePreset returns ErrClosed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.panels = nil
	s.order = nil
	s.listeners = nil
	s.actions = nil
	s.global = listenerSet[Listener]{}
	s.logger.Debug("store closed")
}

// RegisterPanel builds the schema of tree and installs the panel under id
// with its default values. Registering an existing id replaces all of its
// state, presets included; listeners subscribed to id are kept.
func (s *Store) RegisterPanel(id, name string, tree *control.Tree) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	n := s.register(id, name, tree)
	s.mu.Unlock()

	n.send()
}

// Register installs tree under an id derived from name and returns it.
// The first panel of a name gets the name itself, later ones "name-2",
// "name-3" and so on. It returns "" after Close.
func (s *Store) Register(name string, tree *control.Tree) string {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}
	id := name
	for i := 2; ; i++ {
		if _, taken := s.panels[id]; !taken {
			break
		}
		id = fmt.Sprintf("%s-%d", name, i)
	}
	n := s.register(id, name, tree)
	s.mu.Unlock()

	n.send()
	return id
}

func (s *Store) register(id, name string, tree *control.Tree) notification {
	schema := control.Build(tree, control.WithLogger(s.logger.With("panel", id)))
	p := &panel{
		id:        id,
		name:      name,
		tree:      tree,
		schema:    schema,
		base:      copyValues(schema.Values),
		baseModes: copyModes(schema.Modes),
	}
	if _, exists := s.panels[id]; !exists {
		s.order = append(s.order, id)
	}
	s.panels[id] = p
	s.replaceSnapshot(p, copyValues(schema.Values), copyModes(schema.Modes))

	s.logger.Debug("panel registered", "panel", id, "name", name, "controls", len(schema.Leaves))

	change := Change{PanelID: id, Op: OpRegister, Version: s.version}
	listeners := s.global.snapshot()
	listeners = append(listeners, s.listeners[id].snapshot()...)
	return notification{change: change, listeners: listeners, observer: s.observer}
}

// UnregisterPanel removes a panel with its presets and its panel and action
// listeners, then notifies global listeners.
func (s *Store) UnregisterPanel(id string) {
	s.mu.Lock()
	if _, ok := s.livePanel(id); !ok {
		s.mu.Unlock()
		return
	}
	delete(s.panels, id)
	delete(s.listeners, id)
	delete(s.actions, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	s.bump()
	n := notification{
		change:    Change{PanelID: id, Op: OpUnregister, Version: s.version},
		listeners: s.global.snapshot(),
		observer:  s.observer,
	}
	s.mu.Unlock()

	s.logger.Debug("panel unregistered", "panel", id)
	n.send()
}

// UpdateValue coerces value to the type of the control at path and stores
// it. Unknown panels and paths, and values the control cannot hold, are
// ignored. The value is written through to the active preset; with no
// active preset it is written to the base values if the panel has any
// presets.
func (s *Store) UpdateValue(id, path string, value any) {
	s.mu.Lock()
	p, ok := s.livePanel(id)
	if !ok || p.schema.Leaves[path] == nil {
		s.mu.Unlock()
		return
	}
	v, ok := control.Coerce(p.schema.Leaves[path], value)
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("value rejected", "panel", id, "path", path, "type", fmt.Sprintf("%T", value))
		return
	}
	p.writeValue(path, v)
	values := copyValues(p.snap.Values)
	values[path] = cloneValue(v)
	s.replaceSnapshot(p, values, p.snap.Modes)
	n := s.panelChange(p, OpValue, path)
	s.mu.Unlock()

	n.send()
}

// UpdateMode stores the UI mode of the control at path, following the same
// write-through rules as UpdateValue.
func (s *Store) UpdateMode(id, path, mode string) {
	s.mu.Lock()
	p, ok := s.livePanel(id)
	if !ok || p.schema.Leaves[path] == nil {
		s.mu.Unlock()
		return
	}
	p.writeMode(path, mode)
	modes := copyModes(p.snap.Modes)
	modes[path] = mode
	s.replaceSnapshot(p, p.snap.Values, modes)
	n := s.panelChange(p, OpMode, path)
	s.mu.Unlock()

	n.send()
}

// SwitchSpringMode sets the mode of the spring at path and converts its
// stored record to that mode's fields as a single change. Controls that
// are not springs and modes other than time and physics are ignored.
func (s *Store) SwitchSpringMode(id, path, mode string) {
	if mode != control.ModeTime && mode != control.ModePhysics {
		return
	}
	s.mu.Lock()
	p, ok := s.livePanel(id)
	if !ok || p.schema.Leaves[path] == nil || p.schema.Leaves[path].Kind != control.KindSpring {
		s.mu.Unlock()
		return
	}
	values := p.snap.Values
	if rec, ok := values[path].(control.Record); ok {
		switched := control.SwitchSpringMode(rec, mode)
		p.writeValue(path, switched)
		values = copyValues(values)
		values[path] = cloneValue(switched)
	}
	p.writeMode(path, mode)
	modes := copyModes(p.snap.Modes)
	modes[path] = mode
	s.replaceSnapshot(p, values, modes)
	n := s.panelChange(p, OpMode, path)
	s.mu.Unlock()

	n.send()
}

// Mode returns the UI mode of the control at path, or control.DefaultMode.
func (s *Store) Mode(id, path string) string {
	return s.Values(id).Mode(path)
}

// Values returns the panel's current snapshot. The pointer is stable until
// the panel's next mutation. Absent panels return EmptySnapshot.
func (s *Store) Values(id string) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.livePanel(id); ok {
		return p.snap
	}
	return EmptySnapshot
}

// Resolve rebuilds the panel's configuration tree with its current values.
// Absent panels resolve to an empty result.
func (s *Store) Resolve(id string) control.Result {
	s.mu.Lock()
	p, ok := s.livePanel(id)
	if !ok {
		s.mu.Unlock()
		return control.Result{}
	}
	tree, values := p.tree, p.snap.Values
	s.mu.Unlock()

	return control.Resolve(tree, values)
}

// Control returns the metadata node of the leaf at path.
func (s *Store) Control(id, path string) (*control.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.livePanel(id)
	if !ok {
		return nil, false
	}
	node, ok := p.schema.Leaves[path]
	return node, ok
}

// Panels returns descriptors of all panels in registration order.
func (s *Store) Panels() []Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Panel, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.panels[id].describe())
	}
	return out
}

// Panel returns the descriptor of one panel.
func (s *Store) Panel(id string) (Panel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.livePanel(id)
	if !ok {
		return Panel{}, false
	}
	return p.describe(), true
}

// Subscribe registers fn for changes of panel id. The panel does not have
// to be registered yet. The returned func unsubscribes and may be called
// more than once.
func (s *Store) Subscribe(id string, fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || fn == nil {
		return func() {}
	}
	set := s.listeners[id]
	if set == nil {
		set = &listenerSet[Listener]{}
		s.listeners[id] = set
	}
	lid := set.add(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if set := s.listeners[id]; set != nil && set.remove(lid) && set.len() == 0 {
			delete(s.listeners, id)
		}
	}
}

// SubscribeGlobal registers fn for panel registration and removal.
func (s *Store) SubscribeGlobal(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || fn == nil {
		return func() {}
	}
	lid := s.global.add(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.global.remove(lid)
	}
}

// SubscribeActions registers fn for actions triggered on panel id.
func (s *Store) SubscribeActions(id string, fn ActionListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || fn == nil {
		return func() {}
	}
	set := s.actions[id]
	if set == nil {
		set = &listenerSet[ActionListener]{}
		s.actions[id] = set
	}
	lid := set.add(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if set := s.actions[id]; set != nil && set.remove(lid) && set.len() == 0 {
			delete(s.actions, id)
		}
	}
}

// TriggerAction calls the panel's action listeners with path. Nothing is
// stored. Absent panels are ignored.
func (s *Store) TriggerAction(id, path string) {
	s.mu.Lock()
	if _, ok := s.livePanel(id); !ok {
		s.mu.Unlock()
		return
	}
	fns := s.actions[id].snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(path)
	}
}

// livePanel must be called with s.mu held.
func (s *Store) livePanel(id string) (*panel, bool) {
	if s.closed {
		return nil, false
	}
	p, ok := s.panels[id]
	return p, ok
}

// bump advances the store generation. Called with s.mu held.
func (s *Store) bump() {
	s.version++
}

// replaceSnapshot installs a new snapshot holding values and modes, which
// must not be modified afterwards. Called with s.mu held.
func (s *Store) replaceSnapshot(p *panel, values map[string]any, modes map[string]string) {
	s.bump()
	p.snap = &Snapshot{
		PanelID: p.id,
		Version: s.version,
		Values:  values,
		Modes:   modes,
	}
}

// panelChange prepares the notification of a panel mutation. Called with
// s.mu held.
func (s *Store) panelChange(p *panel, op Op, path string) notification {
	return notification{
		change:    Change{PanelID: p.id, Op: op, Path: path, Version: s.version},
		listeners: s.listeners[p.id].snapshot(),
		observer:  s.observer,
	}
}

// writeValue records v in the active preset, or in the base values when the
// panel has presets but none is active. p's store lock must be held.
func (p *panel) writeValue(path string, v any) {
	if preset := p.preset(p.active); preset != nil {
		preset.Values[path] = cloneValue(v)
	} else if len(p.presets) > 0 {
		p.base[path] = cloneValue(v)
	}
}

// writeMode is writeValue for modes.
func (p *panel) writeMode(path, mode string) {
	if preset := p.preset(p.active); preset != nil {
		preset.Modes[path] = mode
	} else if len(p.presets) > 0 {
		p.baseModes[path] = mode
	}
}

func (p *panel) describe() Panel {
	return Panel{
		ID:             p.id,
		Name:           p.name,
		Controls:       p.schema.Root,
		Values:         copyValues(p.snap.Values),
		Modes:          copyModes(p.snap.Modes),
		Version:        p.snap.Version,
		ActivePresetID: p.active,
	}
}

// notification is a change plus the callbacks captured for it under the
// store lock.
type notification struct {
	change    Change
	listeners []Listener
	observer  func(Change)
}

func (n notification) send() {
	for _, fn := range n.listeners {
		fn(n.change)
	}
	if n.observer != nil {
		n.observer(n.change)
	}
}
