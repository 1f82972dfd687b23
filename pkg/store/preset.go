package store

import (
	"github.com/google/uuid"
)

// Preset is a named set of values and modes owned by one panel.
type Preset struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Values map[string]any    `json:"values"`
	Modes  map[string]string `json:"modes"`
}

func (p *Preset) clone() Preset {
	return Preset{
		ID:     p.ID,
		Name:   p.Name,
		Values: copyValues(p.Values),
		Modes:  copyModes(p.Modes),
	}
}

// SavePreset captures the panel's current values and modes under name,
// makes the new preset active and returns its id.
func (s *Store) SavePreset(id, name string) (string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", ErrClosed
	}
	p, ok := s.panels[id]
	if !ok {
		s.mu.Unlock()
		return "", ErrPanelNotFound
	}
	preset := &Preset{
		ID:     uuid.NewString(),
		Name:   name,
		Values: copyValues(p.snap.Values),
		Modes:  copyModes(p.snap.Modes),
	}
	p.presets = append(p.presets, preset)
	p.active = preset.ID
	s.bump()
	n := s.panelChange(p, OpPresetSave, "")
	s.mu.Unlock()

	s.logger.Debug("preset saved", "panel", id, "preset", preset.ID, "name", name)
	n.send()
	return preset.ID, nil
}

// LoadPreset replaces the panel's values and modes with the preset's and
// makes it active. Unknown panels and presets are ignored.
func (s *Store) LoadPreset(id, presetID string) {
	s.mu.Lock()
	p, ok := s.livePanel(id)
	if !ok {
		s.mu.Unlock()
		return
	}
	preset := p.preset(presetID)
	if preset == nil {
		s.mu.Unlock()
		return
	}
	p.active = preset.ID
	s.replaceSnapshot(p, copyValues(preset.Values), copyModes(preset.Modes))
	n := s.panelChange(p, OpPresetLoad, "")
	s.mu.Unlock()

	n.send()
}

// DeletePreset removes a preset. Deleting the active preset clears the
// active pointer but leaves the current values in effect.
func (s *Store) DeletePreset(id, presetID string) {
	s.mu.Lock()
	p, ok := s.livePanel(id)
	if !ok {
		s.mu.Unlock()
		return
	}
	idx := -1
	for i, preset := range p.presets {
		if preset.ID == presetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	p.presets = append(p.presets[:idx:idx], p.presets[idx+1:]...)
	if p.active == presetID {
		p.active = ""
	}
	s.bump()
	n := s.panelChange(p, OpPresetDelete, "")
	s.mu.Unlock()

	n.send()
}

// RenamePreset changes a preset's name. Unknown panels and presets are
// ignored.
func (s *Store) RenamePreset(id, presetID, name string) {
	s.mu.Lock()
	p, ok := s.livePanel(id)
	if !ok {
		s.mu.Unlock()
		return
	}
	preset := p.preset(presetID)
	if preset == nil || preset.Name == name {
		s.mu.Unlock()
		return
	}
	preset.Name = name
	s.bump()
	n := s.panelChange(p, OpPresetRename, "")
	s.mu.Unlock()

	n.send()
}

// ClearActivePreset restores the panel's base values and modes and clears
// the active preset.
func (s *Store) ClearActivePreset(id string) {
	s.mu.Lock()
	p, ok := s.livePanel(id)
	if !ok {
		s.mu.Unlock()
		return
	}
	p.active = ""
	s.replaceSnapshot(p, copyValues(p.base), copyModes(p.baseModes))
	n := s.panelChange(p, OpPresetClear, "")
	s.mu.Unlock()

	n.send()
}

// Presets returns copies of the panel's presets in save order.
func (s *Store) Presets(id string) []Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.livePanel(id)
	if !ok {
		return nil
	}
	out := make([]Preset, len(p.presets))
	for i, preset := range p.presets {
		out[i] = preset.clone()
	}
	return out
}

// ActivePresetID returns the id of the active preset, or "".
func (s *Store) ActivePresetID(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.livePanel(id); ok {
		return p.active
	}
	return ""
}

func (p *panel) preset(id string) *Preset {
	for _, preset := range p.presets {
		if preset.ID == id {
			return preset
		}
	}
	return nil
}
