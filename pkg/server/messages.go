package server

import (
	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/store"
)

// Message types pushed by the server.
const (
	MsgPanels = "panels"
	MsgValues = "values"
	MsgAction = "action"
	MsgSaved  = "saved"
	MsgError  = "error"
)

// Message types accepted from clients.
const (
	MsgUpdate = "update"
	MsgMode   = "mode"
	MsgLoad   = "load"
	MsgSave   = "save"
	MsgClear  = "clear"
	MsgRename = "rename"
	MsgDelete = "delete"
	// MsgAction doubles as the client request that fires an action.
)

// PanelsMessage lists every registered panel. It is sent on connect and
// whenever a panel is registered or removed.
type PanelsMessage struct {
	Type   string        `json:"type"`
	Panels []store.Panel `json:"panels"`
}

// PresetRef names a preset without its values.
type PresetRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ValuesMessage carries a panel's snapshot after a change. Clients should
// ignore messages whose Version is lower than one already applied.
type ValuesMessage struct {
	Type           string            `json:"type"`
	PanelID        string            `json:"panelId"`
	Op             store.Op          `json:"op,omitempty"`
	Path           string            `json:"path,omitempty"`
	Version        uint64            `json:"version"`
	Values         map[string]any    `json:"values"`
	Modes          map[string]string `json:"modes"`
	ActivePresetID string            `json:"activePresetId"`
	Presets        []PresetRef       `json:"presets"`
}

// ActionMessage reports a fired action.
type ActionMessage struct {
	Type    string `json:"type"`
	PanelID string `json:"panelId"`
	Path    string `json:"path"`
}

// SavedMessage answers a save request with the new preset's id.
type SavedMessage struct {
	Type    string `json:"type"`
	PanelID string `json:"panelId"`
	ID      string `json:"id"`
	Name    string `json:"name"`
}

// ErrorMessage answers a request that failed.
type ErrorMessage struct {
	Type    string            `json:"type"`
	Request string            `json:"request,omitempty"`
	Error   *errors.DialError `json:"error"`
}

func (h *Hub) panelsMessage() PanelsMessage {
	return PanelsMessage{Type: MsgPanels, Panels: h.store.Panels()}
}

func (h *Hub) valuesMessage(id string, op store.Op, path string) ValuesMessage {
	snap := h.store.Values(id)
	presets := h.store.Presets(id)
	refs := make([]PresetRef, len(presets))
	for i, p := range presets {
		refs[i] = PresetRef{ID: p.ID, Name: p.Name}
	}
	return ValuesMessage{
		Type:           MsgValues,
		PanelID:        id,
		Op:             op,
		Path:           path,
		Version:        snap.Version,
		Values:         snap.Values,
		Modes:          snap.Modes,
		ActivePresetID: h.store.ActivePresetID(id),
		Presets:        refs,
	}
}
