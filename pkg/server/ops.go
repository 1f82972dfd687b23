package server

import (
	"context"
	"fmt"
	"time"

	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/control"
	"github.com/dialkit-go/dialkit/pkg/export"
	"github.com/dialkit-go/dialkit/pkg/store"
)

// The operations below are shared by the HTTP handlers and the WebSocket
// hub. They validate input against the panel's schema and return coded
// errors; the store itself treats unknown panels as no-ops.

func (s *Server) panel(id string) (store.Panel, error) {
	p, ok := s.store.Panel(id)
	if !ok {
		return store.Panel{}, errors.New("D001").WithDetail(fmt.Sprintf("no panel %q", id))
	}
	return p, nil
}

func (s *Server) leaf(id, path string) (*control.Node, error) {
	node, ok := s.store.Control(id, path)
	if ok {
		return node, nil
	}
	if _, err := s.panel(id); err != nil {
		return nil, err
	}
	return nil, errors.New("D003").WithDetail(fmt.Sprintf("panel %q has no control %q", id, path))
}

// updateValue coerces raw to the control's type and stores it.
func (s *Server) updateValue(id, path string, raw any) (any, error) {
	node, err := s.leaf(id, path)
	if err != nil {
		return nil, err
	}
	v, ok := control.Coerce(node, raw)
	if !ok {
		return nil, errors.New("D061").
			WithDetail(fmt.Sprintf("%v is not a valid %s value for %q", raw, node.Kind, path))
	}
	s.store.UpdateValue(id, path, v)
	return v, nil
}

// updateMode switches a spring between time and physics mode. The stored
// spring record is converted to the new mode's fields in the same change.
func (s *Server) updateMode(id, path, mode string) error {
	node, err := s.leaf(id, path)
	if err != nil {
		return err
	}
	if mode != control.ModeTime && mode != control.ModePhysics {
		return errors.New("D061").WithDetail(fmt.Sprintf("unknown mode %q", mode)).
			WithSuggestion(`Use "time" or "physics".`)
	}
	if node.Kind != control.KindSpring {
		return errors.New("D061").WithDetail(fmt.Sprintf("%q is a %s control, not a spring", path, node.Kind))
	}
	s.store.SwitchSpringMode(id, path, mode)
	return nil
}

// trigger fires the action control at path.
func (s *Server) trigger(id, path string) error {
	node, err := s.leaf(id, path)
	if err != nil {
		return err
	}
	if node.Kind != control.KindAction {
		return errors.New("D003").WithDetail(fmt.Sprintf("%q is not an action", path))
	}
	s.store.TriggerAction(id, path)
	return nil
}

func (s *Server) savePreset(id, name string) (string, error) {
	presetID, err := s.store.SavePreset(id, name)
	switch {
	case err == store.ErrPanelNotFound:
		return "", errors.New("D001").WithDetail(fmt.Sprintf("no panel %q", id))
	case err == store.ErrClosed:
		return "", errors.New("D004")
	case err != nil:
		return "", err
	}
	return presetID, nil
}

// requirePreset fails unless the panel owns presetID.
func (s *Server) requirePreset(id, presetID string) error {
	if _, err := s.panel(id); err != nil {
		return err
	}
	for _, p := range s.store.Presets(id) {
		if p.ID == presetID {
			return nil
		}
	}
	return errors.New("D002").WithDetail(fmt.Sprintf("panel %q has no preset %q", id, presetID))
}

// renamePreset renames a preset. Empty names are rejected before the
// preset is looked up.
func (s *Server) renamePreset(id, presetID, name string) error {
	if name == "" {
		return errors.New("D060").WithDetail("preset name is empty")
	}
	if err := s.requirePreset(id, presetID); err != nil {
		return err
	}
	s.store.RenamePreset(id, presetID, name)
	return nil
}

func (s *Server) loadPreset(id, presetID string) error {
	if err := s.requirePreset(id, presetID); err != nil {
		return err
	}
	s.store.LoadPreset(id, presetID)
	return nil
}

func (s *Server) clearPreset(id string) error {
	if _, err := s.panel(id); err != nil {
		return err
	}
	s.store.ClearActivePreset(id)
	return nil
}

// document builds the export document of a panel.
func (s *Server) document(id string) ([]byte, error) {
	p, err := s.panel(id)
	if err != nil {
		return nil, err
	}
	return export.Document(p, s.store.Presets(id), s.store.Resolve(id))
}

// exportPanel writes the panel's document to the configured sink and
// returns the key it was stored under.
func (s *Server) exportPanel(ctx context.Context, id string) (string, error) {
	if s.config.Sink == nil {
		return "", errors.New("D162").
			WithSuggestion("Set export.dir or export.s3.bucket in dialkit.json.")
	}
	data, err := s.document(id)
	if err != nil {
		return "", err
	}
	key := export.Key(id, time.Now())
	err = s.config.Sink.Put(ctx, key, data)
	if s.config.Metrics != nil {
		s.config.Metrics.RecordExport(err)
	}
	if err != nil {
		return "", err
	}
	s.logger.Info("panel exported", "panel", id, "key", key)
	return key, nil
}
