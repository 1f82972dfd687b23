package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dialkit-go/dialkit/internal/errors"
	"github.com/dialkit-go/dialkit/pkg/store"
)

// panelView is the body of GET /api/panels/{id}.
type panelView struct {
	store.Panel
	Presets []store.Preset `json:"presets"`
}

type presetsView struct {
	Presets        []store.Preset `json:"presets"`
	ActivePresetID string         `json:"activePresetId"`
}

type valueRequest struct {
	Value any `json:"value"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type nameRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"panels":  len(s.store.Panels()),
		"clients": s.hub.Clients(),
	})
}

func (s *Server) handleListPanels(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"panels": s.store.Panels()})
}

func (s *Server) handleGetPanel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.panel(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, panelView{Panel: p, Presets: s.store.Presets(id)})
}

func (s *Server) handleValues(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.panel(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.Values(id))
}

func (s *Server) handleResolved(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.panel(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.Resolve(id))
}

func (s *Server) handleUpdateValue(w http.ResponseWriter, r *http.Request) {
	id, path := chi.URLParam(r, "id"), chi.URLParam(r, "path")
	var req valueRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := s.updateValue(id, path, req.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"path": path, "value": v})
}

func (s *Server) handleUpdateMode(w http.ResponseWriter, r *http.Request) {
	id, path := chi.URLParam(r, "id"), chi.URLParam(r, "path")
	var req modeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.updateMode(id, path, req.Mode); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"path":  path,
		"mode":  req.Mode,
		"value": s.store.Values(id).Values[path],
	})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if err := s.trigger(chi.URLParam(r, "id"), chi.URLParam(r, "path")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.panel(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, presetsView{
		Presets:        s.store.Presets(id),
		ActivePresetID: s.store.ActivePresetID(id),
	})
}

func (s *Server) handleSavePreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Name == "" {
		s.writeError(w, r, errors.New("D060").WithDetail("preset name is empty"))
		return
	}
	presetID, err := s.savePreset(id, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": presetID, "name": req.Name})
}

func (s *Server) handleLoadPreset(w http.ResponseWriter, r *http.Request) {
	if err := s.loadPreset(chi.URLParam(r, "id"), chi.URLParam(r, "presetID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenamePreset(w http.ResponseWriter, r *http.Request) {
	id, presetID := chi.URLParam(r, "id"), chi.URLParam(r, "presetID")
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.renamePreset(id, presetID, req.Name); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	id, presetID := chi.URLParam(r, "id"), chi.URLParam(r, "presetID")
	if err := s.requirePreset(id, presetID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.store.DeletePreset(id, presetID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearPreset(w http.ResponseWriter, r *http.Request) {
	if err := s.clearPreset(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.document(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	key, err := s.exportPanel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}
