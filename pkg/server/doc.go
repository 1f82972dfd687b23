// Package server exposes a dialkit store to presentation clients over HTTP
// and WebSocket.
//
// # REST API
//
// Every panel operation is available as a JSON endpoint under /api/panels:
//
//	GET    /api/panels                               list panels
//	GET    /api/panels/{id}                          descriptor, controls and presets
//	GET    /api/panels/{id}/values                   current snapshot
//	GET    /api/panels/{id}/resolved                 nested resolved values
//	PUT    /api/panels/{id}/values/{path}            {"value": ...}
//	PUT    /api/panels/{id}/modes/{path}             {"mode": "time"|"physics"}
//	POST   /api/panels/{id}/actions/{path}           fire an action
//	GET    /api/panels/{id}/presets                  presets and active id
//	POST   /api/panels/{id}/presets                  {"name": ...} saves a preset
//	POST   /api/panels/{id}/presets/{presetID}/load  load a preset
//	PATCH  /api/panels/{id}/presets/{presetID}       {"name": ...} renames
//	DELETE /api/panels/{id}/presets/{presetID}       delete a preset
//	DELETE /api/panels/{id}/presets/active           return to base values
//	GET    /api/panels/{id}/export                   export document
//	POST   /api/panels/{id}/export                   write the document to the sink
//
// Failures are reported as {"error": {"code": "D001", "message": ...}}.
//
// # WebSocket
//
// Clients connected to /ws receive a "panels" message and one "values"
// message per panel, then every change as it happens. They may send:
//
//	{"type": "update", "panelId": "card", "path": "opacity", "value": 0.4}
//	{"type": "mode",   "panelId": "card", "path": "spring", "mode": "physics"}
//	{"type": "action", "panelId": "card", "path": "shuffle"}
//	{"type": "save",   "panelId": "card", "name": "Soft"}
//	{"type": "load",   "panelId": "card", "presetId": "..."}
//	{"type": "clear",  "panelId": "card"}
//
// Each client has a bounded send queue. A client whose queue is full is
// disconnected.
//
// # Usage
//
//	st := store.New()
//	st.RegisterPanel("card", "Card", tree)
//
//	srv := server.New(st, &server.Config{Address: ":4860"})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
