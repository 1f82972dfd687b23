package server

import (
	"encoding/json"
	"net/http"

	"github.com/dialkit-go/dialkit/internal/errors"
)

// errorBody is the JSON envelope of every failed request.
type errorBody struct {
	Error *errors.DialError `json:"error"`
}

// statusOf maps an error code to the HTTP status it is reported with.
func statusOf(code string) int {
	switch code {
	case "D001", "D002", "D003":
		return http.StatusNotFound
	case "D060", "D061", "D063":
		return http.StatusBadRequest
	case "D004", "D162":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes v as the response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("response write failed", "error", err)
	}
}

// writeError reports err as a JSON error. Errors that are not DialErrors
// are reported as internal errors.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	de, ok := err.(*errors.DialError)
	if !ok {
		de = errors.Newf(errors.CategoryTransport, "internal error").Wrap(err)
		de.Code = "D000"
	}
	status := statusOf(de.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"code", de.Code,
			"error", de.FormatCompact())
	}
	s.writeJSON(w, status, errorBody{Error: de})
}

// decodeBody reads a JSON request body of at most maxBody bytes into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.New("D060").WithDetail(err.Error())
	}
	return nil
}

const maxBody = 1 << 20
