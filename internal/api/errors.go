package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/setanarut/assetforge"
)

var errWatermarkUnavailable = errors.New("watermark unavailable")

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps pipeline error kinds to a status and a message safe to
// show clients.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, assetforge.ErrInvalidColor):
		return http.StatusBadRequest, "invalid color"
	case errors.Is(err, assetforge.ErrInvalidOptions):
		return http.StatusBadRequest, "invalid options"
	case errors.Is(err, assetforge.ErrIndexOutOfRange):
		return http.StatusBadRequest, "silhouette index out of range"
	case errors.Is(err, assetforge.ErrDecode):
		return http.StatusUnprocessableEntity, "could not decode upload"
	case errors.Is(err, errWatermarkUnavailable):
		return http.StatusServiceUnavailable, "watermark unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
