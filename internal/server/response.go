package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/khanglvm/skillhub/internal/learning"
	"github.com/khanglvm/skillhub/internal/skills"
)

// envelope is the uniform response shape every endpoint returns.
type envelope struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// writeOK writes a success envelope and returns any encoding error.
func writeOK(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(envelope{OK: true, Data: data})
}

// writeError writes a failure envelope with the given status code.
func writeError(w http.ResponseWriter, statusCode int, message string) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(envelope{OK: false, Error: message})
}

// statusFor maps the lifecycle error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var verr *learning.ValidationError
	var nerr *learning.NotFoundError
	var serr *skills.NotFoundError
	var cerr *learning.ConflictError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &nerr), errors.As(err, &serr):
		return http.StatusNotFound
	case errors.As(err, &cerr):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
