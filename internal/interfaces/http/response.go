package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"spendwise/internal/domain/resource"
	"spendwise/internal/shared/middleware"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// writeServiceError maps engine errors onto status codes. Anything the
// caller cannot fix is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var (
		ve *resource.ValidationError
		fe *resource.FormatError
		ce *resource.ConflictError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &fe):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &ce):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, resource.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Error %s (request_id=%s): %v", action, middleware.RequestIDFrom(r.Context()), err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodePayload reads a JSON object body. Numbers are kept as
// json.Number so integers and decimals survive without float rounding.
func decodePayload(r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, errInvalidBody
	}
	if payload == nil {
		return nil, errInvalidBody
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errInvalidBody
	}
	return payload, nil
}

// parseID reads a positive integer path value.
func parseID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// withActor exposes the authenticated user to the engine.
func withActor(r *http.Request) *http.Request {
	if userID, ok := middleware.UserIDFrom(r.Context()); ok {
		return r.WithContext(resource.WithActor(r.Context(), userID))
	}
	return r
}
