// Package httputil centralizes JSON encoding and error translation so every
// handler produces the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "regscope/pkg/domain-errors"
)

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into a JSON error envelope. Internal
// errors omit the description so storage details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.Code(err)
	status := dErrors.ToHTTPStatus(code)

	body := map[string]string{"error": string(code)}
	var de *dErrors.DomainError
	if errors.As(err, &de) && code != dErrors.CodeInternal {
		body["error_description"] = de.Message
	}
	WriteJSON(w, status, body)
}

// DecodeJSON decodes the request body into v, writing a bad_request envelope
// on failure. Returns false when the caller should stop handling.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body"))
		return v, false
	}
	return v, true
}
