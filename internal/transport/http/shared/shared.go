// Package shared holds the response-writing helpers every handler uses, so
// error bodies and status mapping stay uniform across the HTTP surface.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "seedlab/pkg/domain-errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error to its HTTP status and writes a uniform
// error body. Non-domain errors are masked as internal failures so storage
// details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	status := dErrors.HTTPStatus(err)

	var de *dErrors.Error
	detail := errorDetail{Code: string(dErrors.CodeInternal), Message: "internal error"}
	if errors.As(err, &de) && status < http.StatusInternalServerError {
		detail = errorDetail{Code: string(de.Code), Message: de.Message}
	}
	WriteJSON(w, status, errorBody{Error: detail})
}
