package util

import (
	"encoding/json"
	"net/http"
)

// Stable machine-readable error kinds returned in the "code" field.
// The "error" field stays a human-readable message.
const (
	KindUnauthorized = "unauthorized"
	KindValidation   = "validation"
	KindRateLimited  = "rate_limited"
	KindNotFound     = "not_found"
	KindUpstream     = "upstream"
	KindInternal     = "internal"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, kind, message string) {
	WriteJSON(w, status, errorBody{Error: message, Code: kind})
}
