package handler

import (
	"encoding/json"
	"net/http"

	"chore-coin-go/internal/transport/httpserver/localize"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	Field          string `json:"field,omitempty"`
	CurrentPoints  *int   `json:"currentPoints,omitempty"`
	RequiredPoints *int   `json:"requiredPoints,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeErrorBody(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, errorEnvelope{Error: body})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeInvalidJSON(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusBadRequest, "invalid_json", localize.Text(r, localize.InvalidJSON))
}

func writeInvalidInput(w http.ResponseWriter, r *http.Request, field, message string) {
	writeErrorBody(w, http.StatusBadRequest, errorBody{
		Code:    "invalid_input",
		Message: localize.Text(r, message),
		Field:   field,
	})
}

func writeMessage(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: localize.Text(r, message)})
}

// writeUnauthorized covers routes mounted without the session middleware.
func writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusUnauthorized, "missing_token", localize.Text(r, localize.MissingToken))
}
