package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Fields  any    `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeValidationError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: "Missing required fields.", Message: err.Error()}
	var fields validation.Errors
	if errors.As(err, &fields) {
		resp.Fields = fields
	}
	writeJSON(w, http.StatusBadRequest, resp)
}
