package handler

import (
	"encoding/json"
	"net/http"
)

// MessageEnvelope is the response wrapper for issuance and error responses.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyEnvelope wraps successful verification responses.
type VerifyEnvelope struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"download_url,omitempty"`
	Message     string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Success: false, Message: msg})
}
