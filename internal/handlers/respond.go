package handlers

import (
	"encoding/json"
	"net/http"
)

// maxBodyBytes caps submission payloads.
const maxBodyBytes = 64 << 10

// MessageResponse is the envelope used for acknowledgements and errors.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	// Saved is set on a failed notification to tell the caller the record exists.
	Saved bool `json:"saved,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Success: false, Message: message})
}
