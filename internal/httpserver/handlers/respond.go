package handlers

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeNotFound is the single response for unknown, expired, malformed
// and blocked short IDs. Keeping the body identical removes any oracle
// that would let a caller tell those cases apart.
func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "link not found"})
}

func writeTooManyRequests(w http.ResponseWriter) {
	writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests, try again later"})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
