package utils

import (
	"encoding/json"
	"net/http"
)

// DetailResponse is the error envelope for every non-2xx body. Detail is a
// plain string for auth and internal errors and a list of field errors for
// validation failures.
type DetailResponse struct {
	Detail any `json:"detail"`
}

// MessageResponse is the envelope for short confirmation bodies.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteAccepted writes a 202 Accepted confirmation.
func WriteAccepted(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusAccepted, MessageResponse{Message: message})
}

// WriteUnauthorized writes a 401 with a generic detail. The message must
// never contain caller-supplied credentials.
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Invalid authentication token"
	}
	return WriteJSON(w, http.StatusUnauthorized, DetailResponse{Detail: message})
}

// WriteUnprocessable writes a 422 whose detail enumerates the offending
// fields.
func WriteUnprocessable(w http.ResponseWriter, fieldErrors any) error {
	return WriteJSON(w, http.StatusUnprocessableEntity, DetailResponse{Detail: fieldErrors})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return WriteJSON(w, http.StatusNotFound, DetailResponse{Detail: message})
}

// WriteInternalServerError writes a 500 with a generic detail. Internal
// error text stays in the logs, not in the response.
func WriteInternalServerError(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return WriteJSON(w, http.StatusInternalServerError, DetailResponse{Detail: message})
}
