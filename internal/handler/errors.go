package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"socialhub/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

var errorStatuses = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrAuthentication, http.StatusUnauthorized, "Authentication failed"},
	{service.ErrForbidden, http.StatusForbidden, "Access denied"},
	{service.ErrValidation, http.StatusBadRequest, "Invalid request"},
	{service.ErrNotFound, http.StatusNotFound, "Not found"},
	{service.ErrConflict, http.StatusConflict, "Already exists"},
	{service.ErrUpload, http.StatusBadGateway, "Media upload failed"},
	{service.ErrPersistence, http.StatusInternalServerError, "Internal server error"},
}

// statusFor maps a service error category to an HTTP status and public message.
func statusFor(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// writeServiceError logs the cause and writes the category's public message.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.Log.Error("request failed", fields...)
	} else {
		h.Log.Warn("request rejected", fields...)
	}

	WriteError(w, message, status)
}
