// Package api defines the shared HTTP response envelopes and the mapping
// from the error taxonomy to status codes. Handlers never inspect error
// strings to pick a status.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental_backend/internal/shared/apperr"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body for successful requests that return no
// entity.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusOf maps an error kind to its HTTP status code.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindReference:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindDenied:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindDuplicate:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// WriteError maps err to a status via StatusOf and writes the error
// envelope. Internal errors are masked with a generic message so storage
// details never leak to clients.
func WriteError(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, ErrorResponse{Error: msg})
}
