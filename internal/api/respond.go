package api

import (
	"errors"
	"net/http"

	"github.com/blog-platform-api/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// errorResponse is the JSON envelope for every failure
type errorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error"`
	Meta    interface{} `json:"meta,omitempty"`
}

// respondError classifies err and writes the failure envelope. Message
// gives the operation context ("Post creation failed"); the error field
// carries the cause.
func respondError(c *gin.Context, message string, err error) {
	c.JSON(statusFor(err), errorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
		Meta:    metaFor(err),
	})
}

// statusFor is the catch-all error classification at the HTTP boundary.
// Business failures (missing records, authorization, validation,
// conflicts) are client errors; caller-induced constraint violations
// from the store are too; everything else is a server fault.
func statusFor(err error) int {
	if apperr.IsClient(err) {
		return http.StatusBadRequest
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusBadRequest
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505", // unique_violation
			"23503", // foreign_key_violation
			"23502", // not_null_violation
			"22P02": // invalid_text_representation
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

// metaFor surfaces driver-level detail for constraint violations
func metaFor(err error) interface{} {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return gin.H{
			"code":       string(pqErr.Code),
			"constraint": pqErr.Constraint,
		}
	}
	return nil
}
