package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplier-ledger/internal/api_server/middleware"
	"github.com/supplier-ledger/internal/bookkeeping"
	"github.com/supplier-ledger/internal/domain/shared"
)

// Response represents a standard API response
type Response struct {
	Data          interface{}       `json:"data,omitempty"`
	Error         *ErrorInfo        `json:"error,omitempty"`
	Sync          map[string]string `json:"sync,omitempty"`
	CorrelationID string            `json:"correlation_id,omitempty"`
}

// ErrorInfo represents error information in a response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RespondWithData sends a JSON response with data
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, &Response{
		Data:          data,
		CorrelationID: middleware.GetCorrelationID(c),
	})
}

// RespondWithSync sends the result of a mutation together with the state of its remote saves.
// With ?wait_sync=true the saves are awaited, bounded by the request context.
func RespondWithSync(c *gin.Context, statusCode int, data interface{}, batch *bookkeeping.Batch) {
	var statuses map[string]string
	if batch != nil {
		raw := batch.Statuses()
		if c.Query("wait_sync") == "true" {
			raw = batch.Wait(c.Request.Context())
		}
		statuses = make(map[string]string, len(raw))
		for name, status := range raw {
			statuses[string(name)] = status
		}
	}

	c.JSON(statusCode, &Response{
		Data:          data,
		Sync:          statuses,
		CorrelationID: middleware.GetCorrelationID(c),
	})
}

// RespondWithError sends a JSON response with an error
func RespondWithError(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, &Response{
		Error:         &ErrorInfo{Code: code, Message: message},
		CorrelationID: middleware.GetCorrelationID(c),
	})
}

// RespondOK sends a 200 OK response with data
func RespondOK(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusOK, data)
}

// RespondBadRequest sends a 400 Bad Request response with an error
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// RespondUnauthorized sends a 401 Unauthorized response with an error
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// RespondNotFound sends a 404 Not Found response with an error
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, "NOT_FOUND", message)
}

// RespondInternalError sends a 500 Internal Server Error response with an error
func RespondInternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An internal server error occurred")
}

// RespondDomainError maps validation failures to 400 and unknown ids to 404
func RespondDomainError(c *gin.Context, logger *slog.Logger, err error) {
	var validationErr shared.ErrValidation
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, &Response{
			Error: &ErrorInfo{
				Code:    "VALIDATION_FAILED",
				Message: validationErr.Error(),
				Field:   validationErr.Field,
			},
			CorrelationID: middleware.GetCorrelationID(c),
		})
		return
	}

	var notFoundErr shared.ErrNotFound
	if errors.As(err, &notFoundErr) {
		RespondNotFound(c, notFoundErr.Error())
		return
	}

	logger.Error("Unexpected error handling request",
		"path", c.FullPath(),
		"correlation_id", middleware.GetCorrelationID(c),
		"error", err,
	)
	RespondInternalError(c)
}
