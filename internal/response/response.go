// Package response shapes HTTP responses and maps domain errors to status
// codes.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teksi-laju/service-booking/internal/domain"
)

// Success writes a 200 envelope.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// NoContent writes a 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Error maps a domain error to its HTTP status. Validation problems block
// the action with a user-facing message; anything unclassified is a 500.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch domain.CodeOf(err) {
	case domain.CodeValidation, domain.CodeOutOfRange:
		status = http.StatusBadRequest
	case domain.CodeNotFound:
		status = http.StatusNotFound
	case domain.CodeUnavailable:
		status = http.StatusConflict
	case domain.CodePersistence:
		status = http.StatusServiceUnavailable
	case domain.CodeDeserialization:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
