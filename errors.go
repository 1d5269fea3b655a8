package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Sentinel errors for the handler-level taxonomy. Everything a handler can
// fail with wraps one of these (or falls through to 500).
var (
	errInvalidCredentials = errors.New("invalid credentials")
	errUnauthenticated    = errors.New("unauthenticated")
	errAccountNotFound    = errors.New("account not found")
	errValidation         = errors.New("validation failed")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errValidation, fmt.Sprintf(format, args...))
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, errValidation):
		return http.StatusBadRequest
	case errors.Is(err, errInvalidCredentials), errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errAccountNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders the uniform error envelope. No handler lets an error
// escape as an unhandled fault.
func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"success": false, "error": err.Error()})
}

// isUniqueConstraintError sniffs duplicate-key failures so the ingest loop
// can treat a lost check-then-insert race as "skipped".
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
