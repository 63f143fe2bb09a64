package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Error is the API error type carried between services and handlers.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)

	// ErrNotPostAuthor marks an edit attempt by someone other than the post's
	// author. The handler layer denies these via redirect, not as an
	// access-denied response.
	ErrNotPostAuthor = New("only the author may edit a post", http.StatusForbidden)
)

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Wrap annotates err with message, keeping the cause chain intact.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// GetUniqueContraintError maps a database unique-violation to a client error.
func GetUniqueContraintError(err error) *Error {
	if strings.Contains(strings.ToLower(err.Error()), "duplicate") ||
		strings.Contains(strings.ToLower(err.Error()), "unique") {
		return New("record already exists", http.StatusConflict)
	}
	return ErrInternalServerError
}

// ErrorHandler responds to rate-limited requests.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message": "too many requests, try again in " + time.Until(info.ResetTime).String(),
	})
}
