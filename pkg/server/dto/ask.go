package dto

import (
	"errors"
	"strings"
)

// MaxQuestionLength bounds the accepted question size.
const MaxQuestionLength = 1000

// ErrQuestionTooLong is returned when a question exceeds MaxQuestionLength.
var ErrQuestionTooLong = errors.New("question exceeds maximum length")

// AskRequest is the body of POST /api/v1/ask.
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Validate performs validation on AskRequest
func (r *AskRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return errors.New("question cannot be empty")
	}
	if len(r.Question) > MaxQuestionLength {
		return ErrQuestionTooLong
	}
	return nil
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
