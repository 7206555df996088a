package model

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
)

const (
	maxMessageNameLen    = 255
	maxMessageSubjectLen = 255
)

// Message represents a contact-form submission. Read is the single
// canonical read flag for a message.
type Message struct {
	ID        string    `json:"id"                db:"id"`
	Name      string    `json:"name"              db:"name"`
	Email     string    `json:"email"             db:"email"`
	Subject   string    `json:"subject,omitempty" db:"subject"`
	Body      string    `json:"body"              db:"body"`
	Read      bool      `json:"read"              db:"read"`
	CreatedAt time.Time `json:"created_at"        db:"created_at"`
}

// CreateMessageRequest represents a public contact-form submission.
type CreateMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// Validate validates CreateMessageRequest.
func (r *CreateMessageRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return apperrors.ValidationField("name", "name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxMessageNameLen {
		return apperrors.ValidationField("name", "name cannot exceed 255 characters")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return apperrors.ValidationField("email", "email is required and cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.ValidationField("email", "email is not a valid address")
	}
	if utf8.RuneCountInString(r.Subject) > maxMessageSubjectLen {
		return apperrors.ValidationField("subject", "subject cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Body) == "" {
		return apperrors.ValidationField("body", "message body is required and cannot be empty")
	}
	return nil
}
