package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
)

const (
	maxSkillNameLen = 100
	maxSkillLevel   = 100
)

// Skill represents an entry in the skills grid on the public site.
type Skill struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Category  string    `json:"category"   db:"category"`
	Level     int       `json:"level"      db:"level"` // 0-100 proficiency
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateSkillRequest represents parameters to create a Skill.
type CreateSkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Level    int    `json:"level"`
}

// UpdateSkillRequest represents parameters to update a Skill.
type UpdateSkillRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Level    *int    `json:"level,omitempty"`
}

// Validate validates CreateSkillRequest.
func (r *CreateSkillRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return apperrors.ValidationField("name", "name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxSkillNameLen {
		return apperrors.ValidationField("name", "name cannot exceed 100 characters")
	}
	if r.Level < 0 || r.Level > maxSkillLevel {
		return apperrors.ValidationField("level", "level must be between 0 and 100")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateSkillRequest.
func (r *UpdateSkillRequest) HasUpdates() bool {
	return r.Name != nil || r.Category != nil || r.Level != nil
}

// Validate validates UpdateSkillRequest, ensuring at least one field is set and values are sane.
func (r *UpdateSkillRequest) Validate() error {
	if !r.HasUpdates() {
		return apperrors.Validation("at least one field must be updated")
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return apperrors.ValidationField("name", "name cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxSkillNameLen {
			return apperrors.ValidationField("name", "name cannot exceed 100 characters")
		}
	}
	if r.Level != nil && (*r.Level < 0 || *r.Level > maxSkillLevel) {
		return apperrors.ValidationField("level", "level must be between 0 and 100")
	}
	return nil
}
