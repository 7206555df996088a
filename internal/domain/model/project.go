//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
)

const (
	maxProjectTitleLen = 255
)

// Project represents a portfolio project entry.
type Project struct {
	ID          string    `json:"id"                    db:"id"`
	Title       string    `json:"title"                 db:"title"`
	Description string    `json:"description"           db:"description"`
	Tech        string    `json:"tech"                  db:"tech"` // comma-separated stack
	URL         *string   `json:"url,omitempty"         db:"url"`
	GithubURL   *string   `json:"github_url,omitempty"  db:"github_url"`
	ImageURL    *string   `json:"image_url,omitempty"   db:"image_url"`
	Featured    bool      `json:"featured"              db:"featured"`
	CreatedAt   time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"            db:"updated_at"`
}

// TechList splits the comma-separated tech field into trimmed entries.
func (p *Project) TechList() []string {
	if strings.TrimSpace(p.Tech) == "" {
		return nil
	}
	parts := strings.Split(p.Tech, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// CreateProjectRequest represents parameters to create a Project.
type CreateProjectRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Tech        string  `json:"tech,omitempty"`
	URL         *string `json:"url,omitempty"`
	GithubURL   *string `json:"github_url,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Featured    bool    `json:"featured"`
}

// UpdateProjectRequest represents parameters to update a Project.
type UpdateProjectRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Tech        *string `json:"tech,omitempty"`
	URL         *string `json:"url,omitempty"`
	GithubURL   *string `json:"github_url,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Featured    *bool   `json:"featured,omitempty"`
}

// Validate validates CreateProjectRequest.
func (r *CreateProjectRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return apperrors.ValidationField("title", "title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxProjectTitleLen {
		return apperrors.ValidationField("title", "title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Description) == "" {
		return apperrors.ValidationField("description", "description is required and cannot be empty")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateProjectRequest.
func (r *UpdateProjectRequest) HasUpdates() bool {
	return r.Title != nil || r.Description != nil || r.Tech != nil || r.URL != nil ||
		r.GithubURL != nil ||
		r.ImageURL != nil ||
		r.Featured != nil
}

// Validate validates UpdateProjectRequest, ensuring at least one field is set and values are sane.
func (r *UpdateProjectRequest) Validate() error {
	if !r.HasUpdates() {
		return apperrors.Validation("at least one field must be updated")
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return apperrors.ValidationField("title", "title cannot be empty")
		}
		if utf8.RuneCountInString(title) > maxProjectTitleLen {
			return apperrors.ValidationField("title", "title cannot exceed 255 characters")
		}
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		return apperrors.ValidationField("description", "description cannot be empty")
	}
	return nil
}
