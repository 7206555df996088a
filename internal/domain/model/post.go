package model

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/gnwofoke/portfolio-api/internal/errors"
)

const (
	maxPostTitleLen = 255

	// readingWordsPerMinute is the assumed reading speed for the
	// estimated reading time shown next to a post.
	readingWordsPerMinute = 200
)

// BlogPost represents a blog entry. Slug and PublishedAt are derived
// server-side; clients never compute them.
type BlogPost struct {
	ID          string     `json:"id"                     db:"id"`
	Title       string     `json:"title"                  db:"title"`
	Slug        string     `json:"slug"                   db:"slug"`
	Summary     string     `json:"summary"                db:"summary"`
	Content     string     `json:"content"                db:"content"` // markdown source
	ImageURL    *string    `json:"image_url,omitempty"    db:"image_url"`
	Published   bool       `json:"published"              db:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time  `json:"created_at"             db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"             db:"updated_at"`
}

// ReadingMinutes returns the estimated reading time for the post content.
func (p *BlogPost) ReadingMinutes() int {
	return ReadingMinutes(p.Content)
}

// CreateBlogPostRequest represents parameters to create a BlogPost.
type CreateBlogPostRequest struct {
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	Content   string  `json:"content"`
	ImageURL  *string `json:"image_url,omitempty"`
	Published bool    `json:"published"`
}

// UpdateBlogPostRequest represents parameters to update a BlogPost.
type UpdateBlogPostRequest struct {
	Title     *string `json:"title,omitempty"`
	Summary   *string `json:"summary,omitempty"`
	Content   *string `json:"content,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// Validate validates CreateBlogPostRequest.
func (r *CreateBlogPostRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return apperrors.ValidationField("title", "title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxPostTitleLen {
		return apperrors.ValidationField("title", "title cannot exceed 255 characters")
	}
	if Slugify(title) == "" {
		return apperrors.ValidationField("title", "title must contain at least one letter or digit")
	}
	if strings.TrimSpace(r.Summary) == "" {
		return apperrors.ValidationField("summary", "summary is required and cannot be empty")
	}
	if strings.TrimSpace(r.Content) == "" {
		return apperrors.ValidationField("content", "content is required and cannot be empty")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateBlogPostRequest.
func (r *UpdateBlogPostRequest) HasUpdates() bool {
	return r.Title != nil || r.Summary != nil || r.Content != nil || r.ImageURL != nil ||
		r.Published != nil
}

// Validate validates UpdateBlogPostRequest, ensuring at least one field is set and values are sane.
func (r *UpdateBlogPostRequest) Validate() error {
	if !r.HasUpdates() {
		return apperrors.Validation("at least one field must be updated")
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return apperrors.ValidationField("title", "title cannot be empty")
		}
		if utf8.RuneCountInString(title) > maxPostTitleLen {
			return apperrors.ValidationField("title", "title cannot exceed 255 characters")
		}
		if Slugify(title) == "" {
			return apperrors.ValidationField("title", "title must contain at least one letter or digit")
		}
	}
	if r.Summary != nil && strings.TrimSpace(*r.Summary) == "" {
		return apperrors.ValidationField("summary", "summary cannot be empty")
	}
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		return apperrors.ValidationField("content", "content cannot be empty")
	}
	return nil
}

// Slugify derives a URL-safe slug from a title: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, no leading
// or trailing hyphen. Pure and deterministic.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// ReadingMinutes estimates reading time in minutes for the given
// content: word count divided by 200 words per minute, rounded up,
// never below 1.
func ReadingMinutes(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 1
	}
	return int(math.Ceil(float64(words) / float64(readingWordsPerMinute)))
}
