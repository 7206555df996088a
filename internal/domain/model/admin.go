package model

import "time"

// Admin is the administrator account record. PasswordHash never leaves
// the data layer in responses.
type Admin struct {
	ID           string    `json:"id"           db:"id"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	Email        string    `json:"email"        db:"email"`
	PasswordHash string    `json:"-"            db:"password_hash"`
	CreatedAt    time.Time `json:"created_at"   db:"created_at"`
}

// Stats aggregates the counters shown on the admin dashboard.
type Stats struct {
	Projects       int `json:"projects"`
	Posts          int `json:"posts"`
	PublishedPosts int `json:"published_posts"`
	Messages       int `json:"messages"`
	UnreadMessages int `json:"unread_messages"`
	Skills         int `json:"skills"`
}
