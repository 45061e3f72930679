package models

import (
	"regexp"
	"time"
)

// urlPattern accepts scheme-optional host/path shapes, matching what the
// bookmark form historically allowed.
var urlPattern = regexp.MustCompile(`^(https?://)?([\w\-]+\.)+[\w\-]+(:\d+)?(/[\w\-._~:/?#\[\]@!$&'()*+,;=%]*)?$`)

func ValidBookmarkURL(s string) bool {
	return urlPattern.MatchString(s)
}

type Bookmark struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Favorite    bool      `json:"favorite"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (b Bookmark) EntityID() string { return b.ID }

func (b Bookmark) IsFavorite() bool { return b.Favorite }

func (b Bookmark) SearchText() []string { return []string{b.Title, b.Description, b.URL} }

func (b Bookmark) TagSet() []string { return b.Tags }

// BookmarkPatch carries a partial update; nil fields are left untouched.
type BookmarkPatch struct {
	URL         *string   `json:"url"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Favorite    *bool     `json:"favorite"`
}
