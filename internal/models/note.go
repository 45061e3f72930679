package models

import "time"

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n Note) EntityID() string { return n.ID }

func (n Note) IsFavorite() bool { return n.Favorite }

// SearchText lists the fields free-text search matches against.
func (n Note) SearchText() []string { return []string{n.Title, n.Content} }

func (n Note) TagSet() []string { return n.Tags }

// NotePatch carries a partial update; nil fields are left untouched.
type NotePatch struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	Favorite *bool     `json:"favorite"`
}
