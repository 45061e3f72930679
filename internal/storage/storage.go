package storage

import (
	"context"

	"github.com/notestash/notestash/internal/models"
	"github.com/notestash/notestash/internal/query"
)

// Storage persists users, notes and bookmarks. Every note/bookmark operation
// is scoped to the owning user: a wrong id and a wrong owner are equally
// apperr.ErrNotFound.
type Storage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	NoteStorage
	BookmarkStorage

	Close() error
}

type NoteStorage interface {
	CreateNote(ctx context.Context, note *models.Note) error
	ListNotes(ctx context.Context, userID string, filter query.Filter) ([]models.Note, error)
	GetNote(ctx context.Context, id, userID string) (*models.Note, error)
	UpdateNote(ctx context.Context, id, userID string, patch models.NotePatch) (*models.Note, error)
	DeleteNote(ctx context.Context, id, userID string) error
}

type BookmarkStorage interface {
	CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error
	ListBookmarks(ctx context.Context, userID string, filter query.Filter) ([]models.Bookmark, error)
	GetBookmark(ctx context.Context, id, userID string) (*models.Bookmark, error)
	UpdateBookmark(ctx context.Context, id, userID string, patch models.BookmarkPatch) (*models.Bookmark, error)
	DeleteBookmark(ctx context.Context, id, userID string) error
}
