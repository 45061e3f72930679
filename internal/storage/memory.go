package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/notestash/notestash/internal/apperr"
	"github.com/notestash/notestash/internal/models"
	"github.com/notestash/notestash/internal/query"
)

// MemoryStorage keeps everything in process memory. It backs tests and the
// DB_IN_MEMORY development mode.
type MemoryStorage struct {
	mu        sync.RWMutex
	users     map[string]*models.User
	notes     map[string]*models.Note
	bookmarks map[string]*models.Bookmark
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:     make(map[string]*models.User),
		notes:     make(map[string]*models.Note),
		bookmarks: make(map[string]*models.Bookmark),
	}
}

func (s *MemoryStorage) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperr.ErrEmailTaken
		}
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *MemoryStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *MemoryStorage) CreateNote(ctx context.Context, note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	note.ID = uuid.NewString()
	note.CreatedAt = now
	note.UpdatedAt = now
	if note.Tags == nil {
		note.Tags = []string{}
	}
	s.notes[note.ID] = cloneNote(note)
	return nil
}

func (s *MemoryStorage) ListNotes(ctx context.Context, userID string, filter query.Filter) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Note{}
	for _, note := range s.notes {
		if note.UserID != userID {
			continue
		}
		if !filter.Match(note.SearchText(), note.Tags, note.Favorite) {
			continue
		}
		result = append(result, *cloneNote(note))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (s *MemoryStorage) GetNote(ctx context.Context, id, userID string) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok || note.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	return cloneNote(note), nil
}

func (s *MemoryStorage) UpdateNote(ctx context.Context, id, userID string, patch models.NotePatch) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok || note.UserID != userID {
		return nil, apperr.ErrNotFound
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Tags != nil {
		note.Tags = append([]string{}, (*patch.Tags)...)
	}
	if patch.Favorite != nil {
		note.Favorite = *patch.Favorite
	}
	note.UpdatedAt = time.Now()
	return cloneNote(note), nil
}

func (s *MemoryStorage) DeleteNote(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[id]
	if !ok || note.UserID != userID {
		return apperr.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *MemoryStorage) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	bookmark.ID = uuid.NewString()
	bookmark.CreatedAt = now
	bookmark.UpdatedAt = now
	if bookmark.Tags == nil {
		bookmark.Tags = []string{}
	}
	s.bookmarks[bookmark.ID] = cloneBookmark(bookmark)
	return nil
}

func (s *MemoryStorage) ListBookmarks(ctx context.Context, userID string, filter query.Filter) ([]models.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Bookmark{}
	for _, bookmark := range s.bookmarks {
		if bookmark.UserID != userID {
			continue
		}
		if !filter.Match(bookmark.SearchText(), bookmark.Tags, bookmark.Favorite) {
			continue
		}
		result = append(result, *cloneBookmark(bookmark))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (s *MemoryStorage) GetBookmark(ctx context.Context, id, userID string) (*models.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookmark, ok := s.bookmarks[id]
	if !ok || bookmark.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	return cloneBookmark(bookmark), nil
}

func (s *MemoryStorage) UpdateBookmark(ctx context.Context, id, userID string, patch models.BookmarkPatch) (*models.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookmark, ok := s.bookmarks[id]
	if !ok || bookmark.UserID != userID {
		return nil, apperr.ErrNotFound
	}

	if patch.URL != nil {
		bookmark.URL = *patch.URL
	}
	if patch.Title != nil {
		bookmark.Title = *patch.Title
	}
	if patch.Description != nil {
		bookmark.Description = *patch.Description
	}
	if patch.Tags != nil {
		bookmark.Tags = append([]string{}, (*patch.Tags)...)
	}
	if patch.Favorite != nil {
		bookmark.Favorite = *patch.Favorite
	}
	bookmark.UpdatedAt = time.Now()
	return cloneBookmark(bookmark), nil
}

func (s *MemoryStorage) DeleteBookmark(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookmark, ok := s.bookmarks[id]
	if !ok || bookmark.UserID != userID {
		return apperr.ErrNotFound
	}
	delete(s.bookmarks, id)
	return nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}

func cloneNote(n *models.Note) *models.Note {
	clone := *n
	clone.Tags = append([]string{}, n.Tags...)
	return &clone
}

func cloneBookmark(b *models.Bookmark) *models.Bookmark {
	clone := *b
	clone.Tags = append([]string{}, b.Tags...)
	return &clone
}
