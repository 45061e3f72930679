package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/notestash/notestash/internal/apperr"
	"github.com/notestash/notestash/internal/models"
	"github.com/notestash/notestash/internal/query"
)

const mysqlDuplicateEntry = 1062

type MySQLConfig struct {
	User     string
	Password string
	Host     string
	DBName   string
}

// MySQLStorage persists to MySQL. Search/tag filtering runs through the same
// query.Filter predicate the memory backend uses, after an owner-scoped fetch,
// so both backends match identically.
type MySQLStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewMySQLStorage(cfg MySQLConfig, logger *zap.Logger) (*MySQLStorage, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", cfg.User, cfg.Password, cfg.Host, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	s := &MySQLStorage{db: db, logger: logger}
	if err := s.initializeSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	logger.Info("connected to mysql", zap.String("host", cfg.Host), zap.String("database", cfg.DBName))
	return s, nil
}

func (s *MySQLStorage) initializeSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at DATETIME(6) NOT NULL
		) ENGINE=InnoDB;`,
		`CREATE TABLE IF NOT EXISTS notes (
			id CHAR(36) PRIMARY KEY,
			user_id CHAR(36) NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			tags TEXT NOT NULL,
			favorite BOOLEAN DEFAULT FALSE,
			created_at DATETIME(6) NOT NULL,
			updated_at DATETIME(6) NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		) ENGINE=InnoDB;`,
		`CREATE TABLE IF NOT EXISTS bookmarks (
			id CHAR(36) PRIMARY KEY,
			user_id CHAR(36) NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			tags TEXT NOT NULL,
			favorite BOOLEAN DEFAULT FALSE,
			created_at DATETIME(6) NOT NULL,
			updated_at DATETIME(6) NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		) ENGINE=InnoDB;`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *MySQLStorage) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return apperr.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MySQLStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, created_at FROM users WHERE email = ?`, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return &user, nil
}

func (s *MySQLStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, created_at FROM users WHERE id = ?`, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return &user, nil
}

func (s *MySQLStorage) CreateNote(ctx context.Context, note *models.Note) error {
	now := time.Now()
	note.ID = uuid.NewString()
	note.CreatedAt = now
	note.UpdatedAt = now
	if note.Tags == nil {
		note.Tags = []string{}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, title, content, tags, favorite, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.UserID, note.Title, note.Content, encodeTags(note.Tags),
		note.Favorite, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (s *MySQLStorage) ListNotes(ctx context.Context, userID string, filter query.Filter) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, content, tags, favorite, created_at, updated_at
		 FROM notes WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	result := []models.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		if filter.Match(note.SearchText(), note.Tags, note.Favorite) {
			result = append(result, *note)
		}
	}
	return result, rows.Err()
}

func (s *MySQLStorage) GetNote(ctx context.Context, id, userID string) (*models.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, tags, favorite, created_at, updated_at
		 FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *MySQLStorage) UpdateNote(ctx context.Context, id, userID string, patch models.NotePatch) (*models.Note, error) {
	note, err := s.GetNote(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Tags != nil {
		note.Tags = *patch.Tags
	}
	if patch.Favorite != nil {
		note.Favorite = *patch.Favorite
	}
	note.UpdatedAt = time.Now()

	_, err = s.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, tags = ?, favorite = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		note.Title, note.Content, encodeTags(note.Tags), note.Favorite, note.UpdatedAt, id, userID)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (s *MySQLStorage) DeleteNote(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *MySQLStorage) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	now := time.Now()
	bookmark.ID = uuid.NewString()
	bookmark.CreatedAt = now
	bookmark.UpdatedAt = now
	if bookmark.Tags == nil {
		bookmark.Tags = []string{}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bookmarks (id, user_id, url, title, description, tags, favorite, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bookmark.ID, bookmark.UserID, bookmark.URL, bookmark.Title, bookmark.Description,
		encodeTags(bookmark.Tags), bookmark.Favorite, bookmark.CreatedAt, bookmark.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

func (s *MySQLStorage) ListBookmarks(ctx context.Context, userID string, filter query.Filter) ([]models.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, url, title, description, tags, favorite, created_at, updated_at
		 FROM bookmarks WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	result := []models.Bookmark{}
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		if filter.Match(bookmark.SearchText(), bookmark.Tags, bookmark.Favorite) {
			result = append(result, *bookmark)
		}
	}
	return result, rows.Err()
}

func (s *MySQLStorage) GetBookmark(ctx context.Context, id, userID string) (*models.Bookmark, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, url, title, description, tags, favorite, created_at, updated_at
		 FROM bookmarks WHERE id = ? AND user_id = ?`, id, userID)
	bookmark, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *MySQLStorage) UpdateBookmark(ctx context.Context, id, userID string, patch models.BookmarkPatch) (*models.Bookmark, error) {
	bookmark, err := s.GetBookmark(ctx, id, userID)
	if err != nil {
		return nil, err
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
		bookmark.Tags = *patch.Tags
	}
	if patch.Favorite != nil {
		bookmark.Favorite = *patch.Favorite
	}
	bookmark.UpdatedAt = time.Now()

	_, err = s.db.ExecContext(ctx,
		`UPDATE bookmarks SET url = ?, title = ?, description = ?, tags = ?, favorite = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		bookmark.URL, bookmark.Title, bookmark.Description, encodeTags(bookmark.Tags),
		bookmark.Favorite, bookmark.UpdatedAt, id, userID)
	if err != nil {
		return nil, fmt.Errorf("update bookmark: %w", err)
	}
	return bookmark, nil
}

func (s *MySQLStorage) DeleteBookmark(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *MySQLStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	var note models.Note
	var rawTags string
	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &rawTags,
		&note.Favorite, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	note.Tags = decodeTags(rawTags)
	return &note, nil
}

func scanBookmark(row rowScanner) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	var rawTags string
	err := row.Scan(&bookmark.ID, &bookmark.UserID, &bookmark.URL, &bookmark.Title,
		&bookmark.Description, &rawTags, &bookmark.Favorite, &bookmark.CreatedAt, &bookmark.UpdatedAt)
	if err != nil {
		return nil, err
	}
	bookmark.Tags = decodeTags(rawTags)
	return &bookmark, nil
}

// Tags live in a TEXT column as a JSON array so tags containing commas
// survive the round trip.
func encodeTags(tags []string) string {
	raw, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeTags(raw string) []string {
	tags := []string{}
	if raw == "" {
		return tags
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return []string{}
	}
	return tags
}
