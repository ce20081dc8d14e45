package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hudsonmp/project-finder/internal/domain"
)

// PostStore persists processed posts in SQLite so data survives restarts
type PostStore struct {
	db *sql.DB
}

func NewPostStore(path string) (*PostStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect sqlite database: %w", err)
	}

	s := &PostStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *PostStore) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS posts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			url TEXT,
			author TEXT,
			created_at TEXT NOT NULL,
			subreddit TEXT NOT NULL,
			score INTEGER NOT NULL,
			comment_count INTEGER NOT NULL,
			is_project INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_posts_subreddit ON posts(subreddit);
		CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);
	`
	_, err := s.db.Exec(query)
	return err
}

// Upsert writes a batch in one transaction. Re-scraped posts replace the
// stored row so scores and comment counts stay current.
func (s *PostStore) Upsert(ctx context.Context, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO posts
			(id, title, content, url, author, created_at, subreddit, score, comment_count, is_project)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range posts {
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Title, p.Content, p.URL, p.Author,
			p.CreatedAt, p.Subreddit, p.Score, p.CommentCount, boolToInt(p.IsProject),
		); err != nil {
			return fmt.Errorf("upsert post %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Recent returns the newest posts by creation time
func (s *PostStore) Recent(ctx context.Context, limit int) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, url, author, created_at, subreddit, score, comment_count, is_project
		FROM posts ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		var isProject int
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.URL, &p.Author,
			&p.CreatedAt, &p.Subreddit, &p.Score, &p.CommentCount, &isProject); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.IsProject = isProject != 0
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountBySubreddit reports stored post counts per subreddit
func (s *PostStore) CountBySubreddit(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT subreddit, COUNT(*) FROM posts GROUP BY subreddit`)
	if err != nil {
		return nil, fmt.Errorf("query subreddit counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var sub string
		var n int
		if err := rows.Scan(&sub, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[sub] = n
	}
	return counts, rows.Err()
}

func (s *PostStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
