package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/microblog/internal/common"
	"github.com/dmitrijs2005/microblog/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create verifies the author still exists and inserts the post, both inside
// one transaction so the pair is atomic. The creation timestamp is assigned
// by the store; the author's display name is resolved by the same lookup.
func (r *PostgresRepository) Create(ctx context.Context, post *Post) (*Post, error) {

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		var authorName string
		err := tx.QueryRowContext(ctx,
			`SELECT name FROM users WHERE id = $1`, post.AuthorID).
			Scan(&authorName)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}

		query :=
			`INSERT INTO posts (author_id, content)
			 VALUES ($1, $2)
			 RETURNING id, created_at
			 `

		if err := tx.QueryRowContext(ctx, query, post.AuthorID, post.Content).
			Scan(&post.ID, &post.CreatedAt); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		post.AuthorName = authorName
		return nil
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// ListAll returns every post with the author's display name joined in,
// ordered by creation time. Both orderings are supported: the feed reads
// ascending for a chat-like appended view, the general listing reads
// most-recent-first.
func (r *PostgresRepository) ListAll(ctx context.Context, ascending bool) ([]*Post, error) {

	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	query := fmt.Sprintf(
		`SELECT p.id, p.author_id, u.name, p.content, p.created_at
		 FROM posts p
		 JOIN users u ON p.author_id = u.id
		 ORDER BY p.created_at %s, p.id %s`, direction, direction)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListByAuthor returns one author's posts, most-recent-first.
func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*Post, error) {

	query :=
		`SELECT p.id, p.author_id, u.name, p.content, p.created_at
		 FROM posts p
		 JOIN users u ON p.author_id = u.id
		 WHERE p.author_id = $1
		 ORDER BY p.created_at DESC, p.id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]*Post, error) {
	posts := []*Post{}

	for rows.Next() {
		post := &Post{}
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.AuthorName, &post.Content, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return posts, nil
}
