package posts

import (
	"context"
)

type Repository interface {
	// Create persists the post and resolves the author's display name.
	// The author existence check and the insert are atomic as a pair;
	// a missing author surfaces as common.ErrorNotFound.
	Create(ctx context.Context, post *Post) (*Post, error)
	ListAll(ctx context.Context, ascending bool) ([]*Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*Post, error)
}
