// Package posts implements the content store: authenticated post creation and
// the feed/profile read paths.
package posts

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/microblog/internal/common"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Create persists a new post for the given author. Content must be non-empty
// and the author reference must resolve to an existing user; the repository
// performs the existence check and the insert as one atomic pair. The store
// assigns the creation timestamp.
func (s *Service) Create(ctx context.Context, authorID, content string) (*Post, error) {

	if strings.TrimSpace(content) == "" {
		return nil, common.ErrorValidation
	}

	if _, err := uuid.Parse(authorID); err != nil {
		return nil, common.ErrorInvalidID
	}

	post := &Post{
		AuthorID: authorID,
		Content:  content,
	}

	post, err := s.repo.Create(ctx, post)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return post, nil
}

// ListAll returns the global feed. ascending selects chronological order for
// a chat-like appended view; the default listing is most-recent-first.
func (s *Service) ListAll(ctx context.Context, ascending bool) ([]*Post, error) {
	list, err := s.repo.ListAll(ctx, ascending)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}

// ListByAuthor returns one author's posts, most-recent-first. Malformed ids
// fail with common.ErrorInvalidID before touching the store.
func (s *Service) ListByAuthor(ctx context.Context, authorID string) ([]*Post, error) {
	if _, err := uuid.Parse(authorID); err != nil {
		return nil, common.ErrorInvalidID
	}

	list, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}
