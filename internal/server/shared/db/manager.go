// Package db wires PostgreSQL-backed repositories together and runs schema
// migrations (via goose) at startup.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/microblog/internal/server/posts"
	"github.com/dmitrijs2005/microblog/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Posts() posts.Repository
}
