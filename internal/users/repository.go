package users

import (
	"context"

	"github.com/arcadia-tracker/arcadia/internal/platform/db"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListLite(ctx context.Context, ids []int64) ([]UserLite, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	db db.DBTX
}

// NewRepository constructs a repository.
func NewRepository(conn db.DBTX) *Repository {
	return &Repository{db: conn}
}

// ListLite returns the display identities of the given users. Unknown ids are
// omitted.
func (r *Repository) ListLite(ctx context.Context, ids []int64) ([]UserLite, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, username, COALESCE(avatar, '') FROM users WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []UserLite
	for rows.Next() {
		var user UserLite
		if err := rows.Scan(&user.ID, &user.Username, &user.Avatar); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
