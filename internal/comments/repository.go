package comments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arcadia-tracker/arcadia/internal/ownership"
	"github.com/arcadia-tracker/arcadia/internal/platform/db"
)

// Repository persists torrent request comments.
type Repository interface {
	ownership.Store[Comment]
	ListByRequest(ctx context.Context, torrentRequestID int64) ([]Comment, error)
}

type repository struct {
	pool db.Pool
}

// NewRepository returns a PostgreSQL backed Repository.
func NewRepository(pool db.Pool) Repository {
	return &repository{pool: pool}
}

const commentColumns = `id, torrent_request_id, user_id, content, created_at, updated_at`

func (r *repository) Find(ctx context.Context, id int64) (Comment, error) {
	c, err := scanComment(r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM torrent_request_comments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Comment{}, ownership.ErrNotFound
		}
		return Comment{}, ownership.StoreError("find comment", err)
	}
	return c, nil
}

func (r *repository) Update(ctx context.Context, c Comment) (Comment, error) {
	var stored Comment
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var current ownership.Stamp
		err := tx.QueryRow(ctx, `SELECT user_id, created_at FROM torrent_request_comments WHERE id = $1 FOR UPDATE`, c.ID).
			Scan(&current.CreatorID, &current.CreatedAt)
		if err != nil {
			return err
		}
		if !current.Equal(c.Ownership()) {
			return fmt.Errorf("%w: comment %d ownership stamp changed", ownership.ErrStoreUnavailable, c.ID)
		}
		stored, err = scanComment(tx.QueryRow(ctx,
			`UPDATE torrent_request_comments SET content = $2, updated_at = $3
			WHERE id = $1
			RETURNING `+commentColumns,
			c.ID, c.Content, c.UpdatedAt,
		))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Comment{}, ownership.ErrNotFound
		}
		return Comment{}, ownership.StoreError("update comment", err)
	}
	return stored, nil
}

func (r *repository) ListByRequest(ctx context.Context, torrentRequestID int64) ([]Comment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM torrent_request_comments WHERE torrent_request_id = $1 ORDER BY created_at, id`,
		torrentRequestID,
	)
	if err != nil {
		return nil, ownership.StoreError("list comments", err)
	}
	defer rows.Close()

	out := make([]Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, ownership.StoreError("scan comment", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, ownership.StoreError("list comments", err)
	}
	return out, nil
}

func scanComment(row pgx.Row) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.TorrentRequestID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
