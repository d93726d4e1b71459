package artists

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/arcadia-tracker/arcadia/internal/ownership"
	"github.com/arcadia-tracker/arcadia/internal/platform/db"
)

// Repository is the artist record store.
type Repository interface {
	ownership.Store[Artist]
}

type repository struct {
	pool db.Pool
}

// NewRepository returns a PostgreSQL backed Repository.
func NewRepository(pool db.Pool) Repository {
	return &repository{pool: pool}
}

const selectArtist = `SELECT id, name, description, pictures, created_by_id, created_at, updated_at FROM artists`

func (r *repository) Find(ctx context.Context, id int64) (Artist, error) {
	a, err := scanArtist(r.pool.QueryRow(ctx, selectArtist+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artist{}, ownership.ErrNotFound
		}
		return Artist{}, ownership.StoreError("find artist", err)
	}
	return a, nil
}

// Update locks the row, checks that the stored ownership stamp still matches
// the one the edit was authorised against, and writes business columns only.
func (r *repository) Update(ctx context.Context, a Artist) (Artist, error) {
	var stored Artist
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var current ownership.Stamp
		err := tx.QueryRow(ctx, `SELECT created_by_id, created_at FROM artists WHERE id = $1 FOR UPDATE`, a.ID).
			Scan(&current.CreatorID, &current.CreatedAt)
		if err != nil {
			return err
		}
		if !current.Equal(a.Ownership()) {
			return fmt.Errorf("%w: artist %d ownership stamp changed", ownership.ErrStoreUnavailable, a.ID)
		}
		stored, err = scanArtist(tx.QueryRow(ctx,
			`UPDATE artists SET name = $2, description = $3, pictures = $4, updated_at = $5
			WHERE id = $1
			RETURNING id, name, description, pictures, created_by_id, created_at, updated_at`,
			a.ID, a.Name, a.Description, a.Pictures, a.UpdatedAt,
		))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artist{}, ownership.ErrNotFound
		}
		return Artist{}, ownership.StoreError("update artist", err)
	}
	return stored, nil
}

func scanArtist(row pgx.Row) (Artist, error) {
	var a Artist
	err := row.Scan(&a.ID, &a.Name, &a.Description, &a.Pictures, &a.CreatedByID, &a.CreatedAt, &a.UpdatedAt)
	if a.Pictures == nil {
		a.Pictures = []string{}
	}
	return a, err
}
