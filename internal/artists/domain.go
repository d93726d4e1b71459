package artists

import (
	"time"

	"github.com/arcadia-tracker/arcadia/internal/ownership"
	"github.com/arcadia-tracker/arcadia/internal/users"
)

// Artist is a user-created artist profile.
type Artist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Pictures    []string  `json:"pictures"`
	CreatedByID int64     `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ownership returns the immutable creator stamp.
func (a Artist) Ownership() ownership.Stamp {
	return ownership.Stamp{CreatorID: a.CreatedByID, CreatedAt: a.CreatedAt}
}

// EditedArtist is the payload of PUT /api/artists. Ownership fields sent by
// clients are not part of it and are dropped during decoding.
type EditedArtist struct {
	ID          int64    `json:"id" validate:"required,gt=0"`
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=10000"`
	Pictures    []string `json:"pictures" validate:"max=20,dive,required,url"`
}

// ArtistView is the read model returned by GET /api/artists/{id}.
type ArtistView struct {
	Artist
	CreatedBy users.UserLite `json:"created_by"`
}

func applyEdit(current Artist, edit EditedArtist, now time.Time) Artist {
	current.Name = edit.Name
	current.Description = edit.Description
	current.Pictures = append([]string(nil), edit.Pictures...)
	current.UpdatedAt = now
	return current
}

func creatorOf(a Artist) int64 {
	return a.CreatedByID
}

func newView(a Artist, creator users.UserLite) ArtistView {
	return ArtistView{Artist: a, CreatedBy: creator}
}
