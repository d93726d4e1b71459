package artists

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/arcadia-tracker/arcadia/internal/ownership"
	"github.com/arcadia-tracker/arcadia/internal/platform/httpx"
	"github.com/arcadia-tracker/arcadia/internal/users"
)

// Service exposes artist reads and edits.
type Service struct {
	repo      Repository
	editor    *ownership.Editor[Artist, EditedArtist]
	identity  users.Resolver
	validator *validator.Validate
}

// NewService wires the artist edit pipeline.
func NewService(repo Repository, identity users.Resolver, policy ownership.Policy, opts ...ownership.EditorOption) *Service {
	return &Service{
		repo:      repo,
		editor:    ownership.NewEditor[Artist, EditedArtist]("artist", repo, applyEdit, policy, opts...),
		identity:  identity,
		validator: validator.New(),
	}
}

// Edit updates an artist on behalf of actor.
func (s *Service) Edit(ctx context.Context, actor ownership.Actor, form EditedArtist) (Artist, error) {
	if err := s.validator.Struct(form); err != nil {
		return Artist{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err.Error())
	}
	return s.editor.Edit(ctx, actor, form.ID, form)
}

// Get returns an artist decorated with its creator's display identity.
func (s *Service) Get(ctx context.Context, id int64) (ArtistView, error) {
	if id <= 0 {
		return ArtistView{}, ownership.ErrNotFound
	}
	artist, err := s.repo.Find(ctx, id)
	if err != nil {
		return ArtistView{}, err
	}
	return users.DecorateOne(ctx, s.identity, artist, creatorOf, newView)
}
