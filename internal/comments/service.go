package comments

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/arcadia-tracker/arcadia/internal/ownership"
	"github.com/arcadia-tracker/arcadia/internal/platform/httpx"
	"github.com/arcadia-tracker/arcadia/internal/users"
)

// Service exposes comment threads and comment edits.
type Service struct {
	repo      Repository
	editor    *ownership.Editor[Comment, EditedComment]
	identity  users.Resolver
	validator *validator.Validate
}

// NewService wires the comment edit pipeline.
func NewService(repo Repository, identity users.Resolver, policy ownership.Policy, opts ...ownership.EditorOption) *Service {
	return &Service{
		repo:      repo,
		editor:    ownership.NewEditor[Comment, EditedComment]("comment", repo, applyEdit, policy, opts...),
		identity:  identity,
		validator: validator.New(),
	}
}

// Edit replaces the content of a comment on behalf of actor.
func (s *Service) Edit(ctx context.Context, actor ownership.Actor, form EditedComment) (Comment, error) {
	if err := s.validator.Struct(form); err != nil {
		return Comment{}, fmt.Errorf("%w: %s", httpx.ErrValidation, err.Error())
	}
	return s.editor.Edit(ctx, actor, form.ID, form)
}

// Thread lists the comments of a torrent request, oldest first.
func (s *Service) Thread(ctx context.Context, torrentRequestID int64) ([]CommentHierarchy, error) {
	list, err := s.repo.ListByRequest(ctx, torrentRequestID)
	if err != nil {
		return nil, err
	}
	return users.Decorate(ctx, s.identity, list, authorOf, newHierarchy)
}
