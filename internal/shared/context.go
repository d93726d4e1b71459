package shared

import (
	"context"

	"github.com/arcadia-tracker/arcadia/internal/ownership"
)

type actorContextKey struct{}

// ContextWithActor stores the authenticated actor in context.
func ContextWithActor(ctx context.Context, actor ownership.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext extracts the authenticated actor from context.
func ActorFromContext(ctx context.Context) (ownership.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(ownership.Actor)
	return actor, ok
}
