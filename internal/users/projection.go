package users

import "context"

// Resolver resolves user ids to display identities.
type Resolver interface {
	Lookup(ctx context.Context, ids []int64) (map[int64]UserLite, error)
}

// Decorate attaches the creator's display identity to each item. creatorOf
// names the user whose identity is shown; build combines item and identity
// into the read model. Decorate only reads; it never evaluates edit rights.
func Decorate[T, V any](ctx context.Context, resolver Resolver, items []T, creatorOf func(T) int64, build func(T, UserLite) V) ([]V, error) {
	out := make([]V, 0, len(items))
	if len(items) == 0 {
		return out, nil
	}
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = creatorOf(item)
	}
	identities, err := resolver.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		id := creatorOf(item)
		identity, ok := identities[id]
		if !ok {
			identity = deletedUser(id)
		}
		out = append(out, build(item, identity))
	}
	return out, nil
}

// DecorateOne is Decorate for a single item.
func DecorateOne[T, V any](ctx context.Context, resolver Resolver, item T, creatorOf func(T) int64, build func(T, UserLite) V) (V, error) {
	views, err := Decorate(ctx, resolver, []T{item}, creatorOf, build)
	if err != nil {
		var zero V
		return zero, err
	}
	return views[0], nil
}
