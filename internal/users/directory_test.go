package users

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[int64]UserLite
	calls int
	err   error
}

func (m *memoryUsers) ListLite(ctx context.Context, ids []int64) ([]UserLite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var out []UserLite
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func newRedisDirectory(t *testing.T, repo RepositoryPort) (*Directory, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewDirectory(repo, client, 10*time.Minute, nil), mr
}

func TestDirectoryLookupCachesIdentities(t *testing.T) {
	repo := &memoryUsers{users: map[int64]UserLite{
		42: {ID: 42, Username: "ringo"},
		7:  {ID: 7, Username: "paul", Avatar: "https://img.example/paul.png"},
	}}
	dir, _ := newRedisDirectory(t, repo)
	ctx := context.Background()

	got, err := dir.Lookup(ctx, []int64{42, 7, 42})
	require.NoError(t, err)
	assert.Equal(t, "ringo", got[42].Username)
	assert.Equal(t, "https://img.example/paul.png", got[7].Avatar)
	assert.Equal(t, 1, repo.calls)

	again, err := dir.Lookup(ctx, []int64{7, 42})
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, 1, repo.calls, "second lookup should be served from redis")
}

func TestDirectoryBumpInvalidates(t *testing.T) {
	repo := &memoryUsers{users: map[int64]UserLite{42: {ID: 42, Username: "ringo"}}}
	dir, _ := newRedisDirectory(t, repo)
	ctx := context.Background()

	_, err := dir.Lookup(ctx, []int64{42})
	require.NoError(t, err)

	repo.mu.Lock()
	repo.users[42] = UserLite{ID: 42, Username: "ringo_starr"}
	repo.mu.Unlock()
	require.NoError(t, dir.Bump(ctx))

	got, err := dir.Lookup(ctx, []int64{42})
	require.NoError(t, err)
	assert.Equal(t, "ringo_starr", got[42].Username)
	assert.Equal(t, 2, repo.calls)
}

func TestDirectoryPlaceholderForMissingUsers(t *testing.T) {
	dir := NewDirectory(&memoryUsers{users: map[int64]UserLite{}}, nil, time.Minute, nil)

	got, err := dir.Lookup(context.Background(), []int64{99})
	require.NoError(t, err)
	assert.Equal(t, deletedUser(99), got[99])
}

func TestDirectoryFallsBackWhenRedisIsDown(t *testing.T) {
	repo := &memoryUsers{users: map[int64]UserLite{42: {ID: 42, Username: "ringo"}}}
	dir, mr := newRedisDirectory(t, repo)
	mr.Close()

	got, err := dir.Lookup(context.Background(), []int64{42})
	require.NoError(t, err)
	assert.Equal(t, "ringo", got[42].Username)
}

func TestDirectoryPropagatesRepositoryErrors(t *testing.T) {
	repo := &memoryUsers{err: errors.New("db down")}
	dir := NewDirectory(repo, nil, time.Minute, nil)

	_, err := dir.Lookup(context.Background(), []int64{1})
	require.Error(t, err)
}

func TestDirectoryEmptyLookup(t *testing.T) {
	repo := &memoryUsers{}
	dir := NewDirectory(repo, nil, time.Minute, nil)

	got, err := dir.Lookup(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, repo.calls)
}
