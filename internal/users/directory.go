package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const directoryVersionKey = "users:directory:version"

// Directory resolves creator ids to display identities, caching them in Redis
// under a version that Bump invalidates. A nil client disables caching.
type Directory struct {
	repo   RepositoryPort
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewDirectory builds a Directory.
func NewDirectory(repo RepositoryPort, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{repo: repo, client: client, ttl: ttl, logger: logger}
}

// Lookup returns display identities keyed by user id. Ids that no longer
// resolve map to a placeholder identity so projections never drop records.
func (d *Directory) Lookup(ctx context.Context, ids []int64) (map[int64]UserLite, error) {
	ids = uniqueIDs(ids)
	out := make(map[int64]UserLite, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	missing := ids
	version, cacheOK := d.version(ctx)
	if cacheOK {
		missing = d.readCached(ctx, version, ids, out)
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := d.load(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, id := range missing {
		user, ok := loaded[id]
		if !ok {
			user = deletedUser(id)
		}
		out[id] = user
	}
	if cacheOK {
		d.writeCached(ctx, version, loaded)
	}
	return out, nil
}

// Bump invalidates every cached identity.
func (d *Directory) Bump(ctx context.Context) error {
	if d.client == nil {
		return nil
	}
	return d.client.Incr(ctx, directoryVersionKey).Err()
}

func (d *Directory) load(ctx context.Context, ids []int64) (map[int64]UserLite, error) {
	key := joinIDs(ids)
	resultChan := d.group.DoChan(key, func() (interface{}, error) {
		users, err := d.repo.ListLite(context.WithoutCancel(ctx), ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[int64]UserLite, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}
		return byID, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, fmt.Errorf("users: load identities: %w", res.Err)
		}
		return res.Val.(map[int64]UserLite), nil
	}
}

func (d *Directory) version(ctx context.Context) (int64, bool) {
	if d.client == nil {
		return 0, false
	}
	ver, err := d.client.Get(ctx, directoryVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := d.client.SetNX(ctx, directoryVersionKey, 1, 0).Err(); err != nil {
			d.logger.Warn("directory cache unavailable", slog.Any("error", err))
			return 0, false
		}
		return 1, true
	}
	if err != nil {
		d.logger.Warn("directory cache unavailable", slog.Any("error", err))
		return 0, false
	}
	return ver, true
}

func (d *Directory) readCached(ctx context.Context, version int64, ids []int64, out map[int64]UserLite) []int64 {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(version, id)
	}
	values, err := d.client.MGet(ctx, keys...).Result()
	if err != nil {
		d.logger.Warn("directory cache read", slog.Any("error", err))
		return ids
	}
	var missing []int64
	for i, raw := range values {
		s, ok := raw.(string)
		if !ok {
			missing = append(missing, ids[i])
			continue
		}
		var user UserLite
		if err := json.Unmarshal([]byte(s), &user); err != nil {
			missing = append(missing, ids[i])
			continue
		}
		out[ids[i]] = user
	}
	return missing
}

func (d *Directory) writeCached(ctx context.Context, version int64, users map[int64]UserLite) {
	if len(users) == 0 {
		return
	}
	pipe := d.client.Pipeline()
	for id, user := range users {
		raw, err := json.Marshal(user)
		if err != nil {
			continue
		}
		pipe.Set(ctx, cacheKey(version, id), raw, d.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		d.logger.Warn("directory cache write", slog.Any("error", err))
	}
}

func cacheKey(version, id int64) string {
	return "users:lite:" + strconv.FormatInt(version, 10) + ":" + strconv.FormatInt(id, 10)
}

func uniqueIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
