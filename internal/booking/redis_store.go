package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDraftStore keeps drafts as JSON values in redis under
// "draft:<clientID>" with a TTL, so the payment redirect can be served by
// any instance behind the load balancer.  Expiry is enforced by redis
// itself; an expired key simply reads back as missing.
type RedisDraftStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisDraftStore wraps the given redis client.  The client must be
// non-nil; callers that failed to connect should fall back to the memory
// store instead.
func NewRedisDraftStore(rdb *redis.Client, ttl time.Duration) *RedisDraftStore {
	if rdb == nil {
		panic("nil redis client passed to NewRedisDraftStore")
	}
	return &RedisDraftStore{rdb: rdb, ttl: ttl}
}

func draftKey(clientID uint64) string {
	return fmt.Sprintf("draft:%d", clientID)
}

// Put overwrites the client's draft and resets its TTL.
func (s *RedisDraftStore) Put(ctx context.Context, clientID uint64, d Draft) error {
	body, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, draftKey(clientID), body, s.ttl).Err()
}

// Get loads the client's draft, returning ErrNoDraft when the key is
// missing or has expired.
func (s *RedisDraftStore) Get(ctx context.Context, clientID uint64) (Draft, error) {
	body, err := s.rdb.Get(ctx, draftKey(clientID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Draft{}, ErrNoDraft
		}
		return Draft{}, err
	}
	var d Draft
	if err := json.Unmarshal(body, &d); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Delete removes the client's draft.  Deleting a missing key is a no-op.
func (s *RedisDraftStore) Delete(ctx context.Context, clientID uint64) error {
	return s.rdb.Del(ctx, draftKey(clientID)).Err()
}
