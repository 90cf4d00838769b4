package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arcline-labs/arcline-core/internal/core/domain"
	"github.com/arcline-labs/arcline-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ACLStore = (*ACLStore)(nil)

const aclEntriesPrefix = "acl:entries:"

// defaultACLTTL bounds how stale a cached access set can get. Permission
// changes upstream become visible after at most this long.
const defaultACLTTL = 10 * time.Minute

// ACLStore caches pre-computed access-control entry sets in Redis.
// Entries expire via TTL so revoked access eventually falls out on its own.
type ACLStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewACLStore creates a new Redis-backed ACLStore
func NewACLStore(client *redis.Client) *ACLStore {
	return &ACLStore{client: client, ttl: defaultACLTTL}
}

// NewACLStoreWithTTL creates an ACLStore with a custom entry TTL
func NewACLStoreWithTTL(client *redis.Client, ttl time.Duration) *ACLStore {
	return &ACLStore{client: client, ttl: ttl}
}

// GetEntries returns the cached ACL entries for a user
func (s *ACLStore) GetEntries(ctx context.Context, userID string) ([]string, error) {
	data, err := s.client.Get(ctx, aclEntriesPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get acl entries: %w", err)
	}

	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal acl entries: %w", err)
	}

	return entries, nil
}

// SaveEntries caches a user's ACL entries
func (s *ACLStore) SaveEntries(ctx context.Context, userID string, entries []string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal acl entries: %w", err)
	}

	if err := s.client.Set(ctx, aclEntriesPrefix+userID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save acl entries: %w", err)
	}

	return nil
}

// Invalidate drops a user's cached entries
func (s *ACLStore) Invalidate(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, aclEntriesPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate acl entries: %w", err)
	}
	return nil
}
