// Package redis provides Redis-backed implementations of the ArtifactStore
// and DistributedLocker ports, for deployments where several serving
// replicas share found runs.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/entity12208/macroforge/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.ArtifactStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored artifacts.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for artifacts.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "macroforge:artifact:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// record is the persisted JSON shape. Data round-trips through base64 via
// encoding/json's []byte handling.
type record struct {
	Data     []byte `json:"data"`
	Filename string `json:"filename"`
}

// Save persists the artifact to Redis and tracks its key in the index set.
func (s *Store) Save(ctx context.Context, key string, artifact *domain.Artifact) error {
	payload, err := json.Marshal(record{Data: artifact.Data, Filename: artifact.Filename})
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(key), payload, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error saving artifact: %w", err)
	}
	return nil
}

// Load retrieves the artifact for a key.
func (s *Store) Load(ctx context.Context, key string) (*domain.Artifact, error) {
	payload, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == backend.Nil {
		return nil, domain.ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading artifact: %w", err)
	}

	var rec record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal artifact: %w", err)
	}
	return &domain.Artifact{Data: rec.Data, Filename: rec.Filename}, nil
}

// Delete removes the artifact and its index entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(key))
	pipe.SRem(ctx, s.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis error deleting artifact: %w", err)
	}
	return nil
}

// List returns the stored keys from the index set.
func (s *Store) List(ctx context.Context) ([]string, error) {
	keys, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing artifacts: %w", err)
	}
	return keys, nil
}
