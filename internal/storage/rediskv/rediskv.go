// Package rediskv is the key/value slot store behind user preferences. A
// slot is overwritten wholesale on every save, never merged.
package rediskv

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/storage"

	"github.com/redis/go-redis/v9"
)

type RedisKV struct {
	Client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisKV{Client: client}, nil
}

func (kv *RedisKV) Close() error {
	return kv.Client.Close()
}

// SetJSON serializes value into the named slot, replacing whatever was
// there.
func (kv *RedisKV) SetJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return kv.Client.Set(ctx, key, data, 0).Err()
}

// GetJSON reads the named slot into dst. A missing slot maps to
// storage.ErrNotFound.
func (kv *RedisKV) GetJSON(ctx context.Context, key string, dst any) error {
	data, err := kv.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return storage.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, dst)
}
