package kv

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ucvirtual/horario/core"
)

// RedisStore keeps the key/value data in redis, for deployments where the
// client runs on a shared terminal and the local disk is not durable.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(conf *core.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client, prefix: conf.AppName + ":"}, nil
}

func (st *RedisStore) Get(key string) (string, bool, error) {
	val, err := st.client.Get(context.Background(), st.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (st *RedisStore) Set(key, value string) error {
	return st.client.Set(context.Background(), st.prefix+key, value, 0).Err()
}

func (st *RedisStore) Remove(key string) error {
	return st.client.Del(context.Background(), st.prefix+key).Err()
}

func (st *RedisStore) Close() error {
	return st.client.Close()
}
