package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/go-redis/redis/v8"
	"github.com/kelseyhightower/envconfig"
)

type DB int
type ReleaseLock func() error

type Client struct {
	client         redis.UniversalClient
	lockExpiration time.Duration
}

var ctx = context.Background()

type Config struct {
	LockExpirationSeconds   int     `envconfig:"MDL_COMN_REDIS_LOCK_EXPIRATION" default:"3"`
	Host                    string  `envconfig:"MDL_COMN_REDIS_HOST" required:"true"`
	Port                    string  `envconfig:"MDL_COMN_REDIS_PORT" required:"true"`
	HASentinelPort          string  `envconfig:"MDL_COMN_REDIS_HA_SENTINEL_PORT" default:"26379"`
	HASentinelMasterName    string  `envconfig:"MDL_COMN_REDIS_HA_MASTER_NAME" default:"mymaster"`
	Password                string  `envconfig:"MDL_COMN_REDIS_AUTH_PASSWORD" default:"0"`
	AuthRequired            bool    `envconfig:"MDL_COMN_REDIS_AUTH_REQUIRED" default:"false"`
	HAMode                  bool    `envconfig:"MDL_COMN_REDIS_HA_MODE" default:"false"`
	HASentinelSocketTimeout float32 `envconfig:"MDL_COMN_REDIS_SOCKET_TIMEOUT" default:"0.5"`
}

func NewClient(db DB) (Client, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Client{}, err
	}
	return NewClientFromConfig(cfg, db), nil
}

func NewClientFromConfig(cfg Config, db DB) Client {
	var client redis.UniversalClient
	if cfg.HAMode {
		client = redis.NewFailoverClusterClient(failoverOptions(cfg, db))
	} else {
		client = redis.NewClient(options(cfg, db))
	}
	return Client{
		client:         client,
		lockExpiration: time.Duration(cfg.LockExpirationSeconds) * time.Second,
	}
}

func failoverOptions(cfg Config, db DB) *redis.FailoverOptions {
	timeout := time.Duration(float64(cfg.HASentinelSocketTimeout) * float64(time.Second))
	opts := &redis.FailoverOptions{
		SentinelAddrs: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.HASentinelPort)},
		ReadTimeout:   timeout,
		WriteTimeout:  timeout,
		MaxRetries:    6,
		DB:            int(db),
		MasterName:    cfg.HASentinelMasterName,
	}
	if cfg.AuthRequired {
		opts.Password = cfg.Password
	}
	return opts
}

func options(cfg Config, db DB) *redis.Options {
	opts := &redis.Options{
		Addr:       fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		MaxRetries: 6,
		DB:         int(db),
	}
	if cfg.AuthRequired {
		opts.Password = cfg.Password
	}
	return opts
}

func (client *Client) getRaw(redisKey string) ([]byte, error) {
	b, err := client.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", redisKey, err)
	}
	return b, nil
}

// GetDocument decodes the JSON value stored under redisKey into doc.
func (client *Client) GetDocument(redisKey string, doc interface{}) error {
	b, err := client.getRaw(redisKey)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, doc); err != nil {
		return fmt.Errorf("decode %s: %w", redisKey, err)
	}
	return nil
}

// PatchDocument loads redisKey into doc, runs update and writes back only
// what update changed. The caller is expected to hold the key's lock.
func (client *Client) PatchDocument(redisKey string, doc interface{}, update func()) error {
	raw, err := client.getRaw(redisKey)
	if err != nil {
		return err
	}
	merged, err := MergeUpdate(raw, doc, update)
	if err != nil {
		return fmt.Errorf("update %s: %w", redisKey, err)
	}
	if err := client.client.Set(ctx, redisKey, merged, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", redisKey, err)
	}
	return nil
}

// UpdateDocument is PatchDocument under the key's lock.
func (client *Client) UpdateDocument(redisKey string, doc interface{}, update func()) (err error) {
	releaseLock, err := client.Lock(redisKey)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := releaseLock(); err == nil {
			err = releaseErr
		}
	}()
	return client.PatchDocument(redisKey, doc, update)
}

func (client *Client) Lock(redisKey string) (ReleaseLock, error) {
	locker := redislock.New(client.client)
	retry := redislock.LimitRetry(redislock.LinearBackoff(time.Second), 20)
	lock, err := locker.Obtain(ctx, lockKey(redisKey), client.lockExpiration, &redislock.Options{RetryStrategy: retry})
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", redisKey, err)
	}
	return func() error {
		return lock.Release(ctx)
	}, nil
}

func lockKey(redisKey string) string {
	return fmt.Sprintf("lock:%s", redisKey)
}

func (client *Client) Close() error {
	return client.client.Close()
}
