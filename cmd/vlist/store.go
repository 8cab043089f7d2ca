package main

import (
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/vango-dev/vlist/internal/config"
	"github.com/vango-dev/vlist/internal/errors"
	"github.com/vango-dev/vlist/pkg/snapshot"
)

// openStore returns the snapshot store selected by cfg. S3 credentials come
// from the standard AWS environment variables. The Redis client connects
// lazily, so a missing server surfaces on first use.
func openStore(cfg *config.Config) (snapshot.Store, error) {
	if cfg.UsesS3() {
		s3cfg := cfg.Snapshots.S3
		client := snapshot.NewS3Client(snapshot.S3ClientOptions{
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			PathStyle:       s3cfg.PathStyle,
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		})
		return snapshot.NewS3Store(client, s3cfg.Bucket, s3cfg.Prefix), nil
	}
	if cfg.UsesRedis() {
		rcfg := cfg.Snapshots.Redis
		client := redis.NewClient(&redis.Options{
			Addr:     rcfg.Addr,
			Password: rcfg.Password,
			DB:       rcfg.DB,
		})
		return snapshot.NewRedisStore(client, rcfg.Prefix, cfg.RedisTTL()), nil
	}

	store, err := snapshot.NewDiskStore(cfg.SnapshotDir())
	if err != nil {
		return nil, errors.New("E170").Wrap(err)
	}
	return store, nil
}
