package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/config"
)

const pingTimeout = 3 * time.Second

// NewClient はRedisクライアントを作成する
// ロックとキャッシュは短い操作のみなのでタイムアウトを短めにする
func NewClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  pingTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// Connect はクライアントを作成し、疎通確認まで行う
func Connect(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := NewClient(cfg)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis接続に失敗しました (%s): %w", cfg.Addr(), err)
	}
	return client, nil
}
