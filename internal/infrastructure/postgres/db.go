package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/config"
)

const connectTimeout = 5 * time.Second

// NewConnection はカタログ参照用のPostgreSQL接続を作成する
// 参照のみのため接続数は少なめにする
func NewConnection(ctx context.Context, cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗しました (%s:%s/%s): %w", cfg.Host, cfg.Port, cfg.DBName, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
