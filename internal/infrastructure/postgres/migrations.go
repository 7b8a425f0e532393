package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
)

// RunMigrations はカタログのスキーマとシードを最新まで適用し、適用後のバージョンを返す
func RunMigrations(db *sqlx.DB, migrationsPath string) (uint, error) {
	driver, err := migratepg.WithInstance(db.DB, &migratepg.Config{})
	if err != nil {
		return 0, fmt.Errorf("マイグレーションドライバー作成エラー: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return 0, fmt.Errorf("マイグレーション読み込みエラー (%s): %w", migrationsPath, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("マイグレーション実行エラー: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("マイグレーションバージョン取得エラー: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("マイグレーション %d が途中で失敗しています", version)
	}
	logger.Info("カタログのマイグレーション完了", zap.Uint("version", version))
	return version, nil
}
