package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
)

const movieColumns = `
	m.id, m.title, m.released_at, m.director_id,
	COALESCE(array_agg(mc.actor_id ORDER BY mc.billing) FILTER (WHERE mc.actor_id IS NOT NULL), '{}') AS cast_ids
`

type movieRow struct {
	ID         string         `db:"id"`
	Title      string         `db:"title"`
	ReleasedAt time.Time      `db:"released_at"`
	DirectorID string         `db:"director_id"`
	CastIDs    pq.StringArray `db:"cast_ids"`
}

func (r *movieRow) toEntity() *catalog.Movie {
	return &catalog.Movie{
		ID:         r.ID,
		Title:      r.Title,
		ReleasedAt: r.ReleasedAt,
		DirectorID: r.DirectorID,
		CastIDs:    []string(r.CastIDs),
	}
}

type personRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// CatalogRepository は映画カタログのPostgreSQL実装（読み取り専用）
type CatalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetMovie はIDから映画を取得する
func (r *CatalogRepository) GetMovie(ctx context.Context, id string) (*catalog.Movie, error) {
	query := `SELECT ` + movieColumns + `
		FROM movies m
		LEFT JOIN movie_cast mc ON mc.movie_id = m.id
		WHERE m.id = $1
		GROUP BY m.id`

	var row movieRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrMovieNotFound
		}
		return nil, fmt.Errorf("映画取得に失敗しました: %w", err)
	}
	return row.toEntity(), nil
}

// ListMovies は公開日順に映画一覧を取得する
func (r *CatalogRepository) ListMovies(ctx context.Context) ([]*catalog.Movie, error) {
	query := `SELECT ` + movieColumns + `
		FROM movies m
		LEFT JOIN movie_cast mc ON mc.movie_id = m.id
		GROUP BY m.id
		ORDER BY m.released_at, m.id`

	var rows []movieRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("映画一覧取得に失敗しました: %w", err)
	}

	movies := make([]*catalog.Movie, len(rows))
	for i := range rows {
		movies[i] = rows[i].toEntity()
	}
	return movies, nil
}

func (r *CatalogRepository) GetActor(ctx context.Context, id string) (*catalog.Actor, error) {
	row, err := r.getPerson(ctx, `SELECT id, name FROM actors WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrActorNotFound
		}
		return nil, fmt.Errorf("出演者取得に失敗しました: %w", err)
	}
	return &catalog.Actor{ID: row.ID, Name: row.Name}, nil
}

func (r *CatalogRepository) GetDirector(ctx context.Context, id string) (*catalog.Director, error) {
	row, err := r.getPerson(ctx, `SELECT id, name FROM directors WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrDirectorNotFound
		}
		return nil, fmt.Errorf("監督取得に失敗しました: %w", err)
	}
	return &catalog.Director{ID: row.ID, Name: row.Name}, nil
}

// GetUser はIDから購入者を取得する
func (r *CatalogRepository) GetUser(ctx context.Context, id string) (*catalog.User, error) {
	row, err := r.getPerson(ctx, `SELECT id, name FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrUserNotFound
		}
		return nil, fmt.Errorf("ユーザー取得に失敗しました: %w", err)
	}
	return &catalog.User{ID: row.ID, Name: row.Name}, nil
}

func (r *CatalogRepository) getPerson(ctx context.Context, query, id string) (*personRow, error) {
	var row personRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return &row, nil
}

var (
	_ catalog.Catalog       = (*CatalogRepository)(nil)
	_ catalog.UserDirectory = (*CatalogRepository)(nil)
)
