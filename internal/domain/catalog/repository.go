package catalog

import "context"

// Catalog は映画・出演者・監督の参照を提供する（読み取り専用）
type Catalog interface {
	// GetMovie はIDから映画を取得する
	GetMovie(ctx context.Context, id string) (*Movie, error)

	// ListMovies は映画一覧を取得する
	ListMovies(ctx context.Context) ([]*Movie, error)

	// GetActor はIDから出演者を取得する
	GetActor(ctx context.Context, id string) (*Actor, error)

	// GetDirector はIDから監督を取得する
	GetDirector(ctx context.Context, id string) (*Director, error)
}

// UserDirectory はユーザーの参照を提供する
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*User, error)
}
