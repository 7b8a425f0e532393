package catalog

import "errors"

var (
	ErrMovieNotFound    = errors.New("映画が見つかりません")
	ErrActorNotFound    = errors.New("出演者が見つかりません")
	ErrDirectorNotFound = errors.New("監督が見つかりません")
	ErrUserNotFound     = errors.New("ユーザーが見つかりません")
)
