package catalog

import "time"

// Movie は映画を表す
// 出演者と監督はIDで参照する
type Movie struct {
	ID         string
	Title      string
	ReleasedAt time.Time
	CastIDs    []string
	DirectorID string
}

// Actor は出演者を表す
type Actor struct {
	ID   string
	Name string
}

// Director は監督を表す
type Director struct {
	ID   string
	Name string
}

// User はチケット購入者を表す
type User struct {
	ID   string
	Name string
}
