package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
)

// Catalog はメモリ上の映画カタログとユーザー一覧
type Catalog struct {
	mu        sync.RWMutex
	movies    map[string]*catalog.Movie
	actors    map[string]*catalog.Actor
	directors map[string]*catalog.Director
	users     map[string]*catalog.User
}

func NewCatalog() *Catalog {
	return &Catalog{
		movies:    make(map[string]*catalog.Movie),
		actors:    make(map[string]*catalog.Actor),
		directors: make(map[string]*catalog.Director),
		users:     make(map[string]*catalog.User),
	}
}

// NewSeededCatalog はデモ用のデータを登録済みのカタログを返す
// 内容は migrations のシードと同じ
func NewSeededCatalog() *Catalog {
	c := NewCatalog()
	c.AddDirector(&catalog.Director{ID: "director-nolan", Name: "Christopher Nolan"})
	c.AddActor(&catalog.Actor{ID: "actor-dicaprio", Name: "Leonardo DiCaprio"})
	c.AddMovie(&catalog.Movie{
		ID:         "movie-inception",
		Title:      "Inception",
		ReleasedAt: time.Date(2010, time.July, 16, 0, 0, 0, 0, time.UTC),
		CastIDs:    []string{"actor-dicaprio"},
		DirectorID: "director-nolan",
	})
	c.AddUser(&catalog.User{ID: "user-1", Name: "John Doe"})
	c.AddUser(&catalog.User{ID: "user-2", Name: "Jane Roe"})
	return c
}

func (c *Catalog) AddMovie(m *catalog.Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movies[m.ID] = cloneMovie(m)
}

func (c *Catalog) AddActor(a *catalog.Actor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *a
	c.actors[a.ID] = &cp
}

func (c *Catalog) AddDirector(d *catalog.Director) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *d
	c.directors[d.ID] = &cp
}

func (c *Catalog) AddUser(u *catalog.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *u
	c.users[u.ID] = &cp
}

func (c *Catalog) GetMovie(_ context.Context, id string) (*catalog.Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.movies[id]
	if !ok {
		return nil, catalog.ErrMovieNotFound
	}
	return cloneMovie(m), nil
}

// ListMovies は公開日順に映画を返す
func (c *Catalog) ListMovies(_ context.Context) ([]*catalog.Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*catalog.Movie, 0, len(c.movies))
	for _, m := range c.movies {
		out = append(out, cloneMovie(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReleasedAt.Equal(out[j].ReleasedAt) {
			return out[i].ReleasedAt.Before(out[j].ReleasedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (c *Catalog) GetActor(_ context.Context, id string) (*catalog.Actor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.actors[id]
	if !ok {
		return nil, catalog.ErrActorNotFound
	}
	cp := *a
	return &cp, nil
}

func (c *Catalog) GetDirector(_ context.Context, id string) (*catalog.Director, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.directors[id]
	if !ok {
		return nil, catalog.ErrDirectorNotFound
	}
	cp := *d
	return &cp, nil
}

func (c *Catalog) GetUser(_ context.Context, id string) (*catalog.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[id]
	if !ok {
		return nil, catalog.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func cloneMovie(m *catalog.Movie) *catalog.Movie {
	cp := *m
	cp.CastIDs = append([]string(nil), m.CastIDs...)
	return &cp
}

var (
	_ catalog.Catalog       = (*Catalog)(nil)
	_ catalog.UserDirectory = (*Catalog)(nil)
)
