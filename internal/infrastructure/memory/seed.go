package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
)

// SeedOptions は起動時に作成する上映回の設定
type SeedOptions struct {
	Date         time.Time
	StartTimes   []string
	SeatsPerRow  int
	ScheduleOpts []schedule.Option
}

// DefaultSeatLayout は A 列を通常席、B 列をリクライニング席とする座席配置を返す
func DefaultSeatLayout(seatsPerRow int) []seat.Seat {
	rows := []struct {
		name string
		typ  seat.Type
	}{
		{"A", seat.TypeNormal},
		{"B", seat.TypeRecliner},
	}
	seats := make([]seat.Seat, 0, len(rows)*seatsPerRow)
	for _, row := range rows {
		for n := 1; n <= seatsPerRow; n++ {
			seats = append(seats, seat.Seat{ID: fmt.Sprintf("%s%d", row.name, n), Type: row.typ})
		}
	}
	return seats
}

// SeedSchedules はカタログの映画ごとに上映回を作成してリポジトリに登録する
// スケジュールIDは "<movieID>-<開始時刻>" 形式（例: movie-inception-1930）
func SeedSchedules(ctx context.Context, movies catalog.Catalog, repo schedule.Repository, opts SeedOptions) ([]*schedule.Schedule, error) {
	if opts.SeatsPerRow <= 0 {
		opts.SeatsPerRow = 2
	}
	if len(opts.StartTimes) == 0 {
		opts.StartTimes = []string{"19:30"}
	}

	list, err := movies.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("映画一覧の取得に失敗: %w", err)
	}

	var created []*schedule.Schedule
	for _, m := range list {
		for _, start := range opts.StartTimes {
			id := fmt.Sprintf("%s-%s", m.ID, strings.ReplaceAll(start, ":", ""))
			s, err := schedule.NewSchedule(id, m, start, opts.Date, DefaultSeatLayout(opts.SeatsPerRow), opts.ScheduleOpts...)
			if err != nil {
				return nil, fmt.Errorf("スケジュール %s の作成に失敗: %w", id, err)
			}
			if err := repo.Add(ctx, s); err != nil {
				return nil, err
			}
			created = append(created, s)
		}
	}
	return created, nil
}
