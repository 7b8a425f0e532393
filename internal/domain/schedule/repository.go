package schedule

import "context"

// Repository は上映スケジュールの登録と参照を提供する
type Repository interface {
	// Add はスケジュールを登録する。同じIDが存在する場合は ErrScheduleExists
	Add(ctx context.Context, s *Schedule) error

	// GetByID はIDからスケジュールを取得する
	GetByID(ctx context.Context, id string) (*Schedule, error)

	// List は登録済みのスケジュールを日付、開始時刻、ID順に返す
	List(ctx context.Context) ([]*Schedule, error)
}
