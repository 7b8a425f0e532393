package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/schedule"
)

// ScheduleRepository はプロセス内で上映スケジュールを保持する
// 座席予約の状態はスケジュール自体が持つため、ここでは参照のみ管理する
type ScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[string]*schedule.Schedule
}

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{schedules: make(map[string]*schedule.Schedule)}
}

func (r *ScheduleRepository) Add(_ context.Context, s *schedule.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schedules[s.ID]; ok {
		return fmt.Errorf("%w: %s", schedule.ErrScheduleExists, s.ID)
	}
	r.schedules[s.ID] = s
	return nil
}

func (r *ScheduleRepository) GetByID(_ context.Context, id string) (*schedule.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schedules[id]
	if !ok {
		return nil, schedule.ErrScheduleNotFound
	}
	return s, nil
}

func (r *ScheduleRepository) List(_ context.Context) ([]*schedule.Schedule, error) {
	r.mu.RLock()
	out := make([]*schedule.Schedule, 0, len(r.schedules))
	for _, s := range r.schedules {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return out, nil
}

var _ schedule.Repository = (*ScheduleRepository)(nil)
