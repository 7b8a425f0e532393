package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
)

// ConfirmBatch は仮押さえをまとめて確定する
// すべて確定できる場合のみ確定し、1件でも不可なら何も確定しない
// ミューテックスは座席ID順に取得する
func (s *Schedule) ConfirmBatch(holds []Hold, user *catalog.User, now time.Time) error {
	if user == nil {
		return ErrPurchaserRequired
	}
	ordered := make([]Hold, len(holds))
	copy(ordered, holds)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Booking.seat.ID < ordered[j].Booking.seat.ID
	})
	for i, h := range ordered {
		if h.Booking.schedule != s {
			return fmt.Errorf("%w: %s", ErrForeignBooking, h.Booking.id)
		}
		if i > 0 && ordered[i-1].Booking == h.Booking {
			return fmt.Errorf("%w: %s", ErrDuplicateSeat, h.Booking.seat.ID)
		}
	}

	for _, h := range ordered {
		h.Booking.mu.Lock()
	}
	defer func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			ordered[i].Booking.mu.Unlock()
		}
	}()

	for _, h := range ordered {
		b := h.Booking
		if err := b.checkConfirmableLocked(now); err != nil {
			return fmt.Errorf("座席 %s: %w", b.seat.ID, err)
		}
		if b.revision != h.Revision {
			return fmt.Errorf("座席 %s: %w", b.seat.ID, ErrLockLost)
		}
		if err := b.checkHolderLocked(user.ID); err != nil {
			return fmt.Errorf("座席 %s: %w", b.seat.ID, err)
		}
	}
	for _, h := range ordered {
		h.Booking.confirmLocked(user)
	}
	return nil
}
