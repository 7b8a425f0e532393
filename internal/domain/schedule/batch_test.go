package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockHolds(t *testing.T, sc *Schedule, now time.Time, seatIDs ...string) []Hold {
	t.Helper()
	out := make([]Hold, 0, len(seatIDs))
	for _, id := range seatIDs {
		h, err := requestBooking(t, sc, id).LockHold(now)
		require.NoError(t, err)
		out = append(out, h)
	}
	return out
}

func TestSchedule_ConfirmBatch(t *testing.T) {
	t.Run("すべて確定する", func(t *testing.T) {
		sc, _ := createTestSchedule(t)
		holds := lockHolds(t, sc, testNow, "A2", "A1")

		err := sc.ConfirmBatch(holds, testUser, testNow)

		require.NoError(t, err)
		for _, h := range holds {
			assert.Equal(t, StatusConfirmed, h.Booking.Status())
			assert.Equal(t, testUser, h.Booking.Purchaser())
		}
	})

	t.Run("1件でも仮押さえでなければ何も確定しない", func(t *testing.T) {
		sc, _ := createTestSchedule(t)
		holds := lockHolds(t, sc, testNow, "A1", "A2")
		require.NoError(t, holds[1].Booking.Cancel(testNow))

		err := sc.ConfirmBatch(holds, testUser, testNow)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, StatusLocked, holds[0].Booking.Status())
		assert.Nil(t, holds[0].Booking.Purchaser())
		assert.Equal(t, StatusCancelled, holds[1].Booking.Status())
	})

	t.Run("他者に取り直された仮押さえは確定しない", func(t *testing.T) {
		sc, _ := createTestSchedule(t)
		holds := lockHolds(t, sc, testNow, "A1", "A2")
		require.NoError(t, holds[1].Booking.Cancel(testNow))
		// 別の利用者が同じ座席を取り直す
		relocked := lockHolds(t, sc, testNow, "A2")

		err := sc.ConfirmBatch(holds, testUser, testNow)

		assert.ErrorIs(t, err, ErrLockLost)
		assert.Equal(t, StatusLocked, holds[0].Booking.Status())
		assert.Equal(t, StatusLocked, relocked[0].Booking.Status())
		assert.Nil(t, relocked[0].Booking.Purchaser())
	})

	t.Run("期限切れを含む場合は ErrLockExpired", func(t *testing.T) {
		sc, _ := createTestSchedule(t)
		early := lockHolds(t, sc, testNow, "A1")
		late := lockHolds(t, sc, testNow.Add(time.Minute), "A2")
		confirmAt := testNow.Add(DefaultLockDuration)

		err := sc.ConfirmBatch(append(early, late...), testUser, confirmAt)

		assert.ErrorIs(t, err, ErrLockExpired)
		assert.Equal(t, StatusExpired, early[0].Booking.Status())
		assert.Equal(t, StatusLocked, late[0].Booking.Status())
	})

	t.Run("別スケジュールの予約は拒否する", func(t *testing.T) {
		sc, _ := createTestSchedule(t)
		other, _ := createTestSchedule(t)
		holds := append(lockHolds(t, sc, testNow, "A1"), lockHolds(t, other, testNow, "A2")...)

		err := sc.ConfirmBatch(holds, testUser, testNow)

		assert.ErrorIs(t, err, ErrForeignBooking)
		assert.Equal(t, StatusLocked, holds[0].Booking.Status())
	})

	t.Run("同じ予約の重複は拒否する", func(t *testing.T) {
		sc, _ := createTestSchedule(t)
		holds := lockHolds(t, sc, testNow, "A1")

		err := sc.ConfirmBatch([]Hold{holds[0], holds[0]}, testUser, testNow)

		assert.ErrorIs(t, err, ErrDuplicateSeat)
	})

	t.Run("購入者なし", func(t *testing.T) {
		sc, _ := createTestSchedule(t)
		holds := lockHolds(t, sc, testNow, "A1")

		err := sc.ConfirmBatch(holds, nil, testNow)

		assert.ErrorIs(t, err, ErrPurchaserRequired)
	})

	t.Run("他の利用者の仮押さえを含む場合は何も確定しない", func(t *testing.T) {
		sc, _ := createTestSchedule(t)
		own := lockHolds(t, sc, testNow, "A1")[0]
		theirs, err := requestBooking(t, sc, "A2").LockHoldFor(otherUser.ID, testNow)
		require.NoError(t, err)

		err = sc.ConfirmBatch([]Hold{own, theirs}, testUser, testNow)

		assert.ErrorIs(t, err, ErrNotLockHolder)
		assert.Equal(t, StatusLocked, own.Booking.Status())
		assert.Equal(t, StatusLocked, theirs.Booking.Status())
		assert.Equal(t, otherUser.ID, theirs.Booking.Holder())
	})
}

func TestHold_Release(t *testing.T) {
	t.Run("自分の仮押さえを取り消す", func(t *testing.T) {
		sc, _ := createTestSchedule(t)
		h := lockHolds(t, sc, testNow, "A1")[0]

		require.NoError(t, h.Release())
		assert.Equal(t, StatusCancelled, h.Booking.Status())
	})

	t.Run("取り直された仮押さえには触れない", func(t *testing.T) {
		sc, _ := createTestSchedule(t)
		h := lockHolds(t, sc, testNow, "A1")[0]
		require.NoError(t, h.Booking.Cancel(testNow))
		other := lockHolds(t, sc, testNow, "A1")[0]

		err := h.Release()

		assert.ErrorIs(t, err, ErrLockLost)
		assert.Equal(t, StatusLocked, other.Booking.Status())
		assert.Same(t, h.Booking, other.Booking)
	})
}
