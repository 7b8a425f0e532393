package schedule

import (
	"errors"
	"fmt"
)

// Schedule ドメインのエラー定義
var (
	ErrInvalidTransition  = errors.New("現在の状態ではこの操作はできません")
	ErrLockExpired        = errors.New("座席の仮押さえ期限が切れています")
	ErrSeatNotFound       = errors.New("座席が見つかりません")
	ErrDuplicateSeat      = errors.New("座席IDが重複しています")
	ErrScheduleIDRequired = errors.New("スケジュールIDは必須です")
	ErrMovieRequired      = errors.New("映画は必須です")
	ErrPurchaserRequired  = errors.New("購入者は必須です")
	ErrForeignBooking     = errors.New("別のスケジュールの座席予約です")
	ErrLockLost           = errors.New("仮押さえが他の操作により失われました")
	ErrNotLockHolder      = errors.New("他の利用者が仮押さえしている座席です")
	ErrScheduleNotFound   = errors.New("上映スケジュールが見つかりません")
	ErrScheduleExists     = errors.New("上映スケジュールは既に登録されています")
)

func transitionError(from, to Status) error {
	return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, from, to)
}
