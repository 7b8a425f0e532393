package application

import "errors"

var (
	ErrUserIDRequired     = errors.New("ユーザーIDは必須です")
	ErrScheduleIDRequired = errors.New("スケジュールIDは必須です")
	ErrPurchaseInProgress = errors.New("座席が他のユーザーによって処理中です")
	ErrSeatNotLocked      = errors.New("座席は仮押さえされていません")
)
