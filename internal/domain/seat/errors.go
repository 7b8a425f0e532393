package seat

import "errors"

// Seat ドメインのエラー定義
var (
	ErrSeatIDRequired  = errors.New("座席IDは必須です")
	ErrInvalidSeatType = errors.New("座席種別が不正です")
)
