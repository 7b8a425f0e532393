package ticket

import "errors"

// Ticket ドメインのエラー定義
var (
	ErrSeatUnavailable      = errors.New("座席は他の利用者が確保しています")
	ErrBookingFailed        = errors.New("座席の確定に失敗しました")
	ErrInvalidSeatSelection = errors.New("座席の指定が不正です")
)
