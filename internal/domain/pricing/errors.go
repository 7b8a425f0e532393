package pricing

import "errors"

var (
	ErrUnknownKind      = errors.New("未定義の料金戦略です")
	ErrInvalidBasePrice = errors.New("基本料金は0以上である必要があります")
	ErrUnknownWeekday   = errors.New("曜日の指定が不正です")
)
