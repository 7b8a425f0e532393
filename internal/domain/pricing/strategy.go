package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
)

// Kind は料金戦略の種類を表す
type Kind string

const (
	KindRegular Kind = "regular"
	KindWeekend Kind = "weekend"
)

// DefaultBasePrice は基本料金（最小通貨単位、1000 = 10.00）
const DefaultBasePrice = 1000

// DefaultWeekendDays は週末料金を適用する曜日
var DefaultWeekendDays = []time.Weekday{time.Saturday, time.Sunday}

// Strategy は座席と上映日から料金を計算する
// 値型で保持し、座席予約の作成時にコピーされる
type Strategy struct {
	Kind        Kind
	BasePrice   int
	WeekendDays []time.Weekday
}

// Regular は常に基本料金を返す戦略を作成する
func Regular(basePrice int) Strategy {
	return Strategy{Kind: KindRegular, BasePrice: basePrice}
}

// Weekend は指定曜日に基本料金の1.5倍を返す戦略を作成する
// days が空の場合は土日を使用する
func Weekend(basePrice int, days ...time.Weekday) Strategy {
	if len(days) == 0 {
		days = DefaultWeekendDays
	}
	wd := make([]time.Weekday, len(days))
	copy(wd, days)
	return Strategy{Kind: KindWeekend, BasePrice: basePrice, WeekendDays: wd}
}

// New は種類名から戦略を作成する
func New(kind Kind, basePrice int, weekendDays ...time.Weekday) (Strategy, error) {
	if basePrice < 0 {
		return Strategy{}, ErrInvalidBasePrice
	}
	switch kind {
	case KindRegular:
		return Regular(basePrice), nil
	case KindWeekend:
		return Weekend(basePrice, weekendDays...), nil
	}
	return Strategy{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}

// Price は座席と上映日から料金を返す
// 上映日のみを使用し、現在時刻には依存しない
func (s Strategy) Price(_ seat.Seat, date time.Time) int {
	base := s.BasePrice
	if base < 0 {
		base = 0
	}
	if s.Kind == KindWeekend && s.IsWeekend(date) {
		return base * 3 / 2
	}
	return base
}

// IsWeekend は日付が週末料金の対象曜日かを返す
func (s Strategy) IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	for _, d := range s.WeekendDays {
		if d == wd {
			return true
		}
	}
	return false
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekdays は "sat,sun" 形式の曜日リストを解析する
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		d, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownWeekday, part)
		}
		days = append(days, d)
	}
	return days, nil
}
