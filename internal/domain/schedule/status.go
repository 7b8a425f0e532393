package schedule

// Status は座席予約の状態を表す
type Status string

const (
	StatusPending   Status = "pending"
	StatusLocked    Status = "locked"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// AllStatuses は集計用の全状態
var AllStatuses = []Status{
	StatusPending,
	StatusLocked,
	StatusConfirmed,
	StatusCancelled,
	StatusExpired,
}

// IsTerminal は終端状態かを返す
func (s Status) IsTerminal() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}
