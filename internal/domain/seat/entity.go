package seat

// Type は座席の種別を表す
type Type string

const (
	TypeNormal   Type = "normal"
	TypeRecliner Type = "recliner"
)

// IsValid は定義済みの座席種別かを返す
func (t Type) IsValid() bool {
	switch t {
	case TypeNormal, TypeRecliner:
		return true
	}
	return false
}

// Seat は上映スケジュール内で一意な座席を表す
// 値として扱い、作成後は変更しない
type Seat struct {
	ID   string
	Type Type
}

// NewSeat は検証済みの座席を作成する
func NewSeat(id string, t Type) (Seat, error) {
	s := Seat{ID: id, Type: t}
	if err := s.Validate(); err != nil {
		return Seat{}, err
	}
	return s, nil
}

// Validate は座席の検証を行う
func (s Seat) Validate() error {
	if s.ID == "" {
		return ErrSeatIDRequired
	}
	if !s.Type.IsValid() {
		return ErrInvalidSeatType
	}
	return nil
}

// IsRecliner はリクライナー席かを返す
func (s Seat) IsRecliner() bool {
	return s.Type == TypeRecliner
}
