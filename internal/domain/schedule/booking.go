package schedule

import (
	"sync"
	"time"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/pricing"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/seat"
)

// SeatBooking はスケジュール内の1座席に対する予約を表す
// 状態遷移は mu で直列化される
//
//	pending → locked → confirmed
//	locked  → expired（期限切れは参照時に判定）
//	pending | locked → cancelled
type SeatBooking struct {
	id       string
	seat     seat.Seat
	schedule *Schedule
	strategy pricing.Strategy

	mu         sync.Mutex
	status     Status
	lockExpiry *time.Time
	purchaser  *catalog.User
	holder     string // 仮押さえした利用者ID。空なら確定・取消の利用者を問わない
	revision   uint64 // 状態遷移のたびに増える
}

func newSeatBooking(id string, s seat.Seat, sched *Schedule) *SeatBooking {
	return &SeatBooking{
		id:       id,
		seat:     s,
		schedule: sched,
		strategy: sched.strategy,
		status:   StatusPending,
	}
}

// ID は予約IDを返す
func (b *SeatBooking) ID() string { return b.id }

// Seat は対象座席を返す
func (b *SeatBooking) Seat() seat.Seat { return b.seat }

// Schedule は所属スケジュールを返す
func (b *SeatBooking) Schedule() *Schedule { return b.schedule }

// Status は現在の状態を返す（期限切れの判定は行わない）
func (b *SeatBooking) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// LockExpiry は仮押さえの期限を返す。locked 以外では nil
func (b *SeatBooking) LockExpiry() *time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lockExpiry == nil {
		return nil
	}
	exp := *b.lockExpiry
	return &exp
}

// Purchaser は購入者を返す。confirmed 以外では nil
func (b *SeatBooking) Purchaser() *catalog.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.purchaser
}

// Lock は座席を仮押さえする。pending からのみ可能
func (b *SeatBooking) Lock(now time.Time) error {
	_, err := b.LockHold(now)
	return err
}

// Hold は仮押さえ時点のリビジョンを保持する
// 他者による取消・再仮押さえと自分の仮押さえを区別するために使う
type Hold struct {
	Booking  *SeatBooking
	Revision uint64
}

// LockHold は座席を仮押さえし、その仮押さえを表す Hold を返す
func (b *SeatBooking) LockHold(now time.Time) (Hold, error) {
	return b.LockHoldFor("", now)
}

// LockHoldFor は holderID の利用者として仮押さえする
// 期限内は holderID 以外の利用者による確定・取消を ErrNotLockHolder で拒否する
func (b *SeatBooking) LockHoldFor(holderID string, now time.Time) (Hold, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.observeExpiryLocked(now)
	if b.status != StatusPending {
		return Hold{}, transitionError(b.status, StatusLocked)
	}
	exp := now.Add(b.schedule.lockDuration)
	b.status = StatusLocked
	b.lockExpiry = &exp
	b.holder = holderID
	b.revision++
	return Hold{Booking: b, Revision: b.revision}, nil
}

// Holder は仮押さえした利用者IDを返す。locked 以外または匿名の仮押さえでは空
func (b *SeatBooking) Holder() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.holder
}

// Release は Hold 以降に変化していない仮押さえのみ取り消す
func (h Hold) Release() error {
	b := h.Booking
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.revision != h.Revision {
		return ErrLockLost
	}
	return b.cancelLocked()
}

// IsExpired は仮押さえが期限切れかを返す
func (b *SeatBooking) IsExpired(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.isExpiredLocked(now)
}

// Confirm は仮押さえ中の座席を購入者に確定する
func (b *SeatBooking) Confirm(user *catalog.User, now time.Time) error {
	if user == nil {
		return ErrPurchaserRequired
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkConfirmableLocked(now); err != nil {
		return err
	}
	if err := b.checkHolderLocked(user.ID); err != nil {
		return err
	}
	b.confirmLocked(user)
	return nil
}

// Cancel は pending または locked の予約を取り消す
// 期限切れの仮押さえは expired に遷移させたうえで ErrInvalidTransition を返す
func (b *SeatBooking) Cancel(now time.Time) error {
	return b.CancelBy("", now)
}

// CancelBy は userID の利用者として取り消す
// 他の利用者の仮押さえは ErrNotLockHolder で拒否する
func (b *SeatBooking) CancelBy(userID string, now time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.observeExpiryLocked(now)
	if b.status == StatusLocked {
		if err := b.checkHolderLocked(userID); err != nil {
			return err
		}
	}
	return b.cancelLocked()
}

func (b *SeatBooking) cancelLocked() error {
	if b.status != StatusPending && b.status != StatusLocked {
		return transitionError(b.status, StatusCancelled)
	}
	b.status = StatusCancelled
	b.lockExpiry = nil
	b.holder = ""
	b.revision++
	return nil
}

func (b *SeatBooking) checkHolderLocked(userID string) error {
	if b.holder != "" && b.holder != userID {
		return ErrNotLockHolder
	}
	return nil
}

// Price は料金戦略による座席料金を返す。状態に関係なく見積もりに使える
func (b *SeatBooking) Price() int {
	return b.strategy.Price(b.seat, b.schedule.Date)
}

// Snapshot は参照用の予約情報
type Snapshot struct {
	ID          string
	SeatID      string
	Status      Status
	LockExpiry  *time.Time
	HolderID    string
	PurchaserID string
	Price       int
}

// Snapshot は now 時点の状態を返す。期限切れの仮押さえは expired として報告するが状態は変更しない
func (b *SeatBooking) Snapshot(now time.Time) Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := Snapshot{
		ID:     b.id,
		SeatID: b.seat.ID,
		Status: b.status,
		Price:  b.strategy.Price(b.seat, b.schedule.Date),
	}
	if b.isExpiredLocked(now) {
		snap.Status = StatusExpired
	} else if b.lockExpiry != nil {
		exp := *b.lockExpiry
		snap.LockExpiry = &exp
		snap.HolderID = b.holder
	}
	if b.purchaser != nil {
		snap.PurchaserID = b.purchaser.ID
	}
	return snap
}

func (b *SeatBooking) isExpiredLocked(now time.Time) bool {
	return b.status == StatusLocked && b.lockExpiry != nil && !now.Before(*b.lockExpiry)
}

// observeExpiryLocked は期限切れの仮押さえを expired に遷移させる
func (b *SeatBooking) observeExpiryLocked(now time.Time) {
	if b.isExpiredLocked(now) {
		b.status = StatusExpired
		b.lockExpiry = nil
		b.holder = ""
		b.revision++
	}
}

func (b *SeatBooking) checkConfirmableLocked(now time.Time) error {
	if b.isExpiredLocked(now) {
		b.observeExpiryLocked(now)
		return ErrLockExpired
	}
	if b.status != StatusLocked {
		return transitionError(b.status, StatusConfirmed)
	}
	return nil
}

func (b *SeatBooking) confirmLocked(user *catalog.User) {
	b.status = StatusConfirmed
	b.lockExpiry = nil
	b.holder = ""
	b.purchaser = user
	b.revision++
}

// resetIfReusable は取消済み・期限切れの予約を pending に戻す
func (b *SeatBooking) resetIfReusable(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.observeExpiryLocked(now)
	if b.status == StatusCancelled || b.status == StatusExpired {
		b.status = StatusPending
		b.lockExpiry = nil
		b.holder = ""
		b.purchaser = nil
		b.revision++
	}
}
