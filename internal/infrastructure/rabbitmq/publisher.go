package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/domain/ticket"
	"github.com/sanosuguru/go-movie-ticket-booking/internal/pkg/logger"
)

// DefaultDialTimeout はブローカーへの接続と送信の待ち時間の上限
const DefaultDialTimeout = 2 * time.Second

// Publisher はチケット発行イベントをキューへ送信する
// 送信ごとに接続を張るため、発行頻度が低い用途を想定している
type Publisher struct {
	url     string
	queue   string
	timeout time.Duration
	dial    func(url string, timeout time.Duration) (*amqp.Connection, error)
}

// PublisherOption は Publisher の設定を変更する
type PublisherOption func(*Publisher)

// WithDialTimeout は接続と送信の待ち時間の上限を指定する
func WithDialTimeout(d time.Duration) PublisherOption {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

func NewPublisher(url, queue string, opts ...PublisherOption) *Publisher {
	p := &Publisher{url: url, queue: queue, timeout: DefaultDialTimeout, dial: dialWithTimeout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func dialWithTimeout(url string, timeout time.Duration) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// Queue は送信先のキュー名を返す
func (p *Publisher) Queue() string {
	return p.queue
}

// PublishTicketIssued はチケット発行イベントを永続メッセージとして送信する
func (p *Publisher) PublishTicketIssued(ctx context.Context, t *ticket.Ticket) error {
	body, err := json.Marshal(NewTicketIssuedEvent(t))
	if err != nil {
		return fmt.Errorf("イベントのエンコードに失敗: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("送信を中止しました: %w", err)
	}

	// 接続待ちは呼び出し元の期限も超えない
	timeout := p.timeout
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}
	conn, err := p.dial(p.url, timeout)
	if err != nil {
		return fmt.Errorf("AMQP接続に失敗: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("チャネル作成に失敗: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("キュー宣言に失敗: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    t.ID(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("イベント送信に失敗: %w", err)
	}

	logger.Debug("チケット発行イベントを送信しました",
		zap.String("ticket_id", t.ID()),
		zap.String("queue", p.queue),
	)
	return nil
}
