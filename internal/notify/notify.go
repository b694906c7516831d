package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	AppointmentCreated   = "appointment_created"
	AppointmentUpdated   = "appointment_updated"
	AppointmentCancelled = "appointment_cancelled"
	HoldRequested        = "hold_requested"
	HoldApproved         = "hold_approved"
	HoldRejected         = "hold_rejected"
)

// Event is the payload fanned out to device push workers.
type Event struct {
	Type          string    `json:"type"`
	DoctorID      uint      `json:"doctor_id"`
	PatientID     *uint     `json:"patient_id,omitempty"`
	AppointmentID *uint     `json:"appointment_id,omitempty"`
	HoldRequestID *uint     `json:"hold_request_id,omitempty"`
	Date          string    `json:"date,omitempty"`
	Time          string    `json:"time,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

// Notifier publishes events from a background worker. Delivery is best
// effort: a full queue drops the event and publish errors are only logged.
type Notifier struct {
	pub     Publisher
	channel string
	log     *zap.Logger
	timeout time.Duration

	queue chan Event
	once  sync.Once
	done  chan struct{}
}

func NewNotifier(pub Publisher, channel string, log *zap.Logger) *Notifier {
	n := &Notifier{
		pub:     pub,
		channel: channel,
		log:     log,
		timeout: 3 * time.Second,
		queue:   make(chan Event, 100),
		done:    make(chan struct{}),
	}
	go n.worker()
	return n
}

func (n *Notifier) worker() {
	defer close(n.done)
	for ev := range n.queue {
		n.publish(ev)
	}
}

func (n *Notifier) publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		n.log.Error("notification encode failed", zap.String("type", ev.Type), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.pub.Publish(ctx, n.channel, payload); err != nil {
		n.log.Warn("notification publish failed",
			zap.String("type", ev.Type),
			zap.Uint("doctor_id", ev.DoctorID),
			zap.Error(err),
		)
	}
}

func (n *Notifier) Notify(ev Event) {
	if n == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	select {
	case n.queue <- ev:
	default:
		n.log.Warn("notification queue full, dropping event", zap.String("type", ev.Type))
	}
}

// Close flushes queued events and stops the worker.
func (n *Notifier) Close() {
	if n == nil {
		return
	}
	n.once.Do(func() { close(n.queue) })
	<-n.done
}
