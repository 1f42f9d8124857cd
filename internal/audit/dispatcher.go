package audit

import (
	"context"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/salon-queue/internal/metrics"
)

type Event struct {
	SalonID  string
	UserID   *string
	Action   string
	Entity   string
	EntityID *string
	Metadata any
}

// Dispatcher writes audit events off the request path. When the buffer is
// full the event is dropped; auditing never fails an API call.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(ctx, ev); err != nil {
			zlog.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		metrics.AuditDropped.Inc()
		zlog.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close drains the buffered events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close(ctx context.Context) {
	d.once.Do(func() { close(d.queue) })

	select {
	case <-d.done:
	case <-ctx.Done():
		zlog.Warn().Msg("audit drain interrupted")
	}
}
