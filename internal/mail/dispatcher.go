package mail

import (
	"context"
	"sync"
	"time"

	"github.com/monocle-dev/tracker/internal/metrics"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

const sendTimeout = 30 * time.Second

// Dispatcher sends mail on a bounded worker pool. Delivery is best effort:
// failures are logged and never reported back to the caller.
type Dispatcher struct {
	mailer Mailer
	pool   *ants.Pool
	wg     sync.WaitGroup
}

func NewDispatcher(mailer Mailer, workers int) (*Dispatcher, error) {
	if workers <= 0 {
		workers = 1
	}

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v any) {
		log.Error().Interface("panic", v).Msg("mail worker panic")
	}))
	if err != nil {
		return nil, err
	}

	return &Dispatcher{mailer: mailer, pool: pool}, nil
}

// Dispatch queues msg for delivery and returns immediately.
func (d *Dispatcher) Dispatch(msg Message) {
	d.wg.Add(1)
	err := d.pool.Submit(func() {
		defer d.wg.Done()
		d.send(msg)
	})
	if err != nil {
		d.wg.Done()
		metrics.MailTotal.WithLabelValues("dropped").Inc()
		log.Error().Err(err).Str("to", msg.To).Msg("failed to queue mail")
	}
}

func (d *Dispatcher) send(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.mailer.Send(ctx, msg); err != nil {
		metrics.MailTotal.WithLabelValues("failed").Inc()
		log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("failed to send mail")
		return
	}
	metrics.MailTotal.WithLabelValues("sent").Inc()
	log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
}

// Wait blocks until every dispatched message has been handled.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) Close() {
	d.Wait()
	_ = d.pool.ReleaseTimeout(3 * time.Second)
}
