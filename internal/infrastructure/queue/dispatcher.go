package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/user-management/internal/api/metrics"
	"github.com/99minutos/user-management/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

// RenderFunc turns a verification request into a deliverable message.
type RenderFunc func(ports.VerificationEmail) ports.Email

// Dispatcher routes verification emails to a fixed set of workers using
// consistent hashing on the recipient, so messages to one address are
// delivered in order.
type Dispatcher struct {
	workers []chan ports.VerificationEmail
	render  RenderFunc
	sender  ports.EmailSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, render RenderFunc, sender ports.EmailSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.VerificationEmail, numWorkers),
		render:  render,
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.VerificationEmail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// SendVerification queues msg on the worker responsible for its recipient.
// It never blocks: when that worker's buffer is full the message is dropped
// and logged.
func (d *Dispatcher) SendVerification(msg ports.VerificationEmail) {
	idx := d.shardIndex(msg.Email)
	select {
	case d.workers[idx] <- msg:
		metrics.EmailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.EmailsSentTotal.WithLabelValues("dropped").Inc()
		d.log.Error().Str("user_id", msg.UserID).Int("worker_id", idx).Msg("email queue full, verification email dropped")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.VerificationEmail) {
	depth := metrics.EmailQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			d.deliver(ctx, id, msg)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, msg ports.VerificationEmail) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.sender.Send(sendCtx, d.render(msg))
	metrics.EmailSendDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.EmailsSentTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("user_id", msg.UserID).
			Int("worker_id", id).
			Msg("verification email failed")
		return
	}
	metrics.EmailsSentTotal.WithLabelValues("sent").Inc()
}
