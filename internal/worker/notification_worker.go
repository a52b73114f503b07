package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/mail"
)

const (
	defaultQueueSize = 256
	sendRetries      = 3
	retryBackoff     = 2 * time.Second
)

// NotificationWorker drains a buffered queue of outbound email so mail
// relay latency never blocks the request path. Delivery is best-effort:
// a job that still fails after retries is dropped with a warning.
type NotificationWorker struct {
	mailer mail.Mailer
	logger *zap.Logger

	jobs chan mail.Message
	wg   sync.WaitGroup

	closeOnce sync.Once
}

// NewNotificationWorker constructs the worker with a default queue size.
func NewNotificationWorker(mailer mail.Mailer, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{
		mailer: mailer,
		logger: logger,
		jobs:   make(chan mail.Message, defaultQueueSize),
	}
}

// Start launches n consumer goroutines.
func (w *NotificationWorker) Start(ctx context.Context, n int) {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go w.consume(ctx)
	}
}

// Enqueue hands a message to the queue without blocking. Returns false
// when the queue is full and the job was dropped.
func (w *NotificationWorker) Enqueue(msg mail.Message) bool {
	select {
	case w.jobs <- msg:
		return true
	default:
		w.logger.Warn("notification queue full; dropping email", zap.String("to", msg.To))
		return false
	}
}

// Stop closes the queue and waits for in-flight sends to finish.
func (w *NotificationWorker) Stop() {
	w.closeOnce.Do(func() { close(w.jobs) })
	w.wg.Wait()
}

func (w *NotificationWorker) consume(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-w.jobs:
			if !ok {
				return
			}
			w.deliver(ctx, msg)
		}
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, msg mail.Message) {
	var err error
	for attempt := 1; attempt <= sendRetries; attempt++ {
		if err = w.mailer.Send(ctx, msg); err == nil {
			w.logger.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
			return
		}
		w.logger.Warn("email send failed",
			zap.String("to", msg.To),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < sendRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryBackoff):
			}
		}
	}
	w.logger.Error("email dropped after retries", zap.String("to", msg.To), zap.Error(err))
}
