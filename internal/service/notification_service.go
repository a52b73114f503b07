package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/mail"
	"github.com/spec-kit/marketplace-service/internal/worker"
)

// NotificationService turns account events into queued transactional
// email. Sends never block the request path.
type NotificationService struct {
	dispatcher events.Dispatcher
	queue      *worker.NotificationWorker
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, queue *worker.NotificationWorker, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		queue:      queue,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to account events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventVerificationResent, n.handleVerificationResent)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		n.logger.Warn("unexpected payload", zap.String("event", string(event.Type)))
		return nil
	}
	n.queue.Enqueue(mail.VerificationMessage(n.cfg.FrontendURL, payload.Email, payload.VerificationToken))
	return nil
}

func (n *NotificationService) handleVerificationResent(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.VerificationResentPayload)
	if !ok {
		n.logger.Warn("unexpected payload", zap.String("event", string(event.Type)))
		return nil
	}
	n.queue.Enqueue(mail.VerificationMessage(n.cfg.FrontendURL, payload.Email, payload.VerificationToken))
	return nil
}

func (n *NotificationService) handlePasswordResetRequested(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		n.logger.Warn("unexpected payload", zap.String("event", string(event.Type)))
		return nil
	}
	n.queue.Enqueue(mail.PasswordResetMessage(n.cfg.FrontendURL, payload.Email, payload.ResetToken))
	return nil
}
