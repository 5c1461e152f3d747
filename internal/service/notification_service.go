package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/medicine-service/internal/config"
	"github.com/spec-kit/medicine-service/internal/events"
	"github.com/spec-kit/medicine-service/internal/mail"
)

// NotificationService reacts to domain events: it delivers the password
// reset mail and logs inventory changes.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     mail.Mailer
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer mail.Mailer, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
	n.dispatcher.Subscribe(events.EventPasswordResetCompleted, n.handlePasswordResetCompleted)
	n.dispatcher.Subscribe(events.EventMedicineCreated, n.handleMedicineChanged)
	n.dispatcher.Subscribe(events.EventMedicineUpdated, n.handleMedicineChanged)
	n.dispatcher.Subscribe(events.EventMedicineDeleted, n.handleMedicineChanged)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	n.logger.Info("UserRegistered",
		zap.String("user_id", payload.UserID),
		zap.String("role", payload.Role))
	return nil
}

// handlePasswordResetRequested sends the reset link. A returned error
// propagates through the synchronous dispatcher back to the forgot-password
// flow, so delivery failure is visible to the caller while the persisted
// token stays valid.
func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		return nil
	}

	link := fmt.Sprintf("%s/%s", n.cfg.ResetBaseURL, payload.Token)
	body := fmt.Sprintf(
		`<p>A password reset was requested for your account.</p>
<p><a href=%q>Reset your password</a></p>
<p>The link expires at %s. If you did not request this, ignore this message.</p>`,
		link, payload.ExpiresAt.UTC().Format("15:04 MST, Jan 2 2006"))

	if err := n.mailer.Send(ctx, payload.Email, "Password reset", body); err != nil {
		n.logger.Error("reset mail delivery failed",
			zap.String("user_id", payload.UserID),
			zap.Error(err))
		return err
	}

	n.logger.Info("PasswordResetRequested", zap.String("user_id", payload.UserID))
	return nil
}

func (n *NotificationService) handlePasswordResetCompleted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetCompletedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("PasswordResetCompleted", zap.String("user_id", payload.UserID))
	return nil
}

func (n *NotificationService) handleMedicineChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MedicineChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info(string(event.Type),
		zap.String("medicine_id", payload.MedicineID),
		zap.String("name", payload.Name),
		zap.String("actor_id", payload.ActorID))
	return nil
}
