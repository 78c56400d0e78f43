package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/nutrisense/internal/events"
)

// AuditService writes account and session events to the audit log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserSignedUp, a.handleSignedUp)
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.handleSession)
	a.dispatcher.Subscribe(events.EventSessionRevoked, a.handleSession)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
}

func (a *AuditService) handleSignedUp(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("user_id", event.UserID))
	return nil
}

func (a *AuditService) handleSession(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("user_id", event.UserID),
	}
	if payload, ok := event.Payload.(events.SessionPayload); ok {
		fields = append(fields,
			zap.String("token_id", payload.TokenID),
			zap.Time("token_expires_at", payload.ExpiresAt))
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}

func (a *AuditService) handleLoginFailed(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("event_id", event.ID)}
	if payload, ok := event.Payload.(events.LoginFailedPayload); ok {
		fields = append(fields, zap.String("email", payload.Email))
	}
	a.logger.Warn(string(event.Type), fields...)
	return nil
}
