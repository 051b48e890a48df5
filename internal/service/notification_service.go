package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/enterprize-service/internal/config"
	"github.com/spec-kit/enterprize-service/internal/events"
)

// NotificationService turns domain events into outbound emails. Initiation
// events carry a token and trigger a mail to the affected username (which is
// an email address); completion events are logged only.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{logger: logger, cfg: cfg}
}

// Registry maps event names to this service's handlers, in dispatch order.
// The dispatcher is built from it once at startup.
func (n *NotificationService) Registry() events.Registry {
	return events.Registry{
		events.NameUserRegistered:              {n.handleUserRegistered},
		events.NameUserActivated:               {n.handleUserActivated},
		events.NameUserInvited:                 {n.handleUserInvited},
		events.NameUserPasswordChangeInitiated: {n.handleUserPasswordChangeInitiated},
		events.NameUserPasswordChanged:         {n.handleUserPasswordChanged},
		events.NameUsernameChangeInitiated:     {n.handleUsernameChangeInitiated},
		events.NameUsernameChanged:             {n.handleUsernameChanged},
	}
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.DomainEvent) error {
	e, ok := event.(events.UserRegistered)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventName())
	}
	return n.sendEmail(ctx, e.Username, "Activate your account",
		fmt.Sprintf("Use activation code %s to activate your account.", e.ActivationCode))
}

func (n *NotificationService) handleUserActivated(_ context.Context, event events.DomainEvent) error {
	e, ok := event.(events.UserActivated)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventName())
	}
	n.logger.Info("UserActivated", zap.String("username", e.Username))
	return nil
}

func (n *NotificationService) handleUserInvited(ctx context.Context, event events.DomainEvent) error {
	e, ok := event.(events.UserInvited)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventName())
	}
	body := fmt.Sprintf("%s %s invited you to register with %s.",
		e.AdminFirstName, e.AdminLastName, e.AdminCompany)
	return n.sendEmail(ctx, e.InvitedEmailAddress, "You have been invited", body)
}

func (n *NotificationService) handleUserPasswordChangeInitiated(ctx context.Context, event events.DomainEvent) error {
	e, ok := event.(events.UserPasswordChangeInitiated)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventName())
	}
	return n.sendEmail(ctx, e.Username, "Confirm your password change",
		fmt.Sprintf("Use token %s to confirm your password change.", e.PasswordChangeToken))
}

func (n *NotificationService) handleUserPasswordChanged(_ context.Context, event events.DomainEvent) error {
	e, ok := event.(events.UserPasswordChanged)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventName())
	}
	n.logger.Info("UserPasswordChanged", zap.String("username", e.Username))
	return nil
}

func (n *NotificationService) handleUsernameChangeInitiated(ctx context.Context, event events.DomainEvent) error {
	e, ok := event.(events.UsernameChangeInitiated)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventName())
	}
	return n.sendEmail(ctx, e.Username, "Confirm your username change",
		fmt.Sprintf("Use token %s to change your username to %s.", e.UsernameChangeToken, e.NewUsername))
}

func (n *NotificationService) handleUsernameChanged(_ context.Context, event events.DomainEvent) error {
	e, ok := event.(events.UsernameChanged)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventName())
	}
	n.logger.Info("UsernameChanged", zap.String("new_username", e.NewUsername))
	return nil
}

// sendEmail is the outbound mail stub. A missing sender address disables
// sending without failing the dispatch.
func (n *NotificationService) sendEmail(_ context.Context, to, subject, body string) error {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return nil
	}
	n.logger.Info("sendEmail",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
