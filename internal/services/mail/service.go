package mail

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/clock"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	mailRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/mail"
)

// Repository is an alias for the mail repository interface
type Repository = mailRepo.Repository

// Service defines the mail service interface. Mail always goes to the
// store; nothing is cached.
type Service interface {
	// SendMail delivers a mail and returns it with its ID and sent time
	SendMail(ctx context.Context, mail *entities.Mail) (*entities.Mail, error)

	// MailList returns a user's visible mails, newest first
	MailList(ctx context.Context, userID string, onlyNew bool) ([]*entities.Mail, error)

	// GetMail returns one of the user's mails
	GetMail(ctx context.Context, mailID int64, userID string) (*entities.Mail, error)

	UpdateReadMailState(ctx context.Context, mailID int64, userID string) (*entities.Mail, error)
	UpdateClaimMailItemsState(ctx context.Context, mailID int64, userID string) (*entities.Mail, error)
	UpdateDeleteMailState(ctx context.Context, mailID int64, userID string) error

	// GetMailNotification counts the user's unread mails
	GetMailNotification(ctx context.Context, userID string) (int, error)
}

type service struct {
	repository   Repository
	timeProvider clock.TimeProvider
	logger       hclog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository   Repository         // Required
	TimeProvider clock.TimeProvider // Optional, defaults to the system clock
	Logger       hclog.Logger
}

// NewService creates a new mail service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository:   cfg.Repository,
		timeProvider: cfg.TimeProvider,
		logger:       cfg.Logger,
	}
	if svc.timeProvider == nil {
		svc.timeProvider = clock.NewRealTimeProvider()
	}
	if svc.logger == nil {
		svc.logger = hclog.NewNullLogger()
	}
	return svc
}

// SendMail implements Service
func (s *service) SendMail(ctx context.Context, mail *entities.Mail) (*entities.Mail, error) {
	if mail == nil {
		return nil, dnderr.InvalidArgument("mail cannot be nil")
	}
	if mail.ReceiverID == "" {
		return nil, dnderr.InvalidArgument("mail has no receiver").
			WithReason(dnderr.ReasonMailNoReceiver)
	}

	sent := *mail
	sent.Items = entities.CloneItems(mail.Items)
	sent.SentTime = s.timeProvider.Now().Unix()
	sent.IsRead, sent.IsClaim, sent.IsDelete = false, false, false
	sent.ReadTime, sent.ClaimTime, sent.DeleteTime = 0, 0, 0

	id, err := s.repository.Create(ctx, &sent)
	if err != nil {
		return nil, dnderr.WrapStore(err, "failed to send mail")
	}
	sent.ID = id
	s.logger.Debug("mail sent", "mail_id", id, "receiver_id", sent.ReceiverID)
	return &sent, nil
}

// MailList implements Service
func (s *service) MailList(ctx context.Context, userID string, onlyNew bool) ([]*entities.Mail, error) {
	if userID == "" {
		return nil, dnderr.InvalidArgument("user ID is required")
	}
	list, err := s.repository.List(ctx, userID, onlyNew)
	if err != nil {
		return nil, dnderr.WrapStore(err, "failed to list mails")
	}
	return list, nil
}

// GetMail implements Service
func (s *service) GetMail(ctx context.Context, mailID int64, userID string) (*entities.Mail, error) {
	mail, err := s.repository.Get(ctx, mailID)
	if err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to get mail %d", mailID))
	}
	if mail.ReceiverID != userID {
		return nil, dnderr.Forbidden("mail is addressed to another user").
			WithReason(dnderr.ReasonMailReadNotAllowed).
			WithMeta("mail_id", mailID)
	}
	return mail, nil
}

type stateUpdate func(ctx context.Context, id int64, userID string, at int64) (int64, error)

// updateState applies a guarded state change. Zero rows means the mail is
// not the user's or is in the wrong state.
func (s *service) updateState(ctx context.Context, mailID int64, userID string, update stateUpdate, reason string) error {
	if userID == "" {
		return dnderr.InvalidArgument("user ID is required")
	}
	rows, err := update(ctx, mailID, userID, s.timeProvider.Now().Unix())
	if err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to update mail %d", mailID))
	}
	if rows == 0 {
		return dnderr.Forbidden(fmt.Sprintf("mail %d cannot be changed by %s", mailID, userID)).
			WithReason(reason).
			WithMeta("mail_id", mailID)
	}
	return nil
}

// UpdateReadMailState implements Service
func (s *service) UpdateReadMailState(ctx context.Context, mailID int64, userID string) (*entities.Mail, error) {
	if err := s.updateState(ctx, mailID, userID, s.repository.UpdateRead, dnderr.ReasonMailReadNotAllowed); err != nil {
		return nil, err
	}
	return s.GetMail(ctx, mailID, userID)
}

// UpdateClaimMailItemsState implements Service
func (s *service) UpdateClaimMailItemsState(ctx context.Context, mailID int64, userID string) (*entities.Mail, error) {
	if err := s.updateState(ctx, mailID, userID, s.repository.UpdateClaim, dnderr.ReasonMailClaimNotAllowed); err != nil {
		return nil, err
	}
	return s.GetMail(ctx, mailID, userID)
}

// UpdateDeleteMailState implements Service
func (s *service) UpdateDeleteMailState(ctx context.Context, mailID int64, userID string) error {
	return s.updateState(ctx, mailID, userID, s.repository.UpdateDelete, dnderr.ReasonMailDeleteNotAllowed)
}

// GetMailNotification implements Service
func (s *service) GetMailNotification(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, dnderr.InvalidArgument("user ID is required")
	}
	count, err := s.repository.CountUnread(ctx, userID)
	if err != nil {
		return 0, dnderr.WrapStore(err, "failed to count unread mails")
	}
	return count, nil
}
