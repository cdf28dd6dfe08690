package notification

import (
	"context"
	"fmt"

	"github.com/BadrBouzakri/conges/internal/events"
	"github.com/BadrBouzakri/conges/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	NotifySubmitted(ctx context.Context, event events.LeaveRequestSubmittedEvent) error
	NotifyDecided(ctx context.Context, event events.LeaveRequestDecidedEvent) error
}

type service struct {
	users  user.Repository
	mailer Mailer
	logger *zap.Logger
}

func NewService(users user.Repository, mailer Mailer, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{users: users, mailer: mailer, logger: l}
}

// NotifySubmitted mails every approver about a newly submitted request. A
// failed send to one recipient does not stop the rest; the first error is
// reported so the consumer can retry the event.
func (s *service) NotifySubmitted(ctx context.Context, event events.LeaveRequestSubmittedEvent) error {
	emails, err := s.users.FindApproverEmails(ctx)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		s.logger.Warn("no approvers to notify", zap.String("request_id", event.RequestID))
		return nil
	}

	requester := s.displayName(ctx, event.UserID)
	subject := "Leave request awaiting approval"
	body := fmt.Sprintf(
		"%s requested leave from %s to %s (%d working days).\n\nPlease review the request.",
		requester, event.StartDate, event.EndDate, event.Duration,
	)

	var firstErr error
	for _, to := range emails {
		if err := s.mailer.Send(to, subject, body); err != nil {
			s.logger.Error("notify approver failed",
				zap.String("request_id", event.RequestID),
				zap.String("to", to),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// NotifyDecided mails the owner of the request the decision outcome.
func (s *service) NotifyDecided(ctx context.Context, event events.LeaveRequestDecidedEvent) error {
	owner, err := s.users.FindByID(ctx, event.UserID)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Your leave request was %s", event.Status)
	body := fmt.Sprintf("Hello %s,\n\nYour leave request has been %s.", owner.FirstName, event.Status)
	if event.Comment != "" {
		body += fmt.Sprintf("\n\nComment: %s", event.Comment)
	}

	if err := s.mailer.Send(owner.Email, subject, body); err != nil {
		s.logger.Error("notify owner failed",
			zap.String("request_id", event.RequestID),
			zap.String("to", owner.Email),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) displayName(ctx context.Context, userID string) string {
	if _, err := uuid.Parse(userID); err != nil {
		return "An employee"
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "An employee"
	}
	return u.FullName()
}
