package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/BadrBouzakri/conges/internal/events"
	"github.com/BadrBouzakri/conges/internal/notification"
	"github.com/BadrBouzakri/conges/internal/user"
	userMock "github.com/BadrBouzakri/conges/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent  []sentMail
	errFn func(to string) error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.errFn != nil {
		if err := f.errFn(to); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func setupNotificationTest(t *testing.T) (notification.Service, *userMock.MockRepository, *fakeMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := userMock.NewMockRepository(ctrl)
	mailer := &fakeMailer{}
	return notification.NewService(users, mailer), users, mailer
}

func TestNotifySubmitted(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()

	event := events.LeaveRequestSubmittedEvent{
		EventType: events.LeaveRequestSubmitted,
		RequestID: uuid.New().String(),
		UserID:    requesterID.String(),
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
		Duration:  5,
	}

	t.Run("mails every approver", func(t *testing.T) {
		svc, users, mailer := setupNotificationTest(t)

		users.EXPECT().
			FindApproverEmails(ctx).
			Return([]string{"approver1@example.com", "approver2@example.com"}, nil)
		users.EXPECT().
			FindByID(ctx, requesterID.String()).
			Return(&user.User{ID: requesterID, FirstName: "Julien", LastName: "Durand"}, nil)

		err := svc.NotifySubmitted(ctx, event)

		assert.NoError(t, err)
		assert.Len(t, mailer.sent, 2)
		assert.Equal(t, "approver1@example.com", mailer.sent[0].to)
		assert.Contains(t, mailer.sent[0].body, "Julien Durand")
		assert.Contains(t, mailer.sent[0].body, "5 working days")
	})

	t.Run("no approvers is not an error", func(t *testing.T) {
		svc, users, mailer := setupNotificationTest(t)

		users.EXPECT().
			FindApproverEmails(ctx).
			Return(nil, nil)

		err := svc.NotifySubmitted(ctx, event)

		assert.NoError(t, err)
		assert.Empty(t, mailer.sent)
	})

	t.Run("one failed send does not stop the rest", func(t *testing.T) {
		svc, users, mailer := setupNotificationTest(t)

		users.EXPECT().
			FindApproverEmails(ctx).
			Return([]string{"down@example.com", "up@example.com"}, nil)
		users.EXPECT().
			FindByID(ctx, requesterID.String()).
			Return(&user.User{ID: requesterID, FirstName: "Julien", LastName: "Durand"}, nil)

		smtpErr := errors.New("smtp refused")
		mailer.errFn = func(to string) error {
			if to == "down@example.com" {
				return smtpErr
			}
			return nil
		}

		err := svc.NotifySubmitted(ctx, event)

		assert.ErrorIs(t, err, smtpErr)
		assert.Len(t, mailer.sent, 1)
		assert.Equal(t, "up@example.com", mailer.sent[0].to)
	})

	t.Run("unknown requester falls back to a neutral name", func(t *testing.T) {
		svc, users, mailer := setupNotificationTest(t)

		users.EXPECT().
			FindApproverEmails(ctx).
			Return([]string{"approver1@example.com"}, nil)
		users.EXPECT().
			FindByID(ctx, requesterID.String()).
			Return(nil, errors.New("not found"))

		err := svc.NotifySubmitted(ctx, event)

		assert.NoError(t, err)
		assert.Contains(t, mailer.sent[0].body, "An employee")
	})
}

func TestNotifyDecided(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("mails the owner with the comment", func(t *testing.T) {
		svc, users, mailer := setupNotificationTest(t)

		users.EXPECT().
			FindByID(ctx, ownerID.String()).
			Return(&user.User{ID: ownerID, Email: "employee1@example.com", FirstName: "Julien"}, nil)

		err := svc.NotifyDecided(ctx, events.LeaveRequestDecidedEvent{
			RequestID: uuid.New().String(),
			UserID:    ownerID.String(),
			Status:    "APPROVED",
			Comment:   "enjoy",
		})

		assert.NoError(t, err)
		assert.Len(t, mailer.sent, 1)
		assert.Equal(t, "employee1@example.com", mailer.sent[0].to)
		assert.Equal(t, "Your leave request was APPROVED", mailer.sent[0].subject)
		assert.Contains(t, mailer.sent[0].body, "Comment: enjoy")
	})

	t.Run("no comment omits the comment line", func(t *testing.T) {
		svc, users, mailer := setupNotificationTest(t)

		users.EXPECT().
			FindByID(ctx, ownerID.String()).
			Return(&user.User{ID: ownerID, Email: "employee1@example.com", FirstName: "Julien"}, nil)

		err := svc.NotifyDecided(ctx, events.LeaveRequestDecidedEvent{
			UserID: ownerID.String(),
			Status: "REJECTED",
		})

		assert.NoError(t, err)
		assert.NotContains(t, mailer.sent[0].body, "Comment:")
	})

	t.Run("unknown owner is an error for retry", func(t *testing.T) {
		svc, users, _ := setupNotificationTest(t)

		users.EXPECT().
			FindByID(ctx, ownerID.String()).
			Return(nil, errors.New("not found"))

		err := svc.NotifyDecided(ctx, events.LeaveRequestDecidedEvent{
			UserID: ownerID.String(),
			Status: "APPROVED",
		})

		assert.Error(t, err)
	})
}
