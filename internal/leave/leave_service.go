package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/BadrBouzakri/conges/internal/domain"
	"github.com/BadrBouzakri/conges/internal/events"
	leaveerrors "github.com/BadrBouzakri/conges/internal/leave/errors"
	"github.com/BadrBouzakri/conges/internal/leavebalance"
	"github.com/BadrBouzakri/conges/internal/leavetype"
	leavetypeerrors "github.com/BadrBouzakri/conges/internal/leavetype/errors"
	"github.com/BadrBouzakri/conges/internal/messaging/kafka"
	"github.com/BadrBouzakri/conges/internal/shared/contextutil"
	"github.com/BadrBouzakri/conges/internal/shared/response"
	"github.com/BadrBouzakri/conges/internal/workcalendar"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor *domain.Actor, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, page, limit int) ([]LeaveRequestResponse, *response.PaginationMeta, error)
	GetMine(ctx context.Context, actor *domain.Actor) ([]LeaveRequestResponse, error)
	GetPending(ctx context.Context) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, actor *domain.Actor, id string) (LeaveRequestResponse, error)
	Update(ctx context.Context, actor *domain.Actor, id string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error)
	Delete(ctx context.Context, actor *domain.Actor, id string) error
	Approve(ctx context.Context, actor *domain.Actor, id string, comment *string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actor *domain.Actor, id string, comment *string) (LeaveRequestResponse, error)
	Preview(ctx context.Context, req PreviewDurationRequest) (PreviewDurationResponse, error)
	CalendarMonth(ctx context.Context, year, month int) ([]LeaveRequestResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	leaveTypes leavetype.Repository
	balances   leavebalance.Repository
	holidays   HolidayCalendar
	outbox     kafka.OutboxRepository
	logger     *zap.Logger
}

// HolidayCalendar is the slice of the holiday service this package needs.
type HolidayCalendar interface {
	Snapshot(ctx context.Context) (workcalendar.Calendar, error)
}

func NewService(
	db *sql.DB,
	repo Repository,
	leaveTypes leavetype.Repository,
	balances leavebalance.Repository,
	holidays HolidayCalendar,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		leaveTypes: leaveTypes,
		balances:   balances,
		holidays:   holidays,
		outbox:     outbox,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actor *domain.Actor, req CreateLeaveRequestRequest) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request",
		zap.String("user_id", actor.ID.String()),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	lt, err := s.leaveTypes.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	duration, err := s.computeDuration(ctx, startDate, endDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if lt.RequiresBalance {
		bal, err := s.balances.WithTx(tx).FindByUserTypeYear(ctx, actor.ID.String(), lt.ID.String(), startDate.Year())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeaveRequestResponse{}, leaveerrors.ErrInsufficientBalance
			}
			return LeaveRequestResponse{}, err
		}
		if bal.Balance < duration {
			s.logger.Warn("create leave balance too low",
				zap.String("user_id", actor.ID.String()),
				zap.Int("balance", bal.Balance),
				zap.Int("requested", duration),
			)
			return LeaveRequestResponse{}, leaveerrors.ErrInsufficientBalance
		}
	}

	l := &LeaveRequest{
		ID:          uuid.New(),
		UserID:      actor.ID,
		LeaveTypeID: lt.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		Duration:    duration,
		Reason:      req.Reason,
		Status:      domain.StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueueSubmittedEvent(ctx, tx, l); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.Int("duration", duration),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, page, limit int) ([]LeaveRequestResponse, *response.PaginationMeta, error) {
	requests, total, err := s.repo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, nil, err
	}
	meta := response.NewPaginationMeta(total, page, limit)
	return mapToListResponse(requests), &meta, nil
}

func (s *service) GetMine(ctx context.Context, actor *domain.Actor) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindAllByOwner(ctx, actor.ID.String())
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetPending(ctx context.Context) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, actor *domain.Actor, id string) (LeaveRequestResponse, error) {
	l, err := s.findByID(ctx, s.repo, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !domain.CanView(actor, l.View()) {
		return LeaveRequestResponse{}, leaveerrors.ErrViewForbidden
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, actor *domain.Actor, id string, req UpdateLeaveRequestRequest) (LeaveRequestResponse, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	lt, err := s.leaveTypes.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !domain.CanEdit(actor, l.View()) {
		return LeaveRequestResponse{}, leaveerrors.ErrEditForbidden
	}

	// Duration is only recomputed when the dates actually change, so the
	// stored value stays stable across reason-only edits even if the
	// holiday table moved underneath.
	datesChanged := !startDate.Equal(l.StartDate) || !endDate.Equal(l.EndDate)
	if datesChanged {
		duration, err := s.computeDuration(ctx, startDate, endDate)
		if err != nil {
			return LeaveRequestResponse{}, err
		}
		l.Duration = duration
	}

	l.LeaveTypeID = lt.ID
	l.StartDate = startDate
	l.EndDate = endDate
	l.Reason = req.Reason

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("update leave success", zap.String("leave_id", id))

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, actor *domain.Actor, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return err
	}
	if !domain.CanDelete(actor, l.View()) {
		return leaveerrors.ErrDeleteForbidden
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) Approve(ctx context.Context, actor *domain.Actor, id string, comment *string) (LeaveRequestResponse, error) {
	return s.decide(ctx, actor, id, DecisionApprove, comment)
}

func (s *service) Reject(ctx context.Context, actor *domain.Actor, id string, comment *string) (LeaveRequestResponse, error) {
	return s.decide(ctx, actor, id, DecisionReject, comment)
}

func (s *service) decide(ctx context.Context, actor *domain.Actor, id string, decision Decision, comment *string) (LeaveRequestResponse, error) {
	s.logger.Debug("decide leave request",
		zap.String("leave_id", id),
		zap.String("decision", string(decision)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findByID(ctx, qtx, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := Decide(l, decision, actor, comment); err != nil {
		s.logger.Warn("decide leave rejected by policy",
			zap.String("leave_id", id),
			zap.String("decision", string(decision)),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	if decision == DecisionApprove {
		if err := s.debitBalance(ctx, tx, l); err != nil {
			return LeaveRequestResponse{}, err
		}
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := s.enqueueDecidedEvent(ctx, tx, l); err != nil {
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", string(l.Status)),
		zap.String("approver_id", actor.ID.String()),
	)

	return mapToResponse(*l), nil
}

// debitBalance charges the approved duration against the owner's yearly
// balance. Types without balance tracking are skipped.
func (s *service) debitBalance(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	lt, err := s.leaveTypes.FindByID(ctx, l.LeaveTypeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavetypeerrors.ErrLeaveTypeNotFound
		}
		return err
	}
	if !lt.RequiresBalance {
		return nil
	}

	balances := s.balances.WithTx(tx)
	bal, err := balances.FindByUserTypeYear(ctx, l.UserID.String(), l.LeaveTypeID.String(), l.StartDate.Year())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrInsufficientBalance
		}
		return err
	}
	if bal.Balance < l.Duration {
		return leaveerrors.ErrInsufficientBalance
	}

	bal.Balance -= l.Duration
	return balances.Update(ctx, bal)
}

func (s *service) Preview(ctx context.Context, req PreviewDurationRequest) (PreviewDurationResponse, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return PreviewDurationResponse{}, err
	}

	duration, err := s.computeDuration(ctx, startDate, endDate)
	if err != nil {
		return PreviewDurationResponse{}, err
	}

	return PreviewDurationResponse{
		StartDate: startDate.Format("2006-01-02"),
		EndDate:   endDate.Format("2006-01-02"),
		Duration:  duration,
	}, nil
}

func (s *service) CalendarMonth(ctx context.Context, year, month int) ([]LeaveRequestResponse, error) {
	if year < 1 || month < 1 || month > 12 {
		return nil, leaveerrors.ErrInvalidCalendarMonth
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	requests, err := s.repo.FindApprovedInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

// computeDuration is the single working-day computation behind both the
// authoritative value stored on the request and the preview endpoint.
func (s *service) computeDuration(ctx context.Context, startDate, endDate time.Time) (int, error) {
	cal, err := s.holidays.Snapshot(ctx)
	if err != nil {
		return 0, err
	}

	duration, err := workcalendar.Workdays(startDate, endDate, cal)
	if err != nil {
		return 0, leaveerrors.ErrInvalidDateRange
	}
	if duration == 0 {
		return 0, leaveerrors.ErrNoWorkingDays
	}
	return duration, nil
}

func (s *service) findByID(ctx context.Context, repo Repository, id string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	l, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *service) enqueueSubmittedEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	payload, err := json.Marshal(events.LeaveRequestSubmittedEvent{
		EventType:   events.LeaveRequestSubmitted,
		RequestID:   l.ID.String(),
		UserID:      l.UserID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		Duration:    l.Duration,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.enqueueEvent(ctx, tx, l, events.LeaveRequestSubmitted, payload)
}

func (s *service) enqueueDecidedEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	var approverID string
	if l.ApproverID != nil {
		approverID = l.ApproverID.String()
	}
	var comment string
	if l.Comment != nil {
		comment = *l.Comment
	}
	payload, err := json.Marshal(events.LeaveRequestDecidedEvent{
		EventType:  events.LeaveRequestDecided,
		RequestID:  l.ID.String(),
		UserID:     l.UserID.String(),
		ApproverID: approverID,
		Status:     string(l.Status),
		Comment:    comment,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.enqueueEvent(ctx, tx, l, events.LeaveRequestDecided, payload)
}

// enqueueEvent writes the lifecycle event to the outbox inside the same
// transaction as the state change, so the event exists iff the change does.
func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest, eventType string, payload []byte) error {
	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
		NextRetryAt:   time.Now().UTC(),
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("enqueue lifecycle event failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:          l.ID.String(),
		UserID:      l.UserID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		Duration:    l.Duration,
		Reason:      l.Reason,
		Status:      string(l.Status),
		Comment:     l.Comment,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   l.UpdatedAt.Format(time.RFC3339),
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, l := range requests {
		resp[i] = mapToResponse(l)
	}
	return resp
}
