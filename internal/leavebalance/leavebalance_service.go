package leavebalance

import (
	"context"
	"database/sql"
	"errors"

	leavebalanceerrors "github.com/BadrBouzakri/conges/internal/leavebalance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Service interface {
	GetByUser(ctx context.Context, userID string) ([]BalanceResponse, error)
	Open(ctx context.Context, req OpenBalanceRequest) (BalanceResponse, error)
	Adjust(ctx context.Context, id string, req AdjustBalanceRequest) (BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetByUser(ctx context.Context, userID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, leavebalanceerrors.ErrInvalidUserID
	}

	balances, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) Open(ctx context.Context, req OpenBalanceRequest) (BalanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByUserTypeYear(ctx, req.UserID, req.LeaveTypeID, req.Year); err == nil {
		return BalanceResponse{}, leavebalanceerrors.ErrBalanceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return BalanceResponse{}, err
	}

	b := &LeaveBalance{
		ID:          uuid.New(),
		UserID:      uuid.MustParse(req.UserID),
		LeaveTypeID: uuid.MustParse(req.LeaveTypeID),
		Year:        req.Year,
		Balance:     req.Balance,
	}

	if err := qtx.Create(ctx, b); err != nil {
		s.logger.Error("open balance persist failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("leave balance opened",
		zap.String("user_id", req.UserID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
	)

	return mapToResponse(*b), nil
}

func (s *service) Adjust(ctx context.Context, id string, req AdjustBalanceRequest) (BalanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BalanceResponse{}, leavebalanceerrors.ErrInvalidBalanceID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, leavebalanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}

	b.Balance = req.Balance

	if err := qtx.Update(ctx, b); err != nil {
		s.logger.Error("adjust balance persist failed", zap.String("balance_id", id), zap.Error(err))
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("leave balance adjusted", zap.String("balance_id", id), zap.Int("balance", b.Balance))

	return mapToResponse(*b), nil
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:          b.ID.String(),
		UserID:      b.UserID.String(),
		LeaveTypeID: b.LeaveTypeID.String(),
		Year:        b.Year,
		Balance:     b.Balance,
	}
}
