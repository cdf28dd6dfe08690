package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	holidayerrors "github.com/BadrBouzakri/conges/internal/holiday/errors"
	"github.com/BadrBouzakri/conges/internal/workcalendar"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	datesKey = "holidays:dates"
	cacheTTL = time.Hour
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	Delete(ctx context.Context, id string) error

	// Snapshot returns an immutable working-day calendar for duration
	// computation. The snapshot is safe to use after the call returns.
	Snapshot(ctx context.Context) (workcalendar.Calendar, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	if _, err := s.repo.FindByDate(ctx, req.Date); err == nil {
		return HolidayResponse{}, holidayerrors.ErrHolidayExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return HolidayResponse{}, err
	}

	h := &Holiday{
		ID:   uuid.New(),
		Date: req.Date,
		Name: req.Name,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info("holiday created", zap.String("date", h.Date), zap.String("name", h.Name))

	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	s.logger.Info("holiday deleted", zap.String("holiday_id", id))

	return nil
}

func (s *service) Snapshot(ctx context.Context) (workcalendar.Calendar, error) {
	dates, err := s.loadDates(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot(dates), nil
}

func (s *service) loadDates(ctx context.Context) (map[string]struct{}, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, datesKey).Result()
		if err == nil {
			var dates []string
			if err := json.Unmarshal([]byte(cached), &dates); err == nil {
				return toSet(dates), nil
			}
		}
	}

	v, err, _ := s.sf.Do(datesKey, func() (interface{}, error) {
		holidays, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		dates := make([]string, len(holidays))
		for i, h := range holidays {
			dates[i] = h.Date
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(dates); err == nil {
				s.rdb.Set(ctx, datesKey, jsonData, cacheTTL)
			}
		}

		return dates, nil
	})
	if err != nil {
		return nil, err
	}

	return toSet(v.([]string)), nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, datesKey).Err(); err != nil {
		s.logger.Error("invalidate holiday cache failed", zap.Error(err))
	}
}

// snapshot implements workcalendar.Calendar over a fixed date set.
type snapshot map[string]struct{}

func (s snapshot) IsHoliday(day time.Time) bool {
	_, ok := s[day.Format("2006-01-02")]
	return ok
}

func toSet(dates []string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:   h.ID.String(),
		Date: h.Date,
		Name: h.Name,
	}
}
