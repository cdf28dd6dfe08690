package leave_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/BadrBouzakri/conges/internal/domain"
	"github.com/BadrBouzakri/conges/internal/events"
	"github.com/BadrBouzakri/conges/internal/leave"
	leaveerrors "github.com/BadrBouzakri/conges/internal/leave/errors"
	"github.com/BadrBouzakri/conges/internal/leavebalance"
	"github.com/BadrBouzakri/conges/internal/leavetype"
	"github.com/BadrBouzakri/conges/internal/messaging/kafka"
	"github.com/BadrBouzakri/conges/internal/workcalendar"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	createFn    func(ctx context.Context, l *leave.LeaveRequest) error
	findByIDFn  func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	updateFn    func(ctx context.Context, l *leave.LeaveRequest) error
	deleteFn    func(ctx context.Context, id string) error
	findMineFn  func(ctx context.Context, userID string) ([]leave.LeaveRequest, error)
	findRangeFn func(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, page, limit int) ([]leave.LeaveRequest, int64, error) {
	return nil, 0, nil
}

func (f *fakeLeaveRepository) FindAllByOwner(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	if f.findMineFn != nil {
		return f.findMineFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindApprovedInRange(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error) {
	if f.findRangeFn != nil {
		return f.findRangeFn(ctx, start, end)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeLeaveTypeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository { return f }
func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	return nil
}
func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]leavetype.LeaveType, error) {
	return nil, nil
}
func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveTypeRepository) FindByName(ctx context.Context, name string) (*leavetype.LeaveType, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	return nil
}
func (f *fakeLeaveTypeRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeBalanceRepository struct {
	findFn   func(ctx context.Context, userID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error)
	updateFn func(ctx context.Context, b *leavebalance.LeaveBalance) error
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) leavebalance.Repository { return f }
func (f *fakeBalanceRepository) Create(ctx context.Context, b *leavebalance.LeaveBalance) error {
	return nil
}
func (f *fakeBalanceRepository) FindByID(ctx context.Context, id string) (*leavebalance.LeaveBalance, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBalanceRepository) FindAllByUser(ctx context.Context, userID string) ([]leavebalance.LeaveBalance, error) {
	return nil, nil
}
func (f *fakeBalanceRepository) FindByUserTypeYear(ctx context.Context, userID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error) {
	if f.findFn != nil {
		return f.findFn(ctx, userID, leaveTypeID, year)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBalanceRepository) Update(ctx context.Context, b *leavebalance.LeaveBalance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, b)
	}
	return nil
}

type holidaySet map[string]struct{}

func (h holidaySet) IsHoliday(day time.Time) bool {
	_, ok := h[day.Format("2006-01-02")]
	return ok
}

func date(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeCalendar struct {
	cal workcalendar.Calendar
	err error
}

func (f *fakeCalendar) Snapshot(ctx context.Context) (workcalendar.Calendar, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.cal != nil {
		return f.cal, nil
	}
	return workcalendar.NoHolidays{}, nil
}

type fakeOutboxRepository struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type leaveServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  leave.Service
	repo     *fakeLeaveRepository
	types    *fakeLeaveTypeRepository
	balances *fakeBalanceRepository
	calendar *fakeCalendar
	outbox   *fakeOutboxRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	deps := &leaveServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		repo:     &fakeLeaveRepository{},
		types:    &fakeLeaveTypeRepository{},
		balances: &fakeBalanceRepository{},
		calendar: &fakeCalendar{},
		outbox:   &fakeOutboxRepository{},
	}
	deps.service = leave.NewService(db, deps.repo, deps.types, deps.balances, deps.calendar, deps.outbox)
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func paidLeaveType(requiresBalance bool) *leavetype.LeaveType {
	return &leavetype.LeaveType{
		ID:              uuid.New(),
		Name:            "Congés payés",
		RequiresBalance: requiresBalance,
		IsActive:        true,
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	actor := &domain.Actor{ID: uuid.New(), Role: domain.RoleEmployee}

	t.Run("success computes working days and enqueues event", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lt := paidLeaveType(true)
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			assert.Equal(t, lt.ID.String(), id)
			return lt, nil
		}
		deps.balances.findFn = func(ctx context.Context, userID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error) {
			assert.Equal(t, actor.ID.String(), userID)
			assert.Equal(t, 2024, year)
			return &leavebalance.LeaveBalance{Balance: 20}, nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, actor, leave.CreateLeaveRequestRequest{
			LeaveTypeID: lt.ID.String(),
			StartDate:   "2024-03-04",
			EndDate:     "2024-03-08",
			Reason:      "vacation",
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.Duration)
		assert.Equal(t, string(domain.StatusPending), resp.Status)

		assert.Len(t, deps.outbox.events, 1)
		event := deps.outbox.events[0]
		assert.Equal(t, events.LeaveRequestSubmitted, event.EventType)
		assert.Equal(t, events.LeaveLifecycleTopic, event.Topic)

		var payload events.LeaveRequestSubmittedEvent
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, 5, payload.Duration)
		assert.Equal(t, actor.ID.String(), payload.UserID)
	})

	t.Run("holidays shrink the duration", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lt := paidLeaveType(false)
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		deps.calendar.cal = holidaySet{"2024-03-06": {}}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, actor, leave.CreateLeaveRequestRequest{
			LeaveTypeID: lt.ID.String(),
			StartDate:   "2024-03-04",
			EndDate:     "2024-03-08",
		})

		assert.NoError(t, err)
		assert.Equal(t, 4, resp.Duration)
	})

	t.Run("end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actor, leave.CreateLeaveRequestRequest{
			LeaveTypeID: uuid.New().String(),
			StartDate:   "2024-03-08",
			EndDate:     "2024-03-04",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("weekend only period", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lt := paidLeaveType(false)
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}

		_, err := deps.service.Create(ctx, actor, leave.CreateLeaveRequestRequest{
			LeaveTypeID: lt.ID.String(),
			StartDate:   "2024-03-09",
			EndDate:     "2024-03-10",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrNoWorkingDays)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lt := paidLeaveType(true)
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		deps.balances.findFn = func(ctx context.Context, userID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error) {
			return &leavebalance.LeaveBalance{Balance: 2}, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(ctx, actor, leave.CreateLeaveRequestRequest{
			LeaveTypeID: lt.ID.String(),
			StartDate:   "2024-03-04",
			EndDate:     "2024-03-08",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
		assert.Empty(t, deps.outbox.events)
	})

	t.Run("balance skipped for non-tracked type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lt := paidLeaveType(false)
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		deps.balances.findFn = func(ctx context.Context, userID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error) {
			t.Fatal("balance must not be consulted")
			return nil, nil
		}

		expectTx(t, deps.sqlMock, true)

		_, err := deps.service.Create(ctx, actor, leave.CreateLeaveRequestRequest{
			LeaveTypeID: lt.ID.String(),
			StartDate:   "2024-03-04",
			EndDate:     "2024-03-08",
		})
		assert.NoError(t, err)
	})
}

func TestLeaveService_Update(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	owner := &domain.Actor{ID: ownerID, Role: domain.RoleEmployee}
	lt := paidLeaveType(true)

	existing := func() *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:          uuid.New(),
			UserID:      ownerID,
			LeaveTypeID: lt.ID,
			StartDate:   date("2024-03-04"),
			EndDate:     date("2024-03-08"),
			Duration:    5,
			Reason:      "vacation",
			Status:      domain.StatusPending,
		}
	}

	t.Run("unchanged dates keep the stored duration", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := existing()
		l.Duration = 99 // sentinel: recompute would overwrite this
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		deps.calendar.err = assert.AnError // snapshot must not be needed

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Update(ctx, owner, l.ID.String(), leave.UpdateLeaveRequestRequest{
			LeaveTypeID: lt.ID.String(),
			StartDate:   "2024-03-04",
			EndDate:     "2024-03-08",
			Reason:      "updated reason",
		})

		assert.NoError(t, err)
		assert.Equal(t, 99, resp.Duration)
		assert.Equal(t, "updated reason", resp.Reason)
	})

	t.Run("changed dates recompute the duration", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := existing()
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Update(ctx, owner, l.ID.String(), leave.UpdateLeaveRequestRequest{
			LeaveTypeID: lt.ID.String(),
			StartDate:   "2024-03-04",
			EndDate:     "2024-03-06",
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, resp.Duration)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := existing()
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}

		expectTx(t, deps.sqlMock, false)

		stranger := &domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
		_, err := deps.service.Update(ctx, stranger, l.ID.String(), leave.UpdateLeaveRequestRequest{
			LeaveTypeID: lt.ID.String(),
			StartDate:   "2024-03-04",
			EndDate:     "2024-03-08",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrEditForbidden)
	})

	t.Run("approved request not editable", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := existing()
		l.Status = domain.StatusApproved
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Update(ctx, owner, l.ID.String(), leave.UpdateLeaveRequestRequest{
			LeaveTypeID: lt.ID.String(),
			StartDate:   "2024-03-04",
			EndDate:     "2024-03-08",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrEditForbidden)
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	approver := &domain.Actor{ID: uuid.New(), Role: domain.RoleApprover}
	lt := paidLeaveType(true)

	pending := func() *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:          uuid.New(),
			UserID:      ownerID,
			LeaveTypeID: lt.ID,
			StartDate:   date("2024-03-04"),
			EndDate:     date("2024-03-08"),
			Duration:    5,
			Status:      domain.StatusPending,
		}
	}

	t.Run("approve debits the balance and enqueues event", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pending()
		bal := &leavebalance.LeaveBalance{Balance: 20}
		var updatedBalance *leavebalance.LeaveBalance

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		deps.balances.findFn = func(ctx context.Context, userID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error) {
			assert.Equal(t, ownerID.String(), userID)
			return bal, nil
		}
		deps.balances.updateFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			updatedBalance = b
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		comment := "ok"
		resp, err := deps.service.Approve(ctx, approver, l.ID.String(), &comment)

		assert.NoError(t, err)
		assert.Equal(t, string(domain.StatusApproved), resp.Status)
		assert.Equal(t, approver.ID.String(), *resp.ApproverID)
		assert.Equal(t, "ok", *resp.Comment)

		assert.NotNil(t, updatedBalance)
		assert.Equal(t, 15, updatedBalance.Balance)

		assert.Len(t, deps.outbox.events, 1)
		assert.Equal(t, events.LeaveRequestDecided, deps.outbox.events[0].EventType)

		var payload events.LeaveRequestDecidedEvent
		assert.NoError(t, json.Unmarshal(deps.outbox.events[0].Payload, &payload))
		assert.Equal(t, string(domain.StatusApproved), payload.Status)
		assert.Equal(t, "ok", payload.Comment)
	})

	t.Run("reject keeps the balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pending()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		deps.balances.findFn = func(ctx context.Context, userID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error) {
			t.Fatal("balance must not be consulted on reject")
			return nil, nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Reject(ctx, approver, l.ID.String(), nil)
		assert.NoError(t, err)
		assert.Equal(t, string(domain.StatusRejected), resp.Status)
		assert.Nil(t, resp.Comment)
	})

	t.Run("second decision conflicts", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pending()
		l.Status = domain.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Reject(ctx, approver, l.ID.String(), nil)
		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)
		assert.Empty(t, deps.outbox.events)
	})

	t.Run("approve without balance row", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pending()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		deps.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, approver, l.ID.String(), nil)
		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	})
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	owner := &domain.Actor{ID: ownerID, Role: domain.RoleEmployee}

	t.Run("owner deletes pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := &leave.LeaveRequest{ID: uuid.New(), UserID: ownerID, Status: domain.StatusPending}
		deleted := false
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = true
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		assert.NoError(t, deps.service.Delete(ctx, owner, l.ID.String()))
		assert.True(t, deleted)
	})

	t.Run("approved request not deletable", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := &leave.LeaveRequest{ID: uuid.New(), UserID: ownerID, Status: domain.StatusApproved}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}

		expectTx(t, deps.sqlMock, false)

		err := deps.service.Delete(ctx, owner, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrDeleteForbidden)
	})
}

func TestLeaveService_GetByID(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	l := &leave.LeaveRequest{ID: uuid.New(), UserID: ownerID, Status: domain.StatusPending}
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
		return l, nil
	}

	t.Run("stranger employee forbidden", func(t *testing.T) {
		stranger := &domain.Actor{ID: uuid.New(), Role: domain.RoleEmployee}
		_, err := deps.service.GetByID(ctx, stranger, l.ID.String())
		assert.ErrorIs(t, err, leaveerrors.ErrViewForbidden)
	})

	t.Run("approver may view", func(t *testing.T) {
		approver := &domain.Actor{ID: uuid.New(), Role: domain.RoleApprover}
		resp, err := deps.service.GetByID(ctx, approver, l.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, l.ID.String(), resp.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}
		owner := &domain.Actor{ID: ownerID, Role: domain.RoleEmployee}
		_, err := deps.service.GetByID(ctx, owner, uuid.New().String())
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_Preview(t *testing.T) {
	ctx := context.Background()

	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	resp, err := deps.service.Preview(ctx, leave.PreviewDurationRequest{
		StartDate: "2024-03-04",
		EndDate:   "2024-03-08",
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, resp.Duration)

	_, err = deps.service.Preview(ctx, leave.PreviewDurationRequest{
		StartDate: "2024-03-08",
		EndDate:   "2024-03-04",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
}

func TestLeaveService_CalendarMonth(t *testing.T) {
	ctx := context.Background()

	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	deps.repo.findRangeFn = func(ctx context.Context, start, end time.Time) ([]leave.LeaveRequest, error) {
		assert.Equal(t, "2024-03-01", start.Format("2006-01-02"))
		assert.Equal(t, "2024-03-31", end.Format("2006-01-02"))
		return []leave.LeaveRequest{{ID: uuid.New(), Status: domain.StatusApproved}}, nil
	}

	resp, err := deps.service.CalendarMonth(ctx, 2024, 3)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)

	_, err = deps.service.CalendarMonth(ctx, 2024, 13)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidCalendarMonth)
}
