package leavetype_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/BadrBouzakri/conges/internal/leavetype"
	leavetypeerrors "github.com/BadrBouzakri/conges/internal/leavetype/errors"
	leavetypeMock "github.com/BadrBouzakri/conges/internal/leavetype/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   leavetype.Service
	repo      *leavetypeMock.MockRepository
	redisMock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	rdb, redisMock := redismock.NewClientMock()
	repo := leavetypeMock.NewMockRepository(ctrl)

	svc := leavetype.NewService(db, repo, rdb)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		redisMock: redisMock,
	}
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

func TestLeaveTypeService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		expected := []leavetype.LeaveTypeResponse{
			{ID: uuid.New().String(), Name: "Congés payés"},
			{ID: uuid.New().String(), Name: "Congé maladie"},
		}
		jsonResp, _ := json.Marshal(expected)

		deps.redisMock.ExpectGet("leave_types:all").SetVal(string(jsonResp))

		resp, err := deps.service.GetAll(ctx, false)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Congés payés", resp[0].Name)

		deps.repo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Times(0)
	})

	t.Run("cache miss loads from db and populates redis", func(t *testing.T) {
		deps.redisMock.ExpectGet("leave_types:all").RedisNil()

		types := []leavetype.LeaveType{
			{ID: uuid.New(), Name: "Repos compensatoire", RequiresBalance: true, IsActive: true},
		}

		deps.repo.EXPECT().
			FindAll(ctx, false).
			Return(types, nil).
			Times(1)

		deps.redisMock.ExpectSet("leave_types:all", gomock.Any(), 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetAll(ctx, false)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Repos compensatoire", resp[0].Name)
	})

	t.Run("active filter uses its own cache key", func(t *testing.T) {
		deps.redisMock.ExpectGet("leave_types:active").RedisNil()

		deps.repo.EXPECT().
			FindAll(ctx, true).
			Return([]leavetype.LeaveType{{ID: uuid.New(), Name: "Congés payés", IsActive: true}}, nil).
			Times(1)

		deps.redisMock.ExpectSet("leave_types:active", gomock.Any(), 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetAll(ctx, true)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("database error", func(t *testing.T) {
		deps.redisMock.ExpectGet("leave_types:all").RedisNil()

		deps.repo.EXPECT().
			FindAll(ctx, false).
			Return(nil, errors.New("db connection error")).
			Times(1)

		resp, err := deps.service.GetAll(ctx, false)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestLeaveTypeService_Create(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success invalidates the cache", func(t *testing.T) {
		req := leavetype.CreateLeaveTypeRequest{Name: "Congé sans solde", DefaultDays: 0}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByName(ctx, req.Name).
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, lt *leavetype.LeaveType) error {
				assert.Equal(t, req.Name, lt.Name)
				assert.True(t, lt.RequiresBalance)
				assert.True(t, lt.IsActive)
				return nil
			})

		deps.redisMock.ExpectDel("leave_types:all").SetVal(1)
		deps.redisMock.ExpectDel("leave_types:active").SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, req.Name, resp.Name)
		assert.True(t, resp.IsActive)
	})

	t.Run("duplicate name", func(t *testing.T) {
		req := leavetype.CreateLeaveTypeRequest{Name: "Congés payés"}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByName(ctx, req.Name).
			Return(&leavetype.LeaveType{ID: uuid.New(), Name: req.Name}, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNameTaken)
	})

	t.Run("explicit requires_balance false", func(t *testing.T) {
		noBalance := false
		req := leavetype.CreateLeaveTypeRequest{Name: "Congé maladie", RequiresBalance: &noBalance}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByName(ctx, req.Name).
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, lt *leavetype.LeaveType) error {
				assert.False(t, lt.RequiresBalance)
				return nil
			})

		deps.redisMock.ExpectDel("leave_types:all").SetVal(1)
		deps.redisMock.ExpectDel("leave_types:active").SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.False(t, resp.RequiresBalance)
	})
}

func TestLeaveTypeService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	targetID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByID(ctx, targetID.String()).
			Return(&leavetype.LeaveType{ID: targetID, Name: "Congés payés"}, nil).
			Times(1)

		resp, err := deps.service.GetByID(ctx, targetID.String())

		assert.NoError(t, err)
		assert.Equal(t, targetID.String(), resp.ID)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := deps.service.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidLeaveTypeID)
	})

	t.Run("not found", func(t *testing.T) {
		deps.repo.EXPECT().
			FindByID(ctx, targetID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, targetID.String())
		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})
}

func TestLeaveTypeService_Update(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	targetID := uuid.New()

	t.Run("success", func(t *testing.T) {
		inactive := false
		req := leavetype.UpdateLeaveTypeRequest{Name: "Congés payés", DefaultDays: 27, IsActive: &inactive}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, targetID.String()).
			Return(&leavetype.LeaveType{ID: targetID, Name: "Congés payés", DefaultDays: 25, IsActive: true}, nil)
		deps.repo.EXPECT().
			FindByName(ctx, req.Name).
			Return(&leavetype.LeaveType{ID: targetID, Name: req.Name}, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, lt *leavetype.LeaveType) error {
				assert.Equal(t, 27, lt.DefaultDays)
				assert.False(t, lt.IsActive)
				return nil
			})

		deps.redisMock.ExpectDel("leave_types:all").SetVal(1)
		deps.redisMock.ExpectDel("leave_types:active").SetVal(1)

		resp, err := deps.service.Update(ctx, targetID.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, 27, resp.DefaultDays)
		assert.False(t, resp.IsActive)
	})

	t.Run("name taken by another type", func(t *testing.T) {
		req := leavetype.UpdateLeaveTypeRequest{Name: "Congé maladie"}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, targetID.String()).
			Return(&leavetype.LeaveType{ID: targetID, Name: "Congés payés"}, nil)
		deps.repo.EXPECT().
			FindByName(ctx, req.Name).
			Return(&leavetype.LeaveType{ID: uuid.New(), Name: req.Name}, nil)

		_, err := deps.service.Update(ctx, targetID.String(), req)

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNameTaken)
	})

	t.Run("not found", func(t *testing.T) {
		req := leavetype.UpdateLeaveTypeRequest{Name: "Congés payés"}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, targetID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, targetID.String(), req)

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})
}

func TestLeaveTypeService_Delete(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	targetID := uuid.New()

	t.Run("success", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, targetID.String()).
			Return(&leavetype.LeaveType{ID: targetID}, nil)
		deps.repo.EXPECT().
			Delete(ctx, targetID.String()).
			Return(nil)

		deps.redisMock.ExpectDel("leave_types:all").SetVal(1)
		deps.redisMock.ExpectDel("leave_types:active").SetVal(1)

		err := deps.service.Delete(ctx, targetID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("db error rolls back", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, targetID.String()).
			Return(&leavetype.LeaveType{ID: targetID}, nil)
		deps.repo.EXPECT().
			Delete(ctx, targetID.String()).
			Return(errors.New("db error"))

		err := deps.service.Delete(ctx, targetID.String())

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
