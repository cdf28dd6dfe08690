package leave

import (
	"time"

	"github.com/BadrBouzakri/conges/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveRequest is the persisted form of one leave request. Duration is the
// number of working days in [StartDate, EndDate], computed once on create and
// recomputed only when the dates change.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_user"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_dates"`
	Duration  int       `gorm:"type:int;not null"`
	Reason    string    `gorm:"type:text"`

	Status     domain.LeaveStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	Comment    *string            `gorm:"type:text"`
	ApproverID *uuid.UUID         `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }

func (l LeaveRequest) View() domain.LeaveRequestView {
	return domain.LeaveRequestView{OwnerID: l.UserID, Status: l.Status}
}
