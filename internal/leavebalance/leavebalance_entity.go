package leavebalance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveBalance tracks the remaining allowance of one user for one leave type
// in one year. Requests against balance-tracked types are checked on creation
// and debited once on approval.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_user_type_year"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_user_type_year"`
	Year        int       `gorm:"type:int;not null;uniqueIndex:uq_balance_user_type_year"`
	Balance     int       `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveBalance) TableName() string { return "leave_balances" }
