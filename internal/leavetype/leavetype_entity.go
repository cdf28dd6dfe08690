package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`

	// DefaultDays is the yearly allowance granted when a balance is opened
	// for this type. Zero is valid (e.g. unpaid leave).
	DefaultDays int `gorm:"type:int;not null;default:0"`

	// RequiresBalance marks types whose requests are checked against and
	// debited from the owner's balance (sick/unpaid leave typically not).
	RequiresBalance bool `gorm:"not null;default:true"`

	// IsActive hides the type from new-request pickers. Existing requests
	// keep referencing deactivated types.
	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveType) TableName() string { return "leave_types" }
