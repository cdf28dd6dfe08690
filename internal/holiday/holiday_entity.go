package holiday

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Holiday is a single non-working calendar day. Dates are stored as
// YYYY-MM-DD strings so equality is timezone-free.
type Holiday struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date string    `gorm:"type:varchar(10);uniqueIndex;not null"`
	Name string    `gorm:"type:varchar(255);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Holiday) TableName() string { return "holidays" }
