package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/0uma0tieno/BLITZ/pkg/enums"
)

// User represents the canonical identity entity. Stores and agents share the
// table; the counters only ever move for footmen and riders.
type User struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name               string          `gorm:"type:text;not null;uniqueIndex:idx_users_name_role"`
	Role               enums.UserRole  `gorm:"type:user_role_enum;not null;uniqueIndex:idx_users_name_role"`
	Phone              *string         `gorm:"column:phone"`
	PasswordHash       string          `gorm:"column:password_hash;not null"`
	IsActive           bool            `gorm:"column:is_active;not null;default:true"`
	TasksCompleted     int             `gorm:"column:tasks_completed;not null;default:0"`
	TotalGrossEarnings decimal.Decimal `gorm:"column:total_gross_earnings;type:numeric(12,2);not null;default:0"`
	LastLoginAt        *time.Time      `gorm:"column:last_login_at"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
