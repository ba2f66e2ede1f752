package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
)

// CreateUserDTO holds the fields accepted when registering a user.
type CreateUserDTO struct {
	Name         string
	Role         enums.UserRole
	Phone        *string
	PasswordHash string
}

// ToModel converts the DTO to the persistence model.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Name:         d.Name,
		Role:         d.Role,
		Phone:        d.Phone,
		PasswordHash: d.PasswordHash,
		IsActive:     true,
	}
}

// UserDTO is the outward-facing user shape. The password hash never leaves
// the persistence layer.
type UserDTO struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Role               enums.UserRole  `json:"role"`
	Phone              *string         `json:"phone,omitempty"`
	TasksCompleted     int             `json:"tasks_completed"`
	TotalGrossEarnings decimal.Decimal `json:"total_gross_earnings"`
	LastLoginAt        *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ToDTO maps the persistence model to the public shape.
func ToDTO(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:                 user.ID,
		Name:               user.Name,
		Role:               user.Role,
		Phone:              user.Phone,
		TasksCompleted:     user.TasksCompleted,
		TotalGrossEarnings: user.TotalGrossEarnings,
		LastLoginAt:        user.LastLoginAt,
		CreatedAt:          user.CreatedAt,
	}
}
