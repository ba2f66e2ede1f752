package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutRequest captures an agent's request to cash out earnings to M-Pesa.
// Requests are recorded only; status stays "simulated" because no money moves.
type PayoutRequest struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AgentID    uuid.UUID       `gorm:"column:agent_id;type:uuid;not null;index"`
	MpesaPhone string          `gorm:"column:mpesa_phone;type:text;not null"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Paybill    string          `gorm:"column:paybill;type:text;not null"`
	Status     string          `gorm:"column:status;type:text;not null;default:simulated"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
