package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/0uma0tieno/BLITZ/pkg/enums"
)

// LedgerEntry records an immutable credit earned by an agent on an order.
// Rows are append-only; the running counters live on users.
type LedgerEntry struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID             `gorm:"column:order_id;type:uuid;not null;index"`
	AgentID   uuid.UUID             `gorm:"column:agent_id;type:uuid;not null;index"`
	AgentRole enums.UserRole        `gorm:"column:agent_role;type:user_role_enum;not null"`
	Type      enums.LedgerEntryType `gorm:"column:type;type:ledger_entry_type_enum;not null"`
	Amount    decimal.Decimal       `gorm:"column:amount;type:numeric(12,2);not null"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}
