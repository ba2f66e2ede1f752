package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/0uma0tieno/BLITZ/pkg/enums"
	"github.com/0uma0tieno/BLITZ/pkg/types"
)

// Order is the single source of truth for a delivery's lifecycle. Status
// transitions happen through guarded updates keyed on the current status and
// owning agent; CalculatedCost and Payout are fixed at posting time except for
// the one-time consolidation fee deduction when a footman shares the order.
type Order struct {
	ID                   uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID              uuid.UUID           `gorm:"column:store_id;type:uuid;not null;index"`
	Description          string              `gorm:"column:description;type:text;not null"`
	Destination          string              `gorm:"column:destination;type:text;not null"`
	Urgency              enums.OrderUrgency  `gorm:"column:urgency;type:order_urgency_enum;not null"`
	Weight               *string             `gorm:"column:weight"`
	IsFragile            bool                `gorm:"column:is_fragile;not null;default:false"`
	DistanceKM           *decimal.Decimal    `gorm:"column:distance_km;type:numeric(8,2)"`
	ItemPhotoFileName    *string             `gorm:"column:item_photo_file_name"`
	CalculatedCost       decimal.Decimal     `gorm:"column:calculated_cost;type:numeric(12,2);not null"`
	Payout               decimal.Decimal     `gorm:"column:payout;type:numeric(12,2);not null"`
	Status               enums.OrderStatus   `gorm:"column:status;type:order_status_enum;not null;index"`
	FootmanID            *uuid.UUID          `gorm:"column:footman_id;type:uuid"`
	RiderID              *uuid.UUID          `gorm:"column:rider_id;type:uuid"`
	AssignedTo           *uuid.UUID          `gorm:"column:assigned_to;type:uuid;index"`
	PickupConfirmation   *types.Confirmation `gorm:"column:pickup_confirmation;type:jsonb"`
	DeliveryConfirmation *types.Confirmation `gorm:"column:delivery_confirmation;type:jsonb"`
	PostedAt             time.Time           `gorm:"column:posted_at;autoCreateTime"`
	SharedByFootmanAt    *time.Time          `gorm:"column:shared_by_footman_at"`
	ClaimedByRiderAt     *time.Time          `gorm:"column:claimed_by_rider_at"`
	DeliveredAt          *time.Time          `gorm:"column:delivered_at"`
	LastUpdated          time.Time           `gorm:"column:last_updated;autoUpdateTime"`
}
