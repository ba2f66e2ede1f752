package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
	"github.com/0uma0tieno/BLITZ/pkg/types"
)

// PostOrderInput captures everything a store supplies when posting an order.
type PostOrderInput struct {
	StoreID           uuid.UUID
	Description       string
	Destination       string
	Urgency           enums.OrderUrgency
	Weight            *string
	IsFragile         bool
	DistanceKM        *decimal.Decimal
	ItemPhotoFileName *string
}

// ClaimInput identifies the order and the agent attempting to claim it.
type ClaimInput struct {
	OrderID uuid.UUID
	AgentID uuid.UUID
}

// ShareInput carries the batch of orders a footman hands to the rider pool.
type ShareInput struct {
	FootmanID uuid.UUID
	OrderIDs  []uuid.UUID
	Pickup    types.Confirmation
}

// ConfirmInput carries a confirmation record for a single-order transition.
type ConfirmInput struct {
	OrderID      uuid.UUID
	AgentID      uuid.UUID
	Confirmation types.Confirmation
}

// TransitionResult reports whether a guarded transition changed the row. A
// false Applied means the order was not in the expected state (or belonged to
// someone else) and nothing happened.
type TransitionResult struct {
	Applied bool          `json:"applied"`
	Order   *models.Order `json:"order"`
}

// ShareResult reports the subset of the requested batch that transitioned.
type ShareResult struct {
	AppliedOrderIDs []uuid.UUID `json:"applied_order_ids"`
	SkippedOrderIDs []uuid.UUID `json:"skipped_order_ids"`
}

// OrderList wraps a page of orders plus the next page cursor.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// Transition describes a compare-and-set status update. The row only changes
// when its current status is in FromStatuses and, when OwnerID is set, it is
// assigned to that agent.
type Transition struct {
	OrderID      uuid.UUID
	FromStatuses []enums.OrderStatus
	OwnerID      *uuid.UUID
	Updates      map[string]any
}
