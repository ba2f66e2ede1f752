package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/pagination"
)

// Repository defines persistence operations for the orders table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*OrderList, error)
	ListOpenForFootmen(ctx context.Context, params pagination.Params) (*OrderList, error)
	ListSharedForRiders(ctx context.Context, params pagination.Params) (*OrderList, error)
	ListAssignedToAgent(ctx context.Context, agentID uuid.UUID) ([]models.Order, error)
	HasOrderInTransit(ctx context.Context, agentID uuid.UUID) (bool, error)
	Transition(ctx context.Context, change Transition) (bool, error)
}
