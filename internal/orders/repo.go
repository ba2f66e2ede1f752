package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
	"github.com/0uma0tieno/BLITZ/pkg/pagination"
)

// Statuses that keep an order on an agent's active list.
var activeAssignmentStatuses = []enums.OrderStatus{
	enums.OrderStatusClaimedByFootman,
	enums.OrderStatusClaimedByRider,
	enums.OrderStatusOutForDelivery,
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByStore(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*OrderList, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("store_id = ?", storeID)
	return r.paginate(query, params)
}

func (r *repository) ListOpenForFootmen(ctx context.Context, params pagination.Params) (*OrderList, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", enums.OrderStatusPendingPickup)
	return r.paginate(query, params)
}

func (r *repository) ListSharedForRiders(ctx context.Context, params pagination.Params) (*OrderList, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", enums.OrderStatusSharedWithRiders)
	return r.paginate(query, params)
}

func (r *repository) ListAssignedToAgent(ctx context.Context, agentID uuid.UUID) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Where("assigned_to = ?", agentID).
		Where("status IN ?", activeAssignmentStatuses).
		Order("posted_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) HasOrderInTransit(ctx context.Context, agentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("assigned_to = ?", agentID).
		Where("status = ?", enums.OrderStatusOutForDelivery).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Transition performs the compare-and-set update. The database row is the
// arbiter: zero rows affected means the guard did not match and the caller
// treats the operation as a no-op.
func (r *repository) Transition(ctx context.Context, change Transition) (bool, error) {
	if change.OrderID == uuid.Nil {
		return false, errors.New("order id required")
	}
	if len(change.FromStatuses) == 0 {
		return false, errors.New("at least one source status required")
	}
	if len(change.Updates) == 0 {
		return false, errors.New("updates required")
	}

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", change.OrderID).
		Where("status IN ?", change.FromStatuses)
	if change.OwnerID != nil {
		query = query.Where("assigned_to = ?", *change.OwnerID)
	}

	result := query.Updates(change.Updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) paginate(query *gorm.DB, params pagination.Params) (*OrderList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(posted_at > ?) OR (posted_at = ? AND id > ?)",
			cursor.PostedAt, cursor.PostedAt, cursor.ID,
		)
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var rows []models.Order
	err = query.
		Order("posted_at ASC").
		Order("id ASC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &OrderList{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			PostedAt: last.PostedAt,
			ID:       last.ID,
		})
	}
	list.Orders = rows
	return list, nil
}
