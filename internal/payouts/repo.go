package payouts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/0uma0tieno/BLITZ/pkg/db/models"
)

// Repository persists payout requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.PayoutRequest) error
	ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]models.PayoutRequest, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to a GORM connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.PayoutRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]models.PayoutRequest, error) {
	var rows []models.PayoutRequest
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
