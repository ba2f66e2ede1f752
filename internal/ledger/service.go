package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
)

// Service records credits earned by agents.
type Service interface {
	Credit(ctx context.Context, tx *gorm.DB, input CreditInput) (*models.LedgerEntry, error)
	EntriesByAgent(ctx context.Context, agentID uuid.UUID) ([]models.LedgerEntry, error)
	EntriesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.LedgerEntry, error)
}

type service struct {
	repo Repository
}

// CreditInput captures the immutable data a ledger credit requires.
type CreditInput struct {
	OrderID   uuid.UUID
	AgentID   uuid.UUID
	AgentRole enums.UserRole
	Type      enums.LedgerEntryType
	Amount    decimal.Decimal
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

// Credit appends the entry row and bumps the agent's counters inside the
// caller's transaction. Both writes commit or roll back together.
func (s *service) Credit(ctx context.Context, tx *gorm.DB, input CreditInput) (*models.LedgerEntry, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction required")
	}
	if input.OrderID == uuid.Nil {
		return nil, fmt.Errorf("order id is required")
	}
	if input.AgentID == uuid.Nil {
		return nil, fmt.Errorf("agent id is required")
	}
	if !input.AgentRole.IsAgent() {
		return nil, fmt.Errorf("role %q cannot earn credits", input.AgentRole)
	}
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("invalid ledger entry type %q", input.Type)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("credit amount must be positive, got %s", input.Amount)
	}

	repo := s.repo.WithTx(tx)

	entry := &models.LedgerEntry{
		OrderID:   input.OrderID,
		AgentID:   input.AgentID,
		AgentRole: input.AgentRole,
		Type:      input.Type,
		Amount:    input.Amount,
	}
	if err := repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	if err := repo.IncrementAgentTotals(ctx, input.AgentID, input.Amount); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) EntriesByAgent(ctx context.Context, agentID uuid.UUID) ([]models.LedgerEntry, error) {
	if agentID == uuid.Nil {
		return nil, fmt.Errorf("agent id is required")
	}
	return s.repo.ListByAgentID(ctx, agentID)
}

func (s *service) EntriesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.LedgerEntry, error) {
	if orderID == uuid.Nil {
		return nil, fmt.Errorf("order id is required")
	}
	return s.repo.ListByOrderID(ctx, orderID)
}
