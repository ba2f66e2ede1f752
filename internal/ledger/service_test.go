package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
)

type fakeRepository struct {
	createFn    func(ctx context.Context, entry *models.LedgerEntry) error
	incrementFn func(ctx context.Context, agentID uuid.UUID, amount decimal.Decimal) error
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) Create(ctx context.Context, entry *models.LedgerEntry) error {
	if f.createFn != nil {
		return f.createFn(ctx, entry)
	}
	return nil
}

func (f *fakeRepository) ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]models.LedgerEntry, error) {
	return nil, nil
}

func (f *fakeRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.LedgerEntry, error) {
	return nil, nil
}

func (f *fakeRepository) IncrementAgentTotals(ctx context.Context, agentID uuid.UUID, amount decimal.Decimal) error {
	if f.incrementFn != nil {
		return f.incrementFn(ctx, agentID, amount)
	}
	return nil
}

func TestService_Credit(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	input := CreditInput{
		OrderID:   uuid.New(),
		AgentID:   uuid.New(),
		AgentRole: enums.UserRoleFootman,
		Type:      enums.LedgerEntryTypeConsolidationFee,
		Amount:    decimal.NewFromInt(20),
	}

	var created *models.LedgerEntry
	var bumpedAgent uuid.UUID
	var bumpedAmount decimal.Decimal
	repo.createFn = func(ctx context.Context, entry *models.LedgerEntry) error {
		created = entry
		return nil
	}
	repo.incrementFn = func(ctx context.Context, agentID uuid.UUID, amount decimal.Decimal) error {
		bumpedAgent = agentID
		bumpedAmount = amount
		return nil
	}

	got, err := svc.Credit(context.Background(), &gorm.DB{}, input)
	if err != nil {
		t.Fatalf("Credit error: %v", err)
	}
	if created == nil {
		t.Fatal("expected ledger entry to be created")
	}
	if created.OrderID != input.OrderID || created.Type != input.Type || !created.Amount.Equal(input.Amount) {
		t.Fatalf("unexpected ledger entry data: %+v", created)
	}
	if created.AgentID != input.AgentID || created.AgentRole != input.AgentRole {
		t.Fatalf("missing agent metadata: %+v", created)
	}
	if bumpedAgent != input.AgentID || !bumpedAmount.Equal(input.Amount) {
		t.Fatalf("agent totals not incremented with credit values")
	}
	if got != created {
		t.Fatalf("service should return created entry")
	}
}

func TestService_CreditRequiresTransaction(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	if _, err := svc.Credit(context.Background(), nil, CreditInput{}); err == nil {
		t.Fatal("expected error without transaction")
	}
}

func TestService_CreditValidation(t *testing.T) {
	svc, err := NewService(&fakeRepository{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	valid := CreditInput{
		OrderID:   uuid.New(),
		AgentID:   uuid.New(),
		AgentRole: enums.UserRoleRider,
		Type:      enums.LedgerEntryTypeRiderDelivery,
		Amount:    decimal.NewFromInt(150),
	}

	tests := []struct {
		name   string
		mutate func(input *CreditInput)
	}{
		{"missing order id", func(i *CreditInput) { i.OrderID = uuid.Nil }},
		{"missing agent id", func(i *CreditInput) { i.AgentID = uuid.Nil }},
		{"store cannot earn", func(i *CreditInput) { i.AgentRole = enums.UserRoleStore }},
		{"invalid type", func(i *CreditInput) { i.Type = "tip" }},
		{"zero amount", func(i *CreditInput) { i.Amount = decimal.Zero }},
		{"negative amount", func(i *CreditInput) { i.Amount = decimal.NewFromInt(-5) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			if _, err := svc.Credit(context.Background(), &gorm.DB{}, input); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
