package payouts

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/0uma0tieno/BLITZ/internal/ranking"
	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
	pkgerrors "github.com/0uma0tieno/BLITZ/pkg/errors"
	"github.com/0uma0tieno/BLITZ/pkg/outbox"
)

// CompanyPaybill is the M-Pesa paybill every simulated payout is booked
// against.
const CompanyPaybill = "123456"

// StatusSimulated is the only payout status. No money moves.
const StatusSimulated = "simulated"

var mpesaPhonePattern = regexp.MustCompile(`^\d{10,12}$`)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type agentReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListAgentsByRole(ctx context.Context, role enums.UserRole) ([]models.User, error)
}

// RequestInput is what an agent submits when cashing out.
type RequestInput struct {
	AgentID    uuid.UUID
	MpesaPhone string
}

// PayoutRequestedEvent is emitted when a payout request is recorded.
type PayoutRequestedEvent struct {
	RequestID  uuid.UUID       `json:"request_id"`
	AgentID    uuid.UUID       `json:"agent_id"`
	MpesaPhone string          `json:"mpesa_phone"`
	Amount     decimal.Decimal `json:"amount"`
	Paybill    string          `json:"paybill"`
	Status     string          `json:"status"`
}

// Service records simulated M-Pesa payouts of an agent's current net
// earnings.
type Service interface {
	Request(ctx context.Context, input RequestInput) (*models.PayoutRequest, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]models.PayoutRequest, error)
}

type service struct {
	repo   Repository
	agents agentReader
	tx     txRunner
	outbox outboxPublisher
	topN   int
}

// NewService wires the payout stub.
func NewService(repo Repository, agents agentReader, tx txRunner, outboxSvc outboxPublisher, bonusTopN int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payouts repository is required")
	}
	if agents == nil {
		return nil, fmt.Errorf("agent reader is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher is required")
	}
	return &service{
		repo:   repo,
		agents: agents,
		tx:     tx,
		outbox: outboxSvc,
		topN:   bonusTopN,
	}, nil
}

// Request books a payout of the agent's current net earnings against the
// company paybill. The amount is computed at request time from the ledger
// totals and leaderboard position.
func (s *service) Request(ctx context.Context, input RequestInput) (*models.PayoutRequest, error) {
	if input.AgentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "agent identity missing")
	}
	if !mpesaPhonePattern.MatchString(input.MpesaPhone) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mpesa phone must be 10 to 12 digits")
	}

	agent, err := s.agents.FindByID(ctx, input.AgentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "agent lookup")
	}
	if !agent.Role.IsAgent() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only agents request payouts")
	}

	cohort, err := s.agents.ListAgentsByRole(ctx, agent.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cohort")
	}
	snapshots := make([]ranking.AgentSnapshot, 0, len(cohort))
	for _, row := range cohort {
		snapshots = append(snapshots, ranking.SnapshotFromUser(row))
	}
	statement := ranking.Statement(agent.ID, snapshots, s.topN)
	if !statement.NetEarnings.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no earnings to pay out")
	}

	request := &models.PayoutRequest{
		AgentID:    agent.ID,
		MpesaPhone: input.MpesaPhone,
		Amount:     statement.NetEarnings,
		Paybill:    CompanyPaybill,
		Status:     StatusSimulated,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, request); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payout request")
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPayoutRequested,
			AggregateType: enums.AggregatePayoutRequest,
			AggregateID:   request.ID,
			Version:       1,
			Actor:         &outbox.ActorRef{UserID: agent.ID, Role: string(agent.Role)},
			Data: PayoutRequestedEvent{
				RequestID:  request.ID,
				AgentID:    agent.ID,
				MpesaPhone: request.MpesaPhone,
				Amount:     request.Amount,
				Paybill:    request.Paybill,
				Status:     request.Status,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (s *service) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]models.PayoutRequest, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "agent identity missing")
	}
	rows, err := s.repo.ListByAgentID(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payout requests")
	}
	return rows, nil
}
