package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/0uma0tieno/BLITZ/internal/ledger"
	"github.com/0uma0tieno/BLITZ/internal/pricing"
	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
	pkgerrors "github.com/0uma0tieno/BLITZ/pkg/errors"
	"github.com/0uma0tieno/BLITZ/pkg/outbox"
	"github.com/0uma0tieno/BLITZ/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines the order lifecycle operations.
type Service interface {
	Post(ctx context.Context, input PostOrderInput) (*models.Order, error)
	ClaimByFootman(ctx context.Context, input ClaimInput) (*TransitionResult, error)
	ShareWithRiders(ctx context.Context, input ShareInput) (*ShareResult, error)
	DeliverLocally(ctx context.Context, input ConfirmInput) (*TransitionResult, error)
	ClaimShared(ctx context.Context, input ClaimInput) (*TransitionResult, error)
	ConfirmRiderPickup(ctx context.Context, input ConfirmInput) (*TransitionResult, error)
	DeliverByRider(ctx context.Context, input ConfirmInput) (*TransitionResult, error)

	StoreOrders(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*OrderList, error)
	FootmanQueue(ctx context.Context, footmanID uuid.UUID, params pagination.Params) (*OrderList, error)
	RiderQueue(ctx context.Context, riderID uuid.UUID, params pagination.Params) (*OrderList, error)
	AgentActiveOrders(ctx context.Context, agentID uuid.UUID) ([]models.Order, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outboxPublisher
	ledger ledger.Service
}

// OrderPostedEvent is emitted when a store posts a new order.
type OrderPostedEvent struct {
	OrderID      uuid.UUID          `json:"order_id"`
	StoreID      uuid.UUID          `json:"store_id"`
	Urgency      enums.OrderUrgency `json:"urgency"`
	CustomerCost decimal.Decimal    `json:"customer_cost"`
	AgentPayout  decimal.Decimal    `json:"agent_payout"`
	Status       enums.OrderStatus  `json:"status"`
}

// OrderLifecycleEvent is emitted on every status transition after posting.
type OrderLifecycleEvent struct {
	OrderID uuid.UUID         `json:"order_id"`
	Status  enums.OrderStatus `json:"status"`
	AgentID *uuid.UUID        `json:"agent_id,omitempty"`
	Payout  decimal.Decimal   `json:"payout"`
}

// NewService builds an order lifecycle service with the required dependencies.
func NewService(repo Repository, tx txRunner, outboxSvc outboxPublisher, ledgerSvc ledger.Service) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if outboxSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "outbox publisher required")
	}
	if ledgerSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ledger service required")
	}
	return &service{
		repo:   repo,
		tx:     tx,
		outbox: outboxSvc,
		ledger: ledgerSvc,
	}, nil
}

func (s *service) Post(ctx context.Context, input PostOrderInput) (*models.Order, error) {
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "store identity missing")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required")
	}
	if strings.TrimSpace(input.Destination) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination required")
	}
	if !input.Urgency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid urgency")
	}
	if input.DistanceKM != nil && input.DistanceKM.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distance cannot be negative")
	}

	quote, err := pricing.QuoteOrder(input.Urgency, input.DistanceKM)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "quote order")
	}

	order := &models.Order{
		StoreID:           input.StoreID,
		Description:       strings.TrimSpace(input.Description),
		Destination:       strings.TrimSpace(input.Destination),
		Urgency:           input.Urgency,
		Weight:            input.Weight,
		IsFragile:         input.IsFragile,
		DistanceKM:        input.DistanceKM,
		ItemPhotoFileName: input.ItemPhotoFileName,
		CalculatedCost:    quote.CustomerCost,
		Payout:            quote.AgentPayout,
		Status:            enums.OrderStatusPendingPickup,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderPosted,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         &outbox.ActorRef{UserID: input.StoreID, Role: string(enums.UserRoleStore)},
			Data: OrderPostedEvent{
				OrderID:      order.ID,
				StoreID:      order.StoreID,
				Urgency:      order.Urgency,
				CustomerCost: order.CalculatedCost,
				AgentPayout:  order.Payout,
				Status:       order.Status,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) ClaimByFootman(ctx context.Context, input ClaimInput) (*TransitionResult, error) {
	if err := validateClaim(input); err != nil {
		return nil, err
	}

	var applied bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		inTransit, err := repo.HasOrderInTransit(ctx, input.AgentID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check in-transit orders")
		}
		if inTransit {
			return nil
		}

		applied, err = repo.Transition(ctx, Transition{
			OrderID:      input.OrderID,
			FromStatuses: []enums.OrderStatus{enums.OrderStatusPendingPickup},
			Updates: map[string]any{
				"status":      enums.OrderStatusClaimedByFootman,
				"footman_id":  input.AgentID,
				"assigned_to": input.AgentID,
			},
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim order")
		}
		if !applied {
			return nil
		}
		return s.emitLifecycle(ctx, tx, repo, input.OrderID, enums.EventOrderClaimedByFootman,
			enums.OrderStatusClaimedByFootman, input.AgentID, enums.UserRoleFootman)
	})
	if err != nil {
		return nil, err
	}
	return s.transitionResult(ctx, input.OrderID, applied)
}

func (s *service) ShareWithRiders(ctx context.Context, input ShareInput) (*ShareResult, error) {
	if input.FootmanID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "footman identity missing")
	}
	if len(input.OrderIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one order id required")
	}
	if err := input.Pickup.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "pickup confirmation")
	}

	fee := pricing.ConsolidationFee()
	result := &ShareResult{}
	var errs error

	// Each order transitions in its own transaction so one bad row never
	// rolls back the rest of the batch.
	for _, orderID := range input.OrderIDs {
		if orderID == uuid.Nil {
			result.SkippedOrderIDs = append(result.SkippedOrderIDs, orderID)
			continue
		}

		var applied bool
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)

			var err error
			applied, err = repo.Transition(ctx, Transition{
				OrderID:      orderID,
				FromStatuses: []enums.OrderStatus{enums.OrderStatusClaimedByFootman},
				OwnerID:      &input.FootmanID,
				Updates: map[string]any{
					"status":               enums.OrderStatusSharedWithRiders,
					"payout":               gorm.Expr("payout - ?", fee),
					"pickup_confirmation":  &input.Pickup,
					"assigned_to":          nil,
					"shared_by_footman_at": time.Now().UTC(),
				},
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "share order")
			}
			if !applied {
				return nil
			}

			if _, err := s.ledger.Credit(ctx, tx, ledger.CreditInput{
				OrderID:   orderID,
				AgentID:   input.FootmanID,
				AgentRole: enums.UserRoleFootman,
				Type:      enums.LedgerEntryTypeConsolidationFee,
				Amount:    fee,
			}); err != nil {
				return err
			}
			return s.emitLifecycle(ctx, tx, repo, orderID, enums.EventOrderSharedWithRiders,
				enums.OrderStatusSharedWithRiders, input.FootmanID, enums.UserRoleFootman)
		})
		if err != nil {
			errs = multierr.Append(errs, err)
			result.SkippedOrderIDs = append(result.SkippedOrderIDs, orderID)
			continue
		}
		if applied {
			result.AppliedOrderIDs = append(result.AppliedOrderIDs, orderID)
		} else {
			result.SkippedOrderIDs = append(result.SkippedOrderIDs, orderID)
		}
	}

	return result, errs
}

func (s *service) DeliverLocally(ctx context.Context, input ConfirmInput) (*TransitionResult, error) {
	if err := validateConfirm(input); err != nil {
		return nil, err
	}

	var applied bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		applied, err = repo.Transition(ctx, Transition{
			OrderID:      input.OrderID,
			FromStatuses: []enums.OrderStatus{enums.OrderStatusClaimedByFootman},
			OwnerID:      &input.AgentID,
			Updates: map[string]any{
				"status":                enums.OrderStatusDelivered,
				"delivery_confirmation": &input.Confirmation,
				"delivered_at":          time.Now().UTC(),
			},
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deliver order")
		}
		if !applied {
			return nil
		}
		return s.creditDelivery(ctx, tx, repo, input.OrderID, input.AgentID,
			enums.UserRoleFootman, enums.LedgerEntryTypeLocalDelivery)
	})
	if err != nil {
		return nil, err
	}
	return s.transitionResult(ctx, input.OrderID, applied)
}

func (s *service) ClaimShared(ctx context.Context, input ClaimInput) (*TransitionResult, error) {
	if err := validateClaim(input); err != nil {
		return nil, err
	}

	var applied bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		inTransit, err := repo.HasOrderInTransit(ctx, input.AgentID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check in-transit orders")
		}
		if inTransit {
			return nil
		}

		applied, err = repo.Transition(ctx, Transition{
			OrderID:      input.OrderID,
			FromStatuses: []enums.OrderStatus{enums.OrderStatusSharedWithRiders},
			Updates: map[string]any{
				"status":              enums.OrderStatusClaimedByRider,
				"rider_id":            input.AgentID,
				"assigned_to":         input.AgentID,
				"claimed_by_rider_at": time.Now().UTC(),
			},
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim shared order")
		}
		if !applied {
			return nil
		}
		return s.emitLifecycle(ctx, tx, repo, input.OrderID, enums.EventOrderClaimedByRider,
			enums.OrderStatusClaimedByRider, input.AgentID, enums.UserRoleRider)
	})
	if err != nil {
		return nil, err
	}
	return s.transitionResult(ctx, input.OrderID, applied)
}

func (s *service) ConfirmRiderPickup(ctx context.Context, input ConfirmInput) (*TransitionResult, error) {
	if err := validateConfirm(input); err != nil {
		return nil, err
	}

	var applied bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		// The rider's record replaces whatever the footman attached.
		applied, err = repo.Transition(ctx, Transition{
			OrderID:      input.OrderID,
			FromStatuses: []enums.OrderStatus{enums.OrderStatusClaimedByRider},
			OwnerID:      &input.AgentID,
			Updates: map[string]any{
				"status":              enums.OrderStatusOutForDelivery,
				"pickup_confirmation": &input.Confirmation,
			},
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm pickup")
		}
		if !applied {
			return nil
		}
		return s.emitLifecycle(ctx, tx, repo, input.OrderID, enums.EventOrderOutForDelivery,
			enums.OrderStatusOutForDelivery, input.AgentID, enums.UserRoleRider)
	})
	if err != nil {
		return nil, err
	}
	return s.transitionResult(ctx, input.OrderID, applied)
}

func (s *service) DeliverByRider(ctx context.Context, input ConfirmInput) (*TransitionResult, error) {
	if err := validateConfirm(input); err != nil {
		return nil, err
	}

	var applied bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		var err error
		applied, err = repo.Transition(ctx, Transition{
			OrderID: input.OrderID,
			FromStatuses: []enums.OrderStatus{
				enums.OrderStatusClaimedByRider,
				enums.OrderStatusOutForDelivery,
			},
			OwnerID: &input.AgentID,
			Updates: map[string]any{
				"status":                enums.OrderStatusDelivered,
				"delivery_confirmation": &input.Confirmation,
				"delivered_at":          time.Now().UTC(),
			},
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deliver order")
		}
		if !applied {
			return nil
		}
		return s.creditDelivery(ctx, tx, repo, input.OrderID, input.AgentID,
			enums.UserRoleRider, enums.LedgerEntryTypeRiderDelivery)
	})
	if err != nil {
		return nil, err
	}
	return s.transitionResult(ctx, input.OrderID, applied)
}

func (s *service) StoreOrders(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*OrderList, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "store identity missing")
	}
	list, err := s.repo.ListByStore(ctx, storeID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store orders")
	}
	return list, nil
}

// FootmanQueue returns open orders. An agent with a delivery in transit sees
// an empty queue until that delivery completes.
func (s *service) FootmanQueue(ctx context.Context, footmanID uuid.UUID, params pagination.Params) (*OrderList, error) {
	return s.agentQueue(ctx, footmanID, params, s.repo.ListOpenForFootmen)
}

// RiderQueue returns shared orders, hidden entirely while the rider has a
// delivery in transit.
func (s *service) RiderQueue(ctx context.Context, riderID uuid.UUID, params pagination.Params) (*OrderList, error) {
	return s.agentQueue(ctx, riderID, params, s.repo.ListSharedForRiders)
}

func (s *service) agentQueue(
	ctx context.Context,
	agentID uuid.UUID,
	params pagination.Params,
	list func(context.Context, pagination.Params) (*OrderList, error),
) (*OrderList, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "agent identity missing")
	}
	inTransit, err := s.repo.HasOrderInTransit(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check in-transit orders")
	}
	if inTransit {
		return &OrderList{Orders: []models.Order{}}, nil
	}
	result, err := list(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list queue")
	}
	return result, nil
}

func (s *service) AgentActiveOrders(ctx context.Context, agentID uuid.UUID) ([]models.Order, error) {
	if agentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "agent identity missing")
	}
	rows, err := s.repo.ListAssignedToAgent(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active orders")
	}
	return rows, nil
}

func (s *service) creditDelivery(
	ctx context.Context,
	tx *gorm.DB,
	repo Repository,
	orderID, agentID uuid.UUID,
	role enums.UserRole,
	entryType enums.LedgerEntryType,
) error {
	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload delivered order")
	}
	if _, err := s.ledger.Credit(ctx, tx, ledger.CreditInput{
		OrderID:   orderID,
		AgentID:   agentID,
		AgentRole: role,
		Type:      entryType,
		Amount:    order.Payout,
	}); err != nil {
		return err
	}
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventOrderDelivered,
		AggregateType: enums.AggregateOrder,
		AggregateID:   orderID,
		Version:       1,
		Actor:         &outbox.ActorRef{UserID: agentID, Role: string(role)},
		Data: OrderLifecycleEvent{
			OrderID: orderID,
			Status:  enums.OrderStatusDelivered,
			AgentID: &agentID,
			Payout:  order.Payout,
		},
	})
}

func (s *service) emitLifecycle(
	ctx context.Context,
	tx *gorm.DB,
	repo Repository,
	orderID uuid.UUID,
	eventType enums.OutboxEventType,
	status enums.OrderStatus,
	agentID uuid.UUID,
	role enums.UserRole,
) error {
	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
		EventType:     eventType,
		AggregateType: enums.AggregateOrder,
		AggregateID:   orderID,
		Version:       1,
		Actor:         &outbox.ActorRef{UserID: agentID, Role: string(role)},
		Data: OrderLifecycleEvent{
			OrderID: orderID,
			Status:  status,
			AgentID: &agentID,
			Payout:  order.Payout,
		},
	})
}

func (s *service) transitionResult(ctx context.Context, orderID uuid.UUID, applied bool) (*TransitionResult, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return &TransitionResult{Applied: applied, Order: order}, nil
}

func validateClaim(input ClaimInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.AgentID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "agent identity missing")
	}
	return nil
}

func validateConfirm(input ConfirmInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.AgentID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "agent identity missing")
	}
	if err := input.Confirmation.Validate(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "confirmation")
	}
	return nil
}
