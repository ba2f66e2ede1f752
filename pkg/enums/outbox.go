package enums

import "fmt"

// OutboxEventType names a lifecycle event queued for publication.
type OutboxEventType string

const (
	EventOrderPosted           OutboxEventType = "order.posted"
	EventOrderClaimedByFootman OutboxEventType = "order.claimed_by_footman"
	EventOrderSharedWithRiders OutboxEventType = "order.shared_with_riders"
	EventOrderClaimedByRider   OutboxEventType = "order.claimed_by_rider"
	EventOrderOutForDelivery   OutboxEventType = "order.out_for_delivery"
	EventOrderDelivered        OutboxEventType = "order.delivered"
	EventPayoutRequested       OutboxEventType = "payout.requested"
)

var validOutboxEventTypes = []OutboxEventType{
	EventOrderPosted,
	EventOrderClaimedByFootman,
	EventOrderSharedWithRiders,
	EventOrderClaimedByRider,
	EventOrderOutForDelivery,
	EventOrderDelivered,
	EventPayoutRequested,
}

// IsValid reports whether the value is a known OutboxEventType.
func (t OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into an OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid outbox event type %q", value)
}

// OutboxAggregateType names the entity an outbox event describes.
type OutboxAggregateType string

const (
	AggregateOrder         OutboxAggregateType = "order"
	AggregatePayoutRequest OutboxAggregateType = "payout_request"
)

// IsValid reports whether the value is a known OutboxAggregateType.
func (t OutboxAggregateType) IsValid() bool {
	return t == AggregateOrder || t == AggregatePayoutRequest
}
