package enums

import "fmt"

// OrderUrgency captures how quickly a store needs an order moved.
type OrderUrgency string

const (
	OrderUrgencyNormal OrderUrgency = "normal"
	OrderUrgencyUrgent OrderUrgency = "urgent"
	OrderUrgencyASAP   OrderUrgency = "asap"
)

var validOrderUrgencies = []OrderUrgency{
	OrderUrgencyNormal,
	OrderUrgencyUrgent,
	OrderUrgencyASAP,
}

// String implements fmt.Stringer.
func (u OrderUrgency) String() string {
	return string(u)
}

// IsValid reports whether the value is a known OrderUrgency.
func (u OrderUrgency) IsValid() bool {
	for _, candidate := range validOrderUrgencies {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseOrderUrgency converts raw input into an OrderUrgency.
func ParseOrderUrgency(value string) (OrderUrgency, error) {
	for _, candidate := range validOrderUrgencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order urgency %q", value)
}
