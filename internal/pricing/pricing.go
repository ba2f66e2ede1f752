package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/0uma0tieno/BLITZ/pkg/enums"
)

// Tariff constants in KES.
const (
	baseFee          = 50
	perKmFee         = 30
	consolidationFee = 20
)

var (
	customerShare = decimal.NewFromFloat(0.85)
	agentShare    = decimal.NewFromFloat(0.70)

	// Flat payouts used when no distance is supplied.
	urgencyPayouts = map[enums.OrderUrgency]decimal.Decimal{
		enums.OrderUrgencyNormal: decimal.NewFromInt(100),
		enums.OrderUrgencyUrgent: decimal.NewFromInt(120),
		enums.OrderUrgencyASAP:   decimal.NewFromInt(150),
	}
)

// Quote captures the cost charged to the store and the payout promised to the
// delivering agent, both rounded to two decimal places at quote time.
type Quote struct {
	CustomerCost decimal.Decimal
	AgentPayout  decimal.Decimal
}

// QuoteOrder prices an order. With a positive distance the quote is
// distance-based: cost = (50 + 30*km) discounted 15%, payout = 70% of cost.
// Without a distance the urgency table fixes the payout and the cost is
// derived so the payout stays at the 70% share.
func QuoteOrder(urgency enums.OrderUrgency, distanceKM *decimal.Decimal) (Quote, error) {
	if !urgency.IsValid() {
		return Quote{}, fmt.Errorf("invalid urgency %q", urgency)
	}

	if distanceKM != nil && distanceKM.IsPositive() {
		base := decimal.NewFromInt(baseFee).Add(decimal.NewFromInt(perKmFee).Mul(*distanceKM))
		cost := base.Mul(customerShare).Round(2)
		payout := cost.Mul(agentShare).Round(2)
		return Quote{CustomerCost: cost, AgentPayout: payout}, nil
	}

	payout, ok := urgencyPayouts[urgency]
	if !ok {
		return Quote{}, fmt.Errorf("no payout tariff for urgency %q", urgency)
	}
	cost := payout.Div(agentShare).Round(2)
	return Quote{CustomerCost: cost, AgentPayout: payout}, nil
}

// ConsolidationFee is the flat amount a footman earns for consolidating an
// order and handing it to the rider pool.
func ConsolidationFee() decimal.Decimal {
	return decimal.NewFromInt(consolidationFee)
}
