package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0uma0tieno/BLITZ/pkg/enums"
)

func TestQuoteOrderDistanceBased(t *testing.T) {
	distance := decimal.NewFromInt(10)
	quote, err := QuoteOrder(enums.OrderUrgencyNormal, &distance)
	require.NoError(t, err)

	// (50 + 30*10) * 0.85 = 297.50; 297.50 * 0.70 = 208.25
	assert.True(t, quote.CustomerCost.Equal(decimal.RequireFromString("297.50")), "cost %s", quote.CustomerCost)
	assert.True(t, quote.AgentPayout.Equal(decimal.RequireFromString("208.25")), "payout %s", quote.AgentPayout)
}

func TestQuoteOrderDistanceRounding(t *testing.T) {
	distance := decimal.RequireFromString("3.3")
	quote, err := QuoteOrder(enums.OrderUrgencyUrgent, &distance)
	require.NoError(t, err)

	// (50 + 99) * 0.85 = 126.65; 126.65 * 0.70 = 88.655 -> 88.66
	assert.True(t, quote.CustomerCost.Equal(decimal.RequireFromString("126.65")), "cost %s", quote.CustomerCost)
	assert.True(t, quote.AgentPayout.Equal(decimal.RequireFromString("88.66")), "payout %s", quote.AgentPayout)
}

func TestQuoteOrderUrgencyTable(t *testing.T) {
	cases := []struct {
		urgency enums.OrderUrgency
		payout  string
		cost    string
	}{
		{enums.OrderUrgencyNormal, "100", "142.86"},
		{enums.OrderUrgencyUrgent, "120", "171.43"},
		{enums.OrderUrgencyASAP, "150", "214.29"},
	}

	for _, tc := range cases {
		t.Run(string(tc.urgency), func(t *testing.T) {
			quote, err := QuoteOrder(tc.urgency, nil)
			require.NoError(t, err)
			assert.True(t, quote.AgentPayout.Equal(decimal.RequireFromString(tc.payout)), "payout %s", quote.AgentPayout)
			assert.True(t, quote.CustomerCost.Equal(decimal.RequireFromString(tc.cost)), "cost %s", quote.CustomerCost)
		})
	}
}

func TestQuoteOrderZeroDistanceFallsBackToTable(t *testing.T) {
	zero := decimal.Zero
	quote, err := QuoteOrder(enums.OrderUrgencyNormal, &zero)
	require.NoError(t, err)
	assert.True(t, quote.AgentPayout.Equal(decimal.NewFromInt(100)))
}

func TestQuoteOrderInvalidUrgency(t *testing.T) {
	_, err := QuoteOrder("overnight", nil)
	assert.Error(t, err)
}

func TestConsolidationFee(t *testing.T) {
	assert.True(t, ConsolidationFee().Equal(decimal.NewFromInt(20)))
}
