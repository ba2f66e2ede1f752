package ranking

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
)

// DefaultTopN is how many top-ranked agents earn the weekly bonus when no
// override is configured.
const DefaultTopN = 1

var (
	bonusAmount  = decimal.NewFromInt(500)
	companyShare = decimal.RequireFromString("0.20")
	agentShare   = decimal.RequireFromString("0.80")
)

// AgentSnapshot is the slice of a user row the evaluator ranks on.
type AgentSnapshot struct {
	AgentID            uuid.UUID       `json:"agent_id"`
	Name               string          `json:"name"`
	Role               enums.UserRole  `json:"role"`
	TasksCompleted     int             `json:"tasks_completed"`
	TotalGrossEarnings decimal.Decimal `json:"total_gross_earnings"`
}

// RankedAgent is a snapshot with its leaderboard position attached.
type RankedAgent struct {
	AgentSnapshot
	Rank          int  `json:"rank"`
	BonusEligible bool `json:"bonus_eligible"`
}

// EarningsStatement is the agent-facing earnings breakdown. The company
// retains its share of gross and the bonus is paid on top of the remainder.
type EarningsStatement struct {
	GrossEarnings  decimal.Decimal `json:"gross_earnings"`
	CompanyShare   decimal.Decimal `json:"company_share"`
	Bonus          decimal.Decimal `json:"bonus"`
	NetEarnings    decimal.Decimal `json:"net_earnings"`
	TasksCompleted int             `json:"tasks_completed"`
	Rank           int             `json:"rank"`
	BonusEligible  bool            `json:"bonus_eligible"`
}

// SnapshotFromUser projects a user row into the evaluator's input shape.
func SnapshotFromUser(user models.User) AgentSnapshot {
	return AgentSnapshot{
		AgentID:            user.ID,
		Name:               user.Name,
		Role:               user.Role,
		TasksCompleted:     user.TasksCompleted,
		TotalGrossEarnings: user.TotalGrossEarnings,
	}
}

// Rank orders the cohort deterministically and marks bonus eligibility.
// Ties on task count break on gross earnings, then on name, so the same
// cohort always produces the same leaderboard.
func Rank(cohort []AgentSnapshot, topN int) []RankedAgent {
	if topN <= 0 {
		topN = DefaultTopN
	}

	sorted := make([]AgentSnapshot, len(cohort))
	copy(sorted, cohort)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TasksCompleted != sorted[j].TasksCompleted {
			return sorted[i].TasksCompleted > sorted[j].TasksCompleted
		}
		if !sorted[i].TotalGrossEarnings.Equal(sorted[j].TotalGrossEarnings) {
			return sorted[i].TotalGrossEarnings.GreaterThan(sorted[j].TotalGrossEarnings)
		}
		return sorted[i].Name < sorted[j].Name
	})

	ranked := make([]RankedAgent, len(sorted))
	for i, snapshot := range sorted {
		ranked[i] = RankedAgent{
			AgentSnapshot: snapshot,
			Rank:          i,
			BonusEligible: i < topN && snapshot.TasksCompleted > 0,
		}
	}
	return ranked
}

// Statement computes an agent's earnings breakdown against their cohort.
// An agent missing from the cohort still gets a statement, unranked and
// without a bonus.
func Statement(agentID uuid.UUID, cohort []AgentSnapshot, topN int) EarningsStatement {
	ranked := Rank(cohort, topN)
	for _, agent := range ranked {
		if agent.AgentID == agentID {
			return statementFor(agent)
		}
	}
	return EarningsStatement{
		GrossEarnings: decimal.Zero,
		CompanyShare:  decimal.Zero,
		Bonus:         decimal.Zero,
		NetEarnings:   decimal.Zero,
		Rank:          len(ranked),
	}
}

func statementFor(agent RankedAgent) EarningsStatement {
	gross := agent.TotalGrossEarnings
	company := gross.Mul(companyShare).Round(2)
	bonus := decimal.Zero
	if agent.BonusEligible {
		bonus = bonusAmount
	}
	net := gross.Mul(agentShare).Round(2).Add(bonus)
	return EarningsStatement{
		GrossEarnings:  gross,
		CompanyShare:   company,
		Bonus:          bonus,
		NetEarnings:    net,
		TasksCompleted: agent.TasksCompleted,
		Rank:           agent.Rank,
		BonusEligible:  agent.BonusEligible,
	}
}

// BonusAmount exposes the flat weekly bonus value.
func BonusAmount() decimal.Decimal {
	return bonusAmount
}
