package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/0uma0tieno/BLITZ/internal/ledger"
	"github.com/0uma0tieno/BLITZ/internal/payouts"
	"github.com/0uma0tieno/BLITZ/internal/ranking"
	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
	pkgerrors "github.com/0uma0tieno/BLITZ/pkg/errors"
	"github.com/0uma0tieno/BLITZ/pkg/types"
)

type stubAgentLister struct {
	agents  []models.User
	listErr error
}

func (s *stubAgentLister) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for i := range s.agents {
		if s.agents[i].ID == id {
			return &s.agents[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (s *stubAgentLister) ListAgentsByRole(ctx context.Context, role enums.UserRole) ([]models.User, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.User
	for _, agent := range s.agents {
		if agent.Role == role {
			out = append(out, agent)
		}
	}
	return out, nil
}

type stubLedgerService struct {
	entries []models.LedgerEntry
}

func (s *stubLedgerService) Credit(ctx context.Context, tx *gorm.DB, input ledger.CreditInput) (*models.LedgerEntry, error) {
	panic("not implemented")
}

func (s *stubLedgerService) EntriesByAgent(ctx context.Context, agentID uuid.UUID) ([]models.LedgerEntry, error) {
	return s.entries, nil
}

func (s *stubLedgerService) EntriesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.LedgerEntry, error) {
	return nil, nil
}

func agentUser(role enums.UserRole, name string, tasks int, gross string) models.User {
	return models.User{
		ID:                 uuid.New(),
		Name:               name,
		Role:               role,
		TasksCompleted:     tasks,
		TotalGrossEarnings: decimal.RequireFromString(gross),
	}
}

func TestLeaderboardDefaultsToCallerRole(t *testing.T) {
	top := agentUser(enums.UserRoleFootman, "amina", 12, "1000.00")
	second := agentUser(enums.UserRoleFootman, "barasa", 5, "400.00")
	lister := &stubAgentLister{agents: []models.User{second, top}}

	req := identityRequest(http.MethodGet, "/leaderboard", "", top.ID, enums.UserRoleFootman)
	rec := httptest.NewRecorder()
	Leaderboard(lister, 1, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			Role        enums.UserRole       `json:"role"`
			Leaderboard []ranking.RankedAgent `json:"leaderboard"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, enums.UserRoleFootman, envelope.Data.Role)
	require.Len(t, envelope.Data.Leaderboard, 2)
	require.Equal(t, "amina", envelope.Data.Leaderboard[0].Name)
	require.True(t, envelope.Data.Leaderboard[0].BonusEligible)
	require.False(t, envelope.Data.Leaderboard[1].BonusEligible)
}

func TestLeaderboardRejectsStoreRole(t *testing.T) {
	req := identityRequest(http.MethodGet, "/leaderboard?role=store", "", uuid.New(), enums.UserRoleFootman)
	rec := httptest.NewRecorder()
	Leaderboard(&stubAgentLister{}, 1, testLogger())(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboardRoleOverride(t *testing.T) {
	rider := agentUser(enums.UserRoleRider, "cherono", 3, "250.00")
	lister := &stubAgentLister{agents: []models.User{rider}}

	req := identityRequest(http.MethodGet, "/leaderboard?role=rider", "", uuid.New(), enums.UserRoleFootman)
	rec := httptest.NewRecorder()
	Leaderboard(lister, 1, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			Role enums.UserRole `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, enums.UserRoleRider, envelope.Data.Role)
}

func TestEarningsStatementForTopAgent(t *testing.T) {
	top := agentUser(enums.UserRoleFootman, "amina", 8, "1000.00")
	runnerUp := agentUser(enums.UserRoleFootman, "barasa", 2, "300.50")
	lister := &stubAgentLister{agents: []models.User{top, runnerUp}}
	ledgerSvc := &stubLedgerService{entries: []models.LedgerEntry{{ID: uuid.New(), AgentID: top.ID}}}

	req := identityRequest(http.MethodGet, "/earnings", "", top.ID, enums.UserRoleFootman)
	rec := httptest.NewRecorder()
	Earnings(lister, ledgerSvc, 1, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			Statement ranking.EarningsStatement `json:"statement"`
			Entries   []models.LedgerEntry      `json:"entries"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Data.Statement.BonusEligible)
	require.True(t, envelope.Data.Statement.NetEarnings.Equal(decimal.RequireFromString("1300")))
	require.True(t, envelope.Data.Statement.CompanyShare.Equal(decimal.RequireFromString("200")))
	require.Len(t, envelope.Data.Entries, 1)
}

func TestEarningsRequiresAgentRole(t *testing.T) {
	req := identityRequest(http.MethodGet, "/earnings", "", uuid.New(), enums.UserRoleStore)
	rec := httptest.NewRecorder()
	Earnings(&stubAgentLister{}, &stubLedgerService{}, 1, testLogger())(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

type stubPayoutService struct {
	request func(ctx context.Context, input payouts.RequestInput) (*models.PayoutRequest, error)
	list    func(ctx context.Context, agentID uuid.UUID) ([]models.PayoutRequest, error)
}

func (s *stubPayoutService) Request(ctx context.Context, input payouts.RequestInput) (*models.PayoutRequest, error) {
	if s.request != nil {
		return s.request(ctx, input)
	}
	return &models.PayoutRequest{}, nil
}

func (s *stubPayoutService) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]models.PayoutRequest, error) {
	if s.list != nil {
		return s.list(ctx, agentID)
	}
	return nil, nil
}

func TestRequestPayoutCreated(t *testing.T) {
	agentID := uuid.New()
	svc := &stubPayoutService{
		request: func(_ context.Context, input payouts.RequestInput) (*models.PayoutRequest, error) {
			require.Equal(t, agentID, input.AgentID)
			require.Equal(t, "254712345678", input.MpesaPhone)
			return &models.PayoutRequest{
				ID:      uuid.New(),
				AgentID: input.AgentID,
				Amount:  decimal.RequireFromString("1300.00"),
				Status:  payouts.StatusSimulated,
			}, nil
		},
	}

	req := identityRequest(http.MethodPost, "/payouts", `{"mpesa_phone":"254712345678"}`, agentID, enums.UserRoleFootman)
	rec := httptest.NewRecorder()
	RequestPayout(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRequestPayoutNoEarnings(t *testing.T) {
	svc := &stubPayoutService{
		request: func(_ context.Context, _ payouts.RequestInput) (*models.PayoutRequest, error) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no earnings to pay out")
		},
	}

	req := identityRequest(http.MethodPost, "/payouts", `{"mpesa_phone":"254712345678"}`, uuid.New(), enums.UserRoleRider)
	rec := httptest.NewRecorder()
	RequestPayout(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, string(pkgerrors.CodeStateConflict), envelope.Error.Code)
}

func TestRequestPayoutRejectsShortPhone(t *testing.T) {
	req := identityRequest(http.MethodPost, "/payouts", `{"mpesa_phone":"12345"}`, uuid.New(), enums.UserRoleFootman)
	rec := httptest.NewRecorder()
	RequestPayout(&stubPayoutService{}, testLogger())(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
