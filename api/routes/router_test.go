package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/0uma0tieno/BLITZ/api/controllers"
	internalauth "github.com/0uma0tieno/BLITZ/internal/auth"
	"github.com/0uma0tieno/BLITZ/internal/orders"
	"github.com/0uma0tieno/BLITZ/internal/payouts"
	pkgauth "github.com/0uma0tieno/BLITZ/pkg/auth"
	"github.com/0uma0tieno/BLITZ/pkg/config"
	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
	"github.com/0uma0tieno/BLITZ/pkg/logger"
	"github.com/0uma0tieno/BLITZ/pkg/pagination"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

type stubSessionChecker struct {
	active bool
}

func (s stubSessionChecker) HasSession(context.Context, string) (bool, error) {
	return s.active, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, internalauth.RegisterRequest) (*internalauth.AuthResponse, error) {
	return &internalauth.AuthResponse{}, nil
}

func (stubAuthService) Login(context.Context, internalauth.LoginRequest) (*internalauth.AuthResponse, error) {
	return &internalauth.AuthResponse{}, nil
}

func (stubAuthService) Refresh(context.Context, internalauth.RefreshRequest) (*internalauth.AuthResponse, error) {
	return &internalauth.AuthResponse{}, nil
}

func (stubAuthService) Logout(context.Context, string) error {
	return nil
}

type stubOrdersService struct{}

func (stubOrdersService) Post(context.Context, orders.PostOrderInput) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrdersService) ClaimByFootman(context.Context, orders.ClaimInput) (*orders.TransitionResult, error) {
	return &orders.TransitionResult{}, nil
}

func (stubOrdersService) ShareWithRiders(context.Context, orders.ShareInput) (*orders.ShareResult, error) {
	return &orders.ShareResult{}, nil
}

func (stubOrdersService) DeliverLocally(context.Context, orders.ConfirmInput) (*orders.TransitionResult, error) {
	return &orders.TransitionResult{}, nil
}

func (stubOrdersService) ClaimShared(context.Context, orders.ClaimInput) (*orders.TransitionResult, error) {
	return &orders.TransitionResult{}, nil
}

func (stubOrdersService) ConfirmRiderPickup(context.Context, orders.ConfirmInput) (*orders.TransitionResult, error) {
	return &orders.TransitionResult{}, nil
}

func (stubOrdersService) DeliverByRider(context.Context, orders.ConfirmInput) (*orders.TransitionResult, error) {
	return &orders.TransitionResult{}, nil
}

func (stubOrdersService) StoreOrders(context.Context, uuid.UUID, pagination.Params) (*orders.OrderList, error) {
	return &orders.OrderList{}, nil
}

func (stubOrdersService) FootmanQueue(context.Context, uuid.UUID, pagination.Params) (*orders.OrderList, error) {
	return &orders.OrderList{Orders: []models.Order{{ID: uuid.New()}}}, nil
}

func (stubOrdersService) RiderQueue(context.Context, uuid.UUID, pagination.Params) (*orders.OrderList, error) {
	return &orders.OrderList{}, nil
}

func (stubOrdersService) AgentActiveOrders(context.Context, uuid.UUID) ([]models.Order, error) {
	return nil, nil
}

type stubPayoutService struct{}

func (stubPayoutService) Request(context.Context, payouts.RequestInput) (*models.PayoutRequest, error) {
	return &models.PayoutRequest{}, nil
}

func (stubPayoutService) ListByAgent(context.Context, uuid.UUID) ([]models.PayoutRequest, error) {
	return nil, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.Port = "8080"
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.Issuer = "blitz-test"
	cfg.JWT.ExpirationMinutes = 15
	cfg.Rewards.BonusTopN = 1
	return cfg
}

func newTestRouter(t *testing.T, sessionActive bool) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config:         testConfig(),
		Logger:         logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard}),
		SessionChecker: stubSessionChecker{active: sessionActive},
		ReadyChecks:    map[string]controllers.Pinger{"database": stubPinger{}},
		AuthService:    stubAuthService{},
		OrdersService:  stubOrdersService{},
		PayoutService:  stubPayoutService{},
	})
}

func mintToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Name:   "router-test-agent",
		Role:   role,
		JTI:    uuid.NewString(),
	})
	require.NoError(t, err)
	return token
}

func TestHealthLiveNeedsNoAuth(t *testing.T) {
	router := newTestRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(t, true)

	for _, target := range []string{
		"/api/v1/store/orders",
		"/api/v1/footman/orders/queue",
		"/api/v1/rider/orders/queue",
		"/api/v1/leaderboard",
		"/api/v1/earnings",
		"/api/v1/payouts",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "target %s", target)
	}
}

func TestFootmanQueueWithValidToken(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(Deps{
		Config:         cfg,
		Logger:         logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard}),
		SessionChecker: stubSessionChecker{active: true},
		AuthService:    stubAuthService{},
		OrdersService:  stubOrdersService{},
		PayoutService:  stubPayoutService{},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/footman/orders/queue", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleFootman))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data orders.OrderList `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Orders, 1)
}

func TestRoleMismatchForbidden(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(Deps{
		Config:         cfg,
		Logger:         logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard}),
		SessionChecker: stubSessionChecker{active: true},
		AuthService:    stubAuthService{},
		OrdersService:  stubOrdersService{},
		PayoutService:  stubPayoutService{},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/footman/orders/queue", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleStore))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRevokedSessionRejected(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(Deps{
		Config:         cfg,
		Logger:         logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard}),
		SessionChecker: stubSessionChecker{active: false},
		AuthService:    stubAuthService{},
		OrdersService:  stubOrdersService{},
		PayoutService:  stubPayoutService{},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/footman/orders/queue", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, enums.UserRoleFootman))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthReadyReportsDependencyFailure(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(Deps{
		Config:         cfg,
		Logger:         logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard}),
		SessionChecker: stubSessionChecker{active: true},
		ReadyChecks:    map[string]controllers.Pinger{"database": stubPinger{err: io.ErrUnexpectedEOF}},
		AuthService:    stubAuthService{},
		OrdersService:  stubOrdersService{},
		PayoutService:  stubPayoutService{},
	})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
