package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/0uma0tieno/BLITZ/api/middleware"
	"github.com/0uma0tieno/BLITZ/internal/orders"
	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
	"github.com/0uma0tieno/BLITZ/pkg/logger"
	"github.com/0uma0tieno/BLITZ/pkg/pagination"
	"github.com/0uma0tieno/BLITZ/pkg/types"
)

type stubOrdersService struct {
	post        func(ctx context.Context, input orders.PostOrderInput) (*models.Order, error)
	claim       func(ctx context.Context, input orders.ClaimInput) (*orders.TransitionResult, error)
	share       func(ctx context.Context, input orders.ShareInput) (*orders.ShareResult, error)
	deliver     func(ctx context.Context, input orders.ConfirmInput) (*orders.TransitionResult, error)
	storeOrders func(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*orders.OrderList, error)
	queue       func(ctx context.Context, agentID uuid.UUID, params pagination.Params) (*orders.OrderList, error)
	active      func(ctx context.Context, agentID uuid.UUID) ([]models.Order, error)
}

func (s *stubOrdersService) Post(ctx context.Context, input orders.PostOrderInput) (*models.Order, error) {
	if s.post != nil {
		return s.post(ctx, input)
	}
	return &models.Order{ID: uuid.New()}, nil
}

func (s *stubOrdersService) ClaimByFootman(ctx context.Context, input orders.ClaimInput) (*orders.TransitionResult, error) {
	if s.claim != nil {
		return s.claim(ctx, input)
	}
	return &orders.TransitionResult{Applied: true}, nil
}

func (s *stubOrdersService) ShareWithRiders(ctx context.Context, input orders.ShareInput) (*orders.ShareResult, error) {
	if s.share != nil {
		return s.share(ctx, input)
	}
	return &orders.ShareResult{}, nil
}

func (s *stubOrdersService) DeliverLocally(ctx context.Context, input orders.ConfirmInput) (*orders.TransitionResult, error) {
	if s.deliver != nil {
		return s.deliver(ctx, input)
	}
	return &orders.TransitionResult{Applied: true}, nil
}

func (s *stubOrdersService) ClaimShared(ctx context.Context, input orders.ClaimInput) (*orders.TransitionResult, error) {
	if s.claim != nil {
		return s.claim(ctx, input)
	}
	return &orders.TransitionResult{Applied: true}, nil
}

func (s *stubOrdersService) ConfirmRiderPickup(ctx context.Context, input orders.ConfirmInput) (*orders.TransitionResult, error) {
	if s.deliver != nil {
		return s.deliver(ctx, input)
	}
	return &orders.TransitionResult{Applied: true}, nil
}

func (s *stubOrdersService) DeliverByRider(ctx context.Context, input orders.ConfirmInput) (*orders.TransitionResult, error) {
	if s.deliver != nil {
		return s.deliver(ctx, input)
	}
	return &orders.TransitionResult{Applied: true}, nil
}

func (s *stubOrdersService) StoreOrders(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*orders.OrderList, error) {
	if s.storeOrders != nil {
		return s.storeOrders(ctx, storeID, params)
	}
	return &orders.OrderList{}, nil
}

func (s *stubOrdersService) FootmanQueue(ctx context.Context, footmanID uuid.UUID, params pagination.Params) (*orders.OrderList, error) {
	if s.queue != nil {
		return s.queue(ctx, footmanID, params)
	}
	return &orders.OrderList{}, nil
}

func (s *stubOrdersService) RiderQueue(ctx context.Context, riderID uuid.UUID, params pagination.Params) (*orders.OrderList, error) {
	if s.queue != nil {
		return s.queue(ctx, riderID, params)
	}
	return &orders.OrderList{}, nil
}

func (s *stubOrdersService) AgentActiveOrders(ctx context.Context, agentID uuid.UUID) ([]models.Order, error) {
	if s.active != nil {
		return s.active(ctx, agentID)
	}
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "controllers-test", Output: io.Discard})
}

func identityRequest(method, target, body string, userID uuid.UUID, role enums.UserRole) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithIdentity(req.Context(), userID, role, "access-id"))
}

func TestPostOrderCreated(t *testing.T) {
	storeID := uuid.New()
	var captured orders.PostOrderInput
	svc := &stubOrdersService{
		post: func(_ context.Context, input orders.PostOrderInput) (*models.Order, error) {
			captured = input
			return &models.Order{
				ID:             uuid.New(),
				StoreID:        input.StoreID,
				Status:         enums.OrderStatusPendingPickup,
				CalculatedCost: decimal.RequireFromString("297.50"),
				Payout:         decimal.RequireFromString("208.25"),
			}, nil
		},
	}

	body := `{"description":"two crates of soda","destination":"Kasarani stage","urgency":"normal","distance_km":"10"}`
	req := identityRequest(http.MethodPost, "/store/orders", body, storeID, enums.UserRoleStore)
	rec := httptest.NewRecorder()
	PostOrder(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, storeID, captured.StoreID)
	require.Equal(t, enums.OrderUrgencyNormal, captured.Urgency)

	var envelope struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, enums.OrderStatusPendingPickup, envelope.Data.Status)
}

func TestPostOrderRejectsUnknownUrgency(t *testing.T) {
	req := identityRequest(http.MethodPost, "/store/orders",
		`{"description":"crate","destination":"stage","urgency":"yesterday"}`,
		uuid.New(), enums.UserRoleStore)
	rec := httptest.NewRecorder()
	PostOrder(&stubOrdersService{}, testLogger())(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestListStoreOrdersPassesPagination(t *testing.T) {
	storeID := uuid.New()
	var gotParams pagination.Params
	svc := &stubOrdersService{
		storeOrders: func(_ context.Context, id uuid.UUID, params pagination.Params) (*orders.OrderList, error) {
			require.Equal(t, storeID, id)
			gotParams = params
			return &orders.OrderList{NextCursor: "abc"}, nil
		},
	}

	req := identityRequest(http.MethodGet, "/store/orders?limit=5&cursor=xyz", "", storeID, enums.UserRoleStore)
	rec := httptest.NewRecorder()
	ListStoreOrders(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 5, gotParams.Limit)
	require.Equal(t, "xyz", gotParams.Cursor)
}

func TestClaimOrderByFootmanLosingRace(t *testing.T) {
	footmanID := uuid.New()
	orderID := uuid.New()
	svc := &stubOrdersService{
		claim: func(_ context.Context, input orders.ClaimInput) (*orders.TransitionResult, error) {
			require.Equal(t, orderID, input.OrderID)
			require.Equal(t, footmanID, input.AgentID)
			return &orders.TransitionResult{Applied: false, Order: &models.Order{ID: orderID}}, nil
		},
	}

	router := chi.NewRouter()
	router.Post("/footman/orders/{orderId}/claim", ClaimOrderByFootman(svc, testLogger()))

	req := identityRequest(http.MethodPost, "/footman/orders/"+orderID.String()+"/claim", "", footmanID, enums.UserRoleFootman)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data orders.TransitionResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.False(t, envelope.Data.Applied)
}

func TestClaimOrderByFootmanBadUUID(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/footman/orders/{orderId}/claim", ClaimOrderByFootman(&stubOrdersService{}, testLogger()))

	req := identityRequest(http.MethodPost, "/footman/orders/not-a-uuid/claim", "", uuid.New(), enums.UserRoleFootman)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareOrdersForwardsBatch(t *testing.T) {
	footmanID := uuid.New()
	first := uuid.New()
	second := uuid.New()
	var captured orders.ShareInput
	svc := &stubOrdersService{
		share: func(_ context.Context, input orders.ShareInput) (*orders.ShareResult, error) {
			captured = input
			return &orders.ShareResult{AppliedOrderIDs: []uuid.UUID{first}, SkippedOrderIDs: []uuid.UUID{second}}, nil
		},
	}

	pickup, err := json.Marshal(types.Confirmation{
		Timestamp:   time.Now().UTC(),
		Method:      enums.ConfirmationMethodPhotoMessage,
		ConfirmedBy: footmanID,
	})
	require.NoError(t, err)
	body := `{"order_ids":["` + first.String() + `","` + second.String() + `"],"pickup_confirmation":` + string(pickup) + `}`

	req := identityRequest(http.MethodPost, "/footman/orders/share", body, footmanID, enums.UserRoleFootman)
	rec := httptest.NewRecorder()
	ShareOrders(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, footmanID, captured.FootmanID)
	require.Len(t, captured.OrderIDs, 2)

	var envelope struct {
		Data orders.ShareResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, []uuid.UUID{first}, envelope.Data.AppliedOrderIDs)
	require.Equal(t, []uuid.UUID{second}, envelope.Data.SkippedOrderIDs)
}

func TestShareOrdersRejectsEmptyBatch(t *testing.T) {
	body := `{"order_ids":[],"pickup_confirmation":{"timestamp":"2026-01-02T10:00:00Z","method":"photo_message","confirmedBy":"` + uuid.NewString() + `"}}`
	req := identityRequest(http.MethodPost, "/footman/orders/share", body, uuid.New(), enums.UserRoleFootman)
	rec := httptest.NewRecorder()
	ShareOrders(&stubOrdersService{}, testLogger())(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeliverOrderByRider(t *testing.T) {
	riderID := uuid.New()
	orderID := uuid.New()
	var captured orders.ConfirmInput
	svc := &stubOrdersService{
		deliver: func(_ context.Context, input orders.ConfirmInput) (*orders.TransitionResult, error) {
			captured = input
			return &orders.TransitionResult{Applied: true, Order: &models.Order{ID: input.OrderID, Status: enums.OrderStatusDelivered}}, nil
		},
	}

	confirmation, err := json.Marshal(types.Confirmation{
		Timestamp:   time.Now().UTC(),
		Method:      enums.ConfirmationMethodSignatureCheckbox,
		ConfirmedBy: riderID,
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Post("/rider/orders/{orderId}/deliver", DeliverOrderByRider(svc, testLogger()))

	req := identityRequest(http.MethodPost, "/rider/orders/"+orderID.String()+"/deliver",
		`{"confirmation":`+string(confirmation)+`}`, riderID, enums.UserRoleRider)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, orderID, captured.OrderID)
	require.Equal(t, riderID, captured.AgentID)
	require.Equal(t, enums.ConfirmationMethodSignatureCheckbox, captured.Confirmation.Method)
}

func TestFootmanQueueUsesCallerIdentity(t *testing.T) {
	footmanID := uuid.New()
	svc := &stubOrdersService{
		queue: func(_ context.Context, agentID uuid.UUID, _ pagination.Params) (*orders.OrderList, error) {
			require.Equal(t, footmanID, agentID)
			return &orders.OrderList{Orders: []models.Order{{ID: uuid.New()}}}, nil
		},
	}

	req := identityRequest(http.MethodGet, "/footman/orders/queue", "", footmanID, enums.UserRoleFootman)
	rec := httptest.NewRecorder()
	FootmanQueue(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
