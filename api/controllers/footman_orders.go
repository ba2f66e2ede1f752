package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/0uma0tieno/BLITZ/api/middleware"
	"github.com/0uma0tieno/BLITZ/api/responses"
	"github.com/0uma0tieno/BLITZ/api/validators"
	"github.com/0uma0tieno/BLITZ/internal/orders"
	"github.com/0uma0tieno/BLITZ/pkg/logger"
	"github.com/0uma0tieno/BLITZ/pkg/types"
)

type shareOrdersRequest struct {
	OrderIDs []uuid.UUID        `json:"order_ids" validate:"required,min=1,max=20"`
	Pickup   types.Confirmation `json:"pickup_confirmation" validate:"required"`
}

type confirmationRequest struct {
	Confirmation types.Confirmation `json:"confirmation" validate:"required"`
}

// FootmanQueue lists unclaimed orders, oldest first.
func FootmanQueue(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.FootmanQueue(r.Context(), middleware.UserIDFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// FootmanActiveOrders lists the orders currently assigned to the footman.
func FootmanActiveOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.AgentActiveOrders(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ClaimOrderByFootman races for an open order. A losing racer gets a normal
// response with applied=false, not an error.
func ClaimOrderByFootman(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ClaimByFootman(r.Context(), orders.ClaimInput{
			OrderID: orderID,
			AgentID: middleware.UserIDFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ShareOrders consolidates a batch of claimed orders into the rider pool.
func ShareOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req shareOrdersRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ShareWithRiders(r.Context(), orders.ShareInput{
			FootmanID: middleware.UserIDFromContext(r.Context()),
			OrderIDs:  req.OrderIDs,
			Pickup:    req.Pickup,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// DeliverOrderByFootman completes a claimed order locally.
func DeliverOrderByFootman(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req confirmationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.DeliverLocally(r.Context(), orders.ConfirmInput{
			OrderID:      orderID,
			AgentID:      middleware.UserIDFromContext(r.Context()),
			Confirmation: req.Confirmation,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
