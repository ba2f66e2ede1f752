package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/0uma0tieno/BLITZ/api/middleware"
	"github.com/0uma0tieno/BLITZ/api/responses"
	"github.com/0uma0tieno/BLITZ/api/validators"
	"github.com/0uma0tieno/BLITZ/internal/orders"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
	"github.com/0uma0tieno/BLITZ/pkg/logger"
)

type postOrderRequest struct {
	Description       string           `json:"description" validate:"required,min=3,max=500"`
	Destination       string           `json:"destination" validate:"required,min=3,max=250"`
	Urgency           string           `json:"urgency" validate:"required,oneof=normal urgent asap"`
	Weight            *string          `json:"weight,omitempty" validate:"omitempty,max=50"`
	IsFragile         bool             `json:"is_fragile"`
	DistanceKM        *decimal.Decimal `json:"distance_km,omitempty"`
	ItemPhotoFileName *string          `json:"item_photo_file_name,omitempty" validate:"omitempty,max=250"`
}

// PostOrder creates a new delivery order for the authenticated store.
func PostOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req postOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Post(r.Context(), orders.PostOrderInput{
			StoreID:           middleware.UserIDFromContext(r.Context()),
			Description:       req.Description,
			Destination:       req.Destination,
			Urgency:           enums.OrderUrgency(req.Urgency),
			Weight:            req.Weight,
			IsFragile:         req.IsFragile,
			DistanceKM:        req.DistanceKM,
			ItemPhotoFileName: req.ItemPhotoFileName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListStoreOrders pages through every order the store has posted.
func ListStoreOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.StoreOrders(r.Context(), middleware.UserIDFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
