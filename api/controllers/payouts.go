package controllers

import (
	"net/http"

	"github.com/0uma0tieno/BLITZ/api/middleware"
	"github.com/0uma0tieno/BLITZ/api/responses"
	"github.com/0uma0tieno/BLITZ/api/validators"
	"github.com/0uma0tieno/BLITZ/internal/payouts"
	"github.com/0uma0tieno/BLITZ/pkg/logger"
)

type payoutRequest struct {
	MpesaPhone string `json:"mpesa_phone" validate:"required,min=10,max=12,numeric"`
}

// RequestPayout books a simulated M-Pesa payout of current net earnings.
func RequestPayout(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req payoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Request(r.Context(), payouts.RequestInput{
			AgentID:    middleware.UserIDFromContext(r.Context()),
			MpesaPhone: req.MpesaPhone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// ListPayouts returns the agent's previous payout requests.
func ListPayouts(svc payouts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListByAgent(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
