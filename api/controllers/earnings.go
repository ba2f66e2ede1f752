package controllers

import (
	"net/http"

	"github.com/0uma0tieno/BLITZ/api/middleware"
	"github.com/0uma0tieno/BLITZ/api/responses"
	"github.com/0uma0tieno/BLITZ/internal/ledger"
	"github.com/0uma0tieno/BLITZ/internal/ranking"
	pkgerrors "github.com/0uma0tieno/BLITZ/pkg/errors"
	"github.com/0uma0tieno/BLITZ/pkg/logger"
)

// Earnings returns the agent's statement plus the ledger entries behind it.
func Earnings(agents agentLister, ledgerSvc ledger.Service, bonusTopN int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agentID := middleware.UserIDFromContext(r.Context())
		role := middleware.RoleFromContext(r.Context())
		if !role.IsAgent() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "agent role required"))
			return
		}

		cohort, err := loadCohort(r.Context(), agents, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cohort"))
			return
		}
		statement := ranking.Statement(agentID, cohort, bonusTopN)

		entries, err := ledgerSvc.EntriesByAgent(r.Context(), agentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"statement": statement,
			"entries":   entries,
		})
	}
}
