package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/0uma0tieno/BLITZ/api/middleware"
	"github.com/0uma0tieno/BLITZ/api/responses"
	"github.com/0uma0tieno/BLITZ/internal/ranking"
	"github.com/0uma0tieno/BLITZ/pkg/db/models"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
	pkgerrors "github.com/0uma0tieno/BLITZ/pkg/errors"
	"github.com/0uma0tieno/BLITZ/pkg/logger"
)

type agentLister interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListAgentsByRole(ctx context.Context, role enums.UserRole) ([]models.User, error)
}

// Leaderboard ranks a role's cohort. Defaults to the caller's own role when
// the role query parameter is absent.
func Leaderboard(agents agentLister, bonusTopN int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := middleware.RoleFromContext(r.Context())
		if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
			parsed, err := enums.ParseUserRole(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "role"))
				return
			}
			role = parsed
		}
		if !role.IsAgent() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "role must be footman or rider"))
			return
		}

		cohort, err := loadCohort(r.Context(), agents, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cohort"))
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"role":        role,
			"leaderboard": ranking.Rank(cohort, bonusTopN),
		})
	}
}

func loadCohort(ctx context.Context, agents agentLister, role enums.UserRole) ([]ranking.AgentSnapshot, error) {
	rows, err := agents.ListAgentsByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	cohort := make([]ranking.AgentSnapshot, 0, len(rows))
	for _, row := range rows {
		cohort = append(cohort, ranking.SnapshotFromUser(row))
	}
	return cohort, nil
}
