package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/0uma0tieno/BLITZ/api/controllers"
	"github.com/0uma0tieno/BLITZ/api/middleware"
	"github.com/0uma0tieno/BLITZ/internal/auth"
	"github.com/0uma0tieno/BLITZ/internal/ledger"
	"github.com/0uma0tieno/BLITZ/internal/orders"
	"github.com/0uma0tieno/BLITZ/internal/payouts"
	"github.com/0uma0tieno/BLITZ/internal/users"
	"github.com/0uma0tieno/BLITZ/pkg/auth/session"
	"github.com/0uma0tieno/BLITZ/pkg/config"
	"github.com/0uma0tieno/BLITZ/pkg/enums"
	"github.com/0uma0tieno/BLITZ/pkg/logger"
	"github.com/0uma0tieno/BLITZ/pkg/metrics"
	"github.com/0uma0tieno/BLITZ/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	HTTPMetrics    *metrics.HTTPMetrics
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	ReadyChecks    map[string]controllers.Pinger

	AuthService   auth.Service
	OrdersService orders.Service
	LedgerService ledger.Service
	PayoutService payouts.Service
	UsersRepo     *users.Repository
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginNameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterNameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.ReadyChecks))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/register", controllers.Register(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.Login(deps.AuthService, logg))
		r.Post("/refresh", controllers.Refresh(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.SessionChecker, logg)).
			Post("/logout", controllers.Logout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Route("/store/orders", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleStore, logg))
			r.Post("/", controllers.PostOrder(deps.OrdersService, logg))
			r.Get("/", controllers.ListStoreOrders(deps.OrdersService, logg))
		})

		r.Route("/footman/orders", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleFootman, logg))
			r.Get("/queue", controllers.FootmanQueue(deps.OrdersService, logg))
			r.Get("/", controllers.FootmanActiveOrders(deps.OrdersService, logg))
			r.Post("/{orderId}/claim", controllers.ClaimOrderByFootman(deps.OrdersService, logg))
			r.Post("/share", controllers.ShareOrders(deps.OrdersService, logg))
			r.Post("/{orderId}/deliver", controllers.DeliverOrderByFootman(deps.OrdersService, logg))
		})

		r.Route("/rider/orders", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleRider, logg))
			r.Get("/queue", controllers.RiderQueue(deps.OrdersService, logg))
			r.Get("/", controllers.RiderActiveOrders(deps.OrdersService, logg))
			r.Post("/{orderId}/claim", controllers.ClaimSharedOrder(deps.OrdersService, logg))
			r.Post("/{orderId}/pickup", controllers.ConfirmPickup(deps.OrdersService, logg))
			r.Post("/{orderId}/deliver", controllers.DeliverOrderByRider(deps.OrdersService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAgent(logg))
			r.Get("/leaderboard", controllers.Leaderboard(deps.UsersRepo, cfg.Rewards.BonusTopN, logg))
			r.Get("/earnings", controllers.Earnings(deps.UsersRepo, deps.LedgerService, cfg.Rewards.BonusTopN, logg))
			r.Post("/payouts", controllers.RequestPayout(deps.PayoutService, logg))
			r.Get("/payouts", controllers.ListPayouts(deps.PayoutService, logg))
		})
	})

	return r
}
