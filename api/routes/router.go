package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/juanfvasquez/pedidos-backend/api/controllers"
	"github.com/juanfvasquez/pedidos-backend/api/middleware"
	internalauth "github.com/juanfvasquez/pedidos-backend/internal/auth"
	"github.com/juanfvasquez/pedidos-backend/internal/grouporders"
	"github.com/juanfvasquez/pedidos-backend/internal/orderitems"
	"github.com/juanfvasquez/pedidos-backend/internal/products"
	"github.com/juanfvasquez/pedidos-backend/pkg/auth/session"
	"github.com/juanfvasquez/pedidos-backend/pkg/config"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
	"github.com/juanfvasquez/pedidos-backend/pkg/metrics"
	redisclient "github.com/juanfvasquez/pedidos-backend/pkg/redis"
)

// Dependencies carries everything the route tree needs. Sessions and
// Idempotency may be nil; the corresponding checks are then skipped.
type Dependencies struct {
	Config *config.Config
	Logger *logger.Logger

	AuthService       internalauth.Service
	ProductService    products.Service
	GroupOrderService grouporders.Service
	OrderItemService  orderitems.Service

	Sessions    session.Checker
	Idempotency redisclient.IdempotencyStore

	HealthDeps map[string]controllers.DependencyPinger
}

// New assembles the chi route tree.
func New(deps Dependencies) *chi.Mux {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(metrics.HTTP())

	requireAuth := middleware.Auth(cfg.JWT, cfg.Session, deps.Sessions, logg)
	optionalAuth := middleware.OptionalAuth(cfg.JWT, cfg.Session, deps.Sessions, logg)
	idempotency := middleware.Idempotency(deps.Idempotency, logg)

	r.Get("/health/live", controllers.Live())
	r.Get("/health/ready", controllers.Ready(logg, deps.HealthDeps))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(optionalAuth).Get("/oauth/callback", controllers.OAuthCallback(deps.AuthService, cfg.JWT, cfg.Session, logg))

		r.Route("/v1", func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				r.With(optionalAuth).Get("/me", controllers.Me(deps.AuthService, logg))
				r.With(requireAuth).Post("/logout", controllers.Logout(deps.AuthService, cfg.Session, logg))
				if !cfg.App.IsProd() {
					r.Post("/dev-login", controllers.DevLogin(deps.AuthService, cfg.JWT, cfg.Session, logg))
				}
			})

			r.Route("/products", func(r chi.Router) {
				r.With(optionalAuth).Get("/", controllers.ListProducts(deps.ProductService, logg))

				r.Group(func(r chi.Router) {
					r.Use(requireAuth, idempotency)
					r.Post("/", controllers.CreateProduct(deps.ProductService, logg))
					r.Patch("/{productId}", controllers.UpdateProduct(deps.ProductService, logg))
					r.Delete("/{productId}", controllers.DeleteProduct(deps.ProductService, logg))
				})
			})

			r.Route("/group-orders", func(r chi.Router) {
				r.With(optionalAuth).Get("/active", controllers.GetActiveGroupOrder(deps.GroupOrderService, logg))

				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					r.Get("/{groupOrderId}/consolidated", controllers.GetConsolidatedGroupOrder(deps.GroupOrderService, logg))
					r.Get("/{groupOrderId}/items/mine", controllers.MyOrderItems(deps.OrderItemService, logg))
					r.Get("/{groupOrderId}/my-total", controllers.MyOrderTotal(deps.OrderItemService, logg))

					r.Group(func(r chi.Router) {
						r.Use(idempotency)
						r.Post("/", controllers.CreateGroupOrder(deps.GroupOrderService, logg))
						r.Patch("/{groupOrderId}/delivery-cost", controllers.UpdateGroupOrderDeliveryCost(deps.GroupOrderService, logg))
						r.Post("/{groupOrderId}/close", controllers.CloseGroupOrder(deps.GroupOrderService, logg))
					})
				})
			})

			r.Route("/order-items", func(r chi.Router) {
				r.Use(requireAuth, idempotency)
				r.Post("/", controllers.AddOrderItem(deps.OrderItemService, logg))
				r.Patch("/{itemId}", controllers.UpdateOrderItem(deps.OrderItemService, logg))
				r.Delete("/{itemId}", controllers.DeleteOrderItem(deps.OrderItemService, logg))
			})
		})
	})

	return r
}
