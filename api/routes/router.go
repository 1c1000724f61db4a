package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/urbanthreads-backend/api/controllers"
	"github.com/angelmondragon/urbanthreads-backend/api/middleware"
	"github.com/angelmondragon/urbanthreads-backend/internal/auth"
	"github.com/angelmondragon/urbanthreads-backend/internal/cart"
	"github.com/angelmondragon/urbanthreads-backend/internal/categories"
	"github.com/angelmondragon/urbanthreads-backend/internal/invoices"
	"github.com/angelmondragon/urbanthreads-backend/internal/orders"
	product "github.com/angelmondragon/urbanthreads-backend/internal/products"
	"github.com/angelmondragon/urbanthreads-backend/internal/wishlist"
	"github.com/angelmondragon/urbanthreads-backend/pkg/auth/session"
	"github.com/angelmondragon/urbanthreads-backend/pkg/config"
	"github.com/angelmondragon/urbanthreads-backend/pkg/enums"
	"github.com/angelmondragon/urbanthreads-backend/pkg/logger"
	"github.com/angelmondragon/urbanthreads-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/urbanthreads-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers. Nil services
// produce a 500 from their handlers rather than a panic.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB    controllers.Pinger
	Redis controllers.Pinger

	Sessions    session.AccessSessionChecker
	RateLimiter pkgredis.RateLimiter
	Idempotency pkgredis.IdempotencyStore

	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics

	Auth       auth.Service
	Categories categories.Service
	Products   product.Service
	Cart       cart.Service
	Wishlist   wishlist.Service
	Placement  orders.PlacementService
	Orders     orders.QueryService
	Invoices   invoices.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	requireAuth := middleware.Auth(cfg.JWT, d.Sessions, logg)
	productManager := middleware.RequireRole(logg, enums.UserRoleProductManager)

	r.Get("/api/health", controllers.Health(cfg, logg, d.DB, d.Redis))
	if cfg.Metrics.Enabled && d.Gatherer != nil {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, d.RateLimiter, logg)).Post("/register", controllers.AuthRegister(d.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.RateLimiter, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		r.With(requireAuth).Post("/logout", controllers.AuthLogout(d.Auth, logg))
	})

	r.Get("/api/categories", controllers.ListCategories(d.Categories, logg))

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(d.Products, logg))
		r.Get("/{productId}", controllers.GetProduct(d.Products, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, productManager)
			r.Post("/", controllers.CreateProduct(d.Products, logg))
			r.Put("/{productId}", controllers.UpdateProduct(d.Products, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(d.Products, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(d.Products, logg))
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.With(productManager).Get("/api/admin/products/export", controllers.ExportProducts(d.Products, logg))

		r.Route("/api/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(d.Cart, logg))
			r.Post("/items", controllers.AddCartItem(d.Cart, logg))
			r.Put("/items/{itemId}", controllers.UpdateCartItem(d.Cart, logg))
			r.Delete("/items/{itemId}", controllers.RemoveCartItem(d.Cart, logg))
		})

		r.Route("/api/wishlist", func(r chi.Router) {
			r.Get("/", controllers.GetWishlist(d.Wishlist, logg))
			r.Post("/items", controllers.AddWishlistItem(d.Wishlist, logg))
			r.Delete("/items/{itemId}", controllers.RemoveWishlistItem(d.Wishlist, logg))
			r.Post("/items/{itemId}/move-to-cart", controllers.MoveWishlistItemToCart(d.Wishlist, logg))
		})

		r.Route("/api/orders", func(r chi.Router) {
			r.With(middleware.Idempotency(d.Idempotency, cfg.Idempotency.TTL, logg)).Post("/", controllers.PlaceOrder(d.Placement, logg))
			r.Get("/", controllers.ListOrders(d.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(d.Orders, logg))
		})

		r.Route("/api/invoices/{orderId}", func(r chi.Router) {
			r.Post("/generate", controllers.GenerateInvoice(d.Invoices, logg))
			r.Get("/download", controllers.DownloadInvoice(d.Invoices, logg))
		})
	})

	return r
}
