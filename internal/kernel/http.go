// Package kernel assembles the HTTP application: repositories, services,
// controllers, the global middleware stack and the routes.
package kernel

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/controllers"
	"github.com/shashiranjanraj/orderdesk/app/listeners"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/app/routes"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/cache"
	"github.com/shashiranjanraj/orderdesk/pkg/database"
	"github.com/shashiranjanraj/orderdesk/pkg/event"
	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
	"github.com/shashiranjanraj/orderdesk/pkg/middleware"
	"github.com/shashiranjanraj/orderdesk/pkg/reqid"
	"github.com/shashiranjanraj/orderdesk/pkg/response"
	"github.com/shashiranjanraj/orderdesk/pkg/router"
	"github.com/shashiranjanraj/orderdesk/pkg/session"
	"github.com/shashiranjanraj/orderdesk/pkg/storage"
)

// Deps are the long-lived resources the kernel serves from.
type Deps struct {
	DB       *gorm.DB
	Cache    *cache.Cache
	Sessions session.Store
	Disks    *storage.Manager
	Events   *event.Dispatcher
	// RateLimit caps credential requests per client per minute; <= 0 disables.
	RateLimit int
	// TrustProxy keys the limiter by X-Forwarded-For.
	TrustProxy bool
}

// DepsFromConfig fills the parts of Deps that need no I/O.
func DepsFromConfig(db *gorm.DB, c *cache.Cache, disks *storage.Manager) Deps {
	var store session.Store = session.NewMemoryStore()
	if config.SessionDriver() == "redis" && c.Enabled() {
		store = session.NewRedisStore(c.Client())
	}
	return Deps{
		DB:         db,
		Cache:      c,
		Sessions:   store,
		Disks:      disks,
		Events:     event.New(),
		RateLimit:  config.RateLimitPerMinute(),
		TrustProxy: config.TrustProxy(),
	}
}

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel wires everything and registers the routes.
func NewHTTPKernel(d Deps) (*HTTPKernel, error) {
	if d.Events == nil {
		d.Events = event.New()
	}
	listeners.Register(d.Events)

	users := repositories.NewUserRepository(d.DB)
	customers := repositories.NewCustomerRepository(d.DB)
	products := repositories.NewProductRepository(d.DB)
	orders := repositories.NewOrderRepository(d.DB)

	authSvc := services.NewAuthService(d.DB, users, d.Events)
	productSvc := services.NewProductService(products, d.Cache)
	customerSvc := services.NewCustomerService(customers, products, orders)
	orderSvc := services.NewOrderService(d.DB, customers, products, orders, d.Events)
	dashboardSvc := services.NewDashboardService(customers, orders)
	accountSvc := services.NewAccountService(customers, orders, d.Disks)

	gql, err := controllers.NewGraphQLController(productSvc, customerSvc, orderSvc, dashboardSvc)
	if err != nil {
		return nil, err
	}

	opts := session.DefaultOptions()
	opts.TTL = config.SessionTTL()
	opts.Secure = config.SessionSecure()

	r := router.New()

	// Outermost first: metrics see total latency, recovery guards the rest,
	// the request id exists before anything logs.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.NewManager(d.Sessions, opts).Middleware())
	r.Use(auth.Authenticate(authSvc))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", health(d.DB))
	if d.Disks != nil && d.Disks.DefaultName() == "local" {
		if local, ok := d.Disks.Local(); ok {
			r.Handle("/media/*", "media", http.StripPrefix("/media/", local.Handler()))
		}
	}

	var limiter *middleware.RateLimiter
	if d.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(d.RateLimit, time.Minute)
		limiter.TrustForwardedFor = d.TrustProxy
	}
	routes.RegisterWeb(r, routes.Controllers{
		Dashboard: controllers.NewDashboardController(dashboardSvc, accountSvc),
		Products:  controllers.NewProductController(productSvc),
		Customers: controllers.NewCustomerController(customerSvc, accountSvc),
		Orders:    controllers.NewOrderController(orderSvc, customerSvc, productSvc),
		Auth:      controllers.NewAuthController(authSvc),
		Account:   controllers.NewAccountController(accountSvc),
		GraphQL:   gql,
	}, limiter)

	return &HTTPKernel{router: r}, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router }

func (k *HTTPKernel) Router() *router.Router { return k.router }

func health(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(r.Context(), db); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}
