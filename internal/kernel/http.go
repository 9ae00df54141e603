// Package kernel assembles the service's HTTP handler: global middleware,
// operational endpoints and the versioned API.
package kernel

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/shopservice/app/controllers"
	"github.com/shashiranjanraj/shopservice/app/repositories"
	"github.com/shashiranjanraj/shopservice/app/routes"
	"github.com/shashiranjanraj/shopservice/app/services"
	"github.com/shashiranjanraj/shopservice/pkg/database"
	"github.com/shashiranjanraj/shopservice/pkg/metrics"
	"github.com/shashiranjanraj/shopservice/pkg/middleware"
	"github.com/shashiranjanraj/shopservice/pkg/orm"
	"github.com/shashiranjanraj/shopservice/pkg/reqid"
	"github.com/shashiranjanraj/shopservice/pkg/response"
	"github.com/shashiranjanraj/shopservice/pkg/router"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options carries what the kernel needs. DB may be nil when the kernel is
// only built to list routes.
type Options struct {
	DB                 *orm.DB
	Cache              Pinger
	AllowedOrigins     []string
	RateLimitPerMinute int
}

type HTTPKernel struct {
	router  *router.Router
	opts    Options
	limiter *middleware.RateLimiter
}

func NewHTTPKernel(opts Options) *HTTPKernel {
	k := &HTTPKernel{router: router.New(), opts: opts}
	r := k.router

	// Outermost first: metrics see total latency, the request id exists
	// before anything logs, and Recovery logs through the request logger.
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.RateLimitPerMinute > 0 {
		k.limiter = middleware.NewRateLimiter(opts.RateLimitPerMinute, time.Minute)
		r.Use(k.limiter.Handler)
	}

	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	r.Get("/health", "health", k.health)
	r.Get("/metrics", "metrics", metrics.Handler())

	shopRepo := repositories.NewShopRepository(opts.DB)
	productRepo := repositories.NewProductRepository(opts.DB, shopRepo)
	shopController := controllers.NewShopController(
		services.NewShopService(shopRepo),
		services.NewProductService(shopRepo, productRepo),
	)
	routes.RegisterAPI(r, shopController)

	return k
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Routes() []router.RouteInfo { return k.router.Routes() }

// Close stops background work started by the middleware.
func (k *HTTPKernel) Close() {
	if k.limiter != nil {
		k.limiter.Stop()
	}
}

type healthBody struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// health answers 503 when the database is unreachable. A down cache only
// degrades the service.
func (k *HTTPKernel) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	body := healthBody{Status: "ok", Database: "up", Cache: "disabled"}
	status := http.StatusOK

	var gdb *gorm.DB
	if k.opts.DB != nil {
		gdb = k.opts.DB.Gorm()
	}
	if gdb == nil {
		body.Status, body.Database = "unavailable", "not configured"
		status = http.StatusServiceUnavailable
	} else if err := database.Ping(ctx, gdb); err != nil {
		body.Status, body.Database = "unavailable", "down"
		status = http.StatusServiceUnavailable
	}

	if k.opts.Cache != nil {
		body.Cache = "up"
		if err := k.opts.Cache.Ping(ctx); err != nil {
			body.Cache = "down"
			if status == http.StatusOK {
				body.Status = "degraded"
			}
		}
	}

	response.JSON(w, status, body)
}
