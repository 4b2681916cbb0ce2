// Package api exposes the storefront and the admin console over JSON HTTP.
package api

import (
	"net/http"
	"time"

	"shopyz-be/internal/admin"
	"shopyz-be/internal/checkout"
	"shopyz-be/internal/comment"
	"shopyz-be/internal/logger"
	"shopyz-be/internal/metrics"
	"shopyz-be/internal/middleware"
	"shopyz-be/internal/order"
	"shopyz-be/internal/product"
	"shopyz-be/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	maxJSONBody   = 1 << 20
	maxUploadBody = 32 << 20
)

// Deps are the services the handlers call.
type Deps struct {
	Catalog  product.Catalog
	Comments comment.Service
	Orders   order.Service
	Checkout checkout.Service
	Gate     *admin.Gate
	Console  admin.Console
	Sessions *middleware.Sessions
	Limiter  *middleware.Limiter
	Metrics  *metrics.Registry

	CORSOrigins []string
}

type handler struct {
	Deps
	started time.Time
}

func NewRouter(deps Deps) http.Handler {
	if deps.Metrics == nil {
		deps.Metrics = metrics.Default
	}
	h := &handler{Deps: deps, started: time.Now()}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Device-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Use(deps.Sessions.Middleware)
		r.Use(deps.Limiter.Middleware)

		r.Get("/home", h.home)
		r.Get("/catalog", h.catalog)
		r.Get("/products/{id}", h.product)
		r.Get("/products/{id}/comments", h.comments)
		r.Post("/products/{id}/comments", h.postComment)

		r.Get("/cart", h.cart)
		r.Post("/cart", h.addToCart)
		r.Delete("/cart", h.clearCart)
		r.Delete("/cart/{index}", h.removeFromCart)

		r.Get("/wishlist", h.wishlist)
		r.Post("/wishlist/{id}", h.toggleWishlist)

		r.Post("/lang", h.toggleLang)
		r.Get("/session", h.sessionInfo)

		r.Get("/regions", h.regions)
		r.Get("/regions/{code}/communes", h.communes)

		r.Get("/checkout/quote", h.quote)
		r.Post("/checkout", h.submitCheckout)
		r.Get("/track", h.track)

		r.Post("/admin/login", h.login)
		r.Post("/admin/logout", h.logout)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/admin/products", h.adminProducts)
			r.Post("/admin/products", h.createProduct)
			r.Delete("/admin/products/{id}", h.deleteProduct)
			r.Post("/admin/products/bulk", h.bulkUpdate)
			r.Post("/admin/seed", h.seed)
			r.Post("/admin/images", h.uploadImages)
			r.Get("/admin/orders", h.adminOrders)
			r.Get("/admin/orders.csv", h.exportOrders)
			r.Get("/admin/stats", h.stats)
		})
	})

	return r
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := session.FromContext(r.Context())
		if err == nil {
			err = admin.Require(sess)
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"metrics": h.Metrics.Snapshot(),
	})
}

// state returns the request's session. The session middleware guarantees one on
// every /api route.
func state(r *http.Request) *session.State {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		panic(err)
	}
	return sess
}
