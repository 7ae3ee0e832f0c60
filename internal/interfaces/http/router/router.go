package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// AdminRouteRegistrar registers routes under the admin-only group
type AdminRouteRegistrar interface {
	RegisterAdminRoutes(admin *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine          *gin.Engine
	apiVersion      string
	adminPrefix     string
	middleware      []gin.HandlerFunc
	adminMiddleware []gin.HandlerFunc
	registrars      []any
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithMiddleware adds middleware to the versioned API group
func WithMiddleware(middleware ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, middleware...)
	}
}

// WithAdminMiddleware adds middleware to the admin group only
func WithAdminMiddleware(middleware ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.adminMiddleware = append(r.adminMiddleware, middleware...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:      engine,
		apiVersion:  "v1",
		adminPrefix: "/admin",
		registrars:  make([]any, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar, AdminRouteRegistrar or both to be
// registered by Setup. Values implementing neither are ignored.
func (r *Router) Register(registrars ...any) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup registers all routes with the engine and returns the API group
func (r *Router) Setup() *gin.RouterGroup {
	api := r.engine.Group("/api/"+r.apiVersion, r.middleware...)
	admin := api.Group(r.adminPrefix, r.adminMiddleware...)

	for _, registrar := range r.registrars {
		if rr, ok := registrar.(RouteRegistrar); ok {
			rr.RegisterRoutes(api)
		}
		if ar, ok := registrar.(AdminRouteRegistrar); ok {
			ar.RegisterAdminRoutes(admin)
		}
	}

	return api
}
