package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderlust-backend/internal/core"
	"wanderlust-backend/internal/middleware"
	"wanderlust-backend/internal/models"
)

// Access says whether a route requires a verified Firebase ID token.
type Access int

const (
	Public Access = iota
	Authenticated
)

func (a Access) String() string {
	if a == Authenticated {
		return "authenticated"
	}
	return "public"
}

// Route is one entry of the route table.
type Route struct {
	Method  string
	Path    string
	Access  Access
	Handler gin.HandlerFunc
}

// Handlers groups the HTTP handlers of every resource.
type Handlers struct {
	Users          *UserHandler
	Roles          *RoleHandler
	TravelServices *ResourceHandler[models.Service]
	Packages       *ResourceHandler[models.Document]
	Blogs          *ResourceHandler[models.Blog]
	Guides         *ResourceHandler[models.Guide]
	Bookings       *ResourceHandler[models.Document]
	Payments       *ResourceHandler[models.Document]
}

// NewHandlers builds the handlers on top of services.
func NewHandlers(services *core.Services, logger *zap.Logger) *Handlers {
	return &Handlers{
		Users:          NewUserHandler(services.Users, logger),
		Roles:          NewRoleHandler(services.Roles, logger),
		TravelServices: NewResourceHandler(services.TravelServices, "Service", logger),
		Packages:       NewResourceHandler(services.Packages, "Package", logger),
		Blogs:          NewResourceHandler(services.Blogs, "Blog", logger),
		Guides:         NewResourceHandler(services.Guides, "Guide", logger),
		Bookings:       NewResourceHandler(services.Bookings, "Booking", logger),
		Payments:       NewResourceHandler(services.Payments, "Payment", logger),
	}
}

// Routes returns the complete route table. Each entry declares its own
// Access, and RegisterRoutes attaches the token check from it.
func Routes(h *Handlers) []Route {
	return []Route{
		{http.MethodGet, "/", Public, hello},

		// Users
		{http.MethodGet, "/user-exists", Public, h.Users.Exists},
		{http.MethodPost, "/check-role", Authenticated, h.Users.CheckRole},
		{http.MethodPost, "/adduser", Public, h.Users.Create},
		{http.MethodGet, "/adduser", Public, h.Users.List},
		{http.MethodGet, "/adduser/:id", Public, h.Users.Get},
		{http.MethodPatch, "/adduser/:id", Public, h.Users.Update},
		{http.MethodPatch, "/updateRole/:id", Public, h.Users.UpdateRole},
		{http.MethodDelete, "/adduser/:id", Public, h.Users.Delete},
		{http.MethodGet, "/searchUsers", Public, h.Users.Search},

		// Roles
		{http.MethodPost, "/api/roles", Public, h.Roles.Create},
		{http.MethodGet, "/api/roles", Public, h.Roles.List},
		{http.MethodDelete, "/api/roles/:id", Public, h.Roles.Delete},

		// Services
		{http.MethodPost, "/api/services", Public, h.TravelServices.Create},
		{http.MethodGet, "/api/services", Public, h.TravelServices.List},
		{http.MethodDelete, "/api/services/:id", Public, h.TravelServices.Delete},

		// Packages
		{http.MethodPost, "/packageCollection", Public, h.Packages.Create},
		{http.MethodGet, "/api/packages", Public, h.Packages.List},
		{http.MethodGet, "/api/packages/:id", Public, h.Packages.Get},
		{http.MethodPatch, "/api/update/packages/:id", Public, h.Packages.Update},
		{http.MethodPut, "/api/packages/status/:id", Public, h.Packages.SetStatus},
		{http.MethodDelete, "/api/packages/:id", Public, h.Packages.Delete},
		{http.MethodGet, "/api/mypost", Authenticated, h.Packages.ListMine},

		// Blogs
		{http.MethodPost, "/api/blogs", Public, h.Blogs.Create},
		{http.MethodGet, "/api/blogs", Public, h.Blogs.List},
		{http.MethodGet, "/api/blog/:id", Public, h.Blogs.Get},
		{http.MethodPut, "/api/blog/status/:id", Public, h.Blogs.SetStatus},
		{http.MethodDelete, "/api/blog/:id", Public, h.Blogs.Delete},
		{http.MethodGet, "/api/myblog", Authenticated, h.Blogs.ListMine},

		// Guides
		{http.MethodPost, "/api/guides", Public, h.Guides.Create},
		{http.MethodGet, "/api/guides", Public, h.Guides.List},
		{http.MethodPut, "/api/guide/status/:id", Public, h.Guides.SetStatus},
		{http.MethodDelete, "/api/guide/:id", Public, h.Guides.Delete},
		{http.MethodGet, "/api/guide", Authenticated, h.Guides.ListMine},

		// Bookings and payments
		{http.MethodPost, "/api/bookings", Public, h.Bookings.Create},
		{http.MethodGet, "/api/mybooking", Authenticated, h.Bookings.ListMine},
		{http.MethodPost, "/api/payments", Public, h.Payments.Create},
		{http.MethodGet, "/api/mypayments", Authenticated, h.Payments.ListMine},
	}
}

// RegisterRoutes adds routes to router. auth runs before the handler of
// every Authenticated route.
func RegisterRoutes(router gin.IRoutes, routes []Route, auth gin.HandlerFunc) {
	for _, r := range routes {
		if r.Access == Authenticated {
			router.Handle(r.Method, r.Path, auth, r.Handler)
			continue
		}
		router.Handle(r.Method, r.Path, r.Handler)
	}
}

// SetupRoutes builds the handlers and registers the whole route table on
// router. It returns the table for startup logging.
func SetupRoutes(router gin.IRoutes, services *core.Services, verifier middleware.TokenVerifier, logger *zap.Logger) []Route {
	routes := Routes(NewHandlers(services, logger))
	auth := middleware.NewAuthMiddleware(verifier, logger).VerifyToken()
	RegisterRoutes(router, routes, auth)

	for _, r := range routes {
		logger.Debug("Route registered",
			zap.String("method", r.Method),
			zap.String("path", r.Path),
			zap.Stringer("access", r.Access))
	}
	logger.Info("API routes registered", zap.Int("count", len(routes)))
	return routes
}

func hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello World!")
}
