// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups, mapping
// specific paths to their corresponding handlers.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shieldsupport/backend/internal/handler"
	"github.com/shieldsupport/backend/internal/middleware"
)

// New builds the Echo instance with the full middleware chain and all API
// routes registered.
func New(h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// Order matters: the request id must exist before the context logger is
	// built, and the New Relic transaction must exist before tracing
	// attributes are attached.
	e.Use(m.Global.Recover())
	e.Use(middleware.RequestID())
	e.Use(m.Tracing.NewRelicMiddleware())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Tracing.EnhanceTracing())
	e.Use(m.Global.CORS())
	e.Use(m.Global.Secure())
	e.Use(m.Global.RequestLogger())

	registerSystemRoutes(e, h)
	registerAPIRoutes(e, h, m)

	return e
}

func registerAPIRoutes(e *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	api := e.Group("/api")

	requireAuth := m.Auth.RequireAuth()
	requireAdmin := m.Auth.RequireAdmin()
	optionalAuth := m.Auth.OptionalAuth()

	// Public write endpoints get a per-IP throttle.
	publicLimit := m.RateLimit.Limit(1, 5)

	auth := api.Group("/auth")
	auth.POST("/login", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK))
	auth.POST("/signup", handler.Handle(h.Auth.Handler, h.Auth.Signup, http.StatusForbidden))
	auth.GET("/me", handler.Handle(h.Auth.Handler, h.Auth.Me, http.StatusOK), requireAuth)

	meetings := api.Group("/meetings")
	meetings.POST("", handler.Handle(h.Meeting.Handler, h.Meeting.Create, http.StatusCreated), publicLimit)
	meetings.GET("", handler.Handle(h.Meeting.Handler, h.Meeting.List, http.StatusOK), requireAdmin)
	meetings.PUT("/:id", handler.Handle(h.Meeting.Handler, h.Meeting.Update, http.StatusOK), requireAdmin)
	meetings.DELETE("/:id", handler.HandleNoContent(h.Meeting.Handler, h.Meeting.Delete, http.StatusNoContent), requireAdmin)

	blogs := api.Group("/blogs")
	blogs.GET("", handler.Handle(h.Blog.Handler, h.Blog.List, http.StatusOK))
	blogs.GET("/:id", handler.Handle(h.Blog.Handler, h.Blog.Get, http.StatusOK))
	blogs.POST("", handler.Handle(h.Blog.Handler, h.Blog.Create, http.StatusCreated), requireAdmin)
	blogs.PUT("/:id", handler.Handle(h.Blog.Handler, h.Blog.Update, http.StatusOK), requireAdmin)
	blogs.DELETE("/:id", handler.HandleNoContent(h.Blog.Handler, h.Blog.Delete, http.StatusNoContent), requireAdmin)

	careers := api.Group("/careers")
	careers.GET("", handler.Handle(h.Career.Handler, h.Career.List, http.StatusOK), optionalAuth)
	careers.GET("/:id", handler.Handle(h.Career.Handler, h.Career.Get, http.StatusOK), optionalAuth)
	careers.POST("", handler.Handle(h.Career.Handler, h.Career.Create, http.StatusCreated), requireAdmin)
	careers.PUT("/:id", handler.Handle(h.Career.Handler, h.Career.Update, http.StatusOK), requireAdmin)
	careers.DELETE("/:id", handler.HandleNoContent(h.Career.Handler, h.Career.Delete, http.StatusNoContent), requireAdmin)
	careers.POST("/apply", handler.Handle(h.Career.Handler, h.Career.Apply, http.StatusOK), publicLimit)

	messages := api.Group("/messages")
	messages.POST("", handler.Handle(h.Message.Handler, h.Message.Create, http.StatusCreated), publicLimit)
	messages.GET("", handler.Handle(h.Message.Handler, h.Message.List, http.StatusOK), requireAdmin)
	messages.DELETE("/:id", handler.HandleNoContent(h.Message.Handler, h.Message.Delete, http.StatusNoContent), requireAdmin)

	subscribers := api.Group("/subscribers")
	subscribers.POST("", handler.Handle(h.Subscriber.Handler, h.Subscriber.Subscribe, http.StatusCreated), publicLimit)
	subscribers.GET("", handler.Handle(h.Subscriber.Handler, h.Subscriber.List, http.StatusOK), requireAdmin)
	subscribers.DELETE("/:id", handler.HandleNoContent(h.Subscriber.Handler, h.Subscriber.Delete, http.StatusNoContent), requireAdmin)

	tickets := api.Group("/tickets", requireAuth)
	tickets.POST("", handler.Handle(h.Ticket.Handler, h.Ticket.Create, http.StatusCreated))
	tickets.GET("", handler.Handle(h.Ticket.Handler, h.Ticket.List, http.StatusOK))
	tickets.GET("/all", handler.Handle(h.Ticket.Handler, h.Ticket.ListAll, http.StatusOK), requireAdmin)
	tickets.PUT("/:id", handler.Handle(h.Ticket.Handler, h.Ticket.Update, http.StatusOK), requireAdmin)

	payments := api.Group("/payments", requireAuth)
	payments.POST("", handler.Handle(h.Payment.Handler, h.Payment.Create, http.StatusCreated))
	payments.GET("", handler.Handle(h.Payment.Handler, h.Payment.List, http.StatusOK))
	payments.GET("/all", handler.Handle(h.Payment.Handler, h.Payment.ListAll, http.StatusOK), requireAdmin)

	users := api.Group("/users")
	users.GET("", handler.Handle(h.User.Handler, h.User.List, http.StatusOK), requireAdmin)
	users.GET("/stats", handler.Handle(h.User.Handler, h.User.Stats, http.StatusOK), requireAdmin)
	users.GET("/:id", handler.Handle(h.User.Handler, h.User.Get, http.StatusOK), requireAuth)
	users.POST("", handler.Handle(h.User.Handler, h.User.Create, http.StatusCreated), requireAdmin)
	users.PUT("/:id", handler.Handle(h.User.Handler, h.User.Update, http.StatusOK), requireAuth)
	users.DELETE("/:id", handler.HandleNoContent(h.User.Handler, h.User.Delete, http.StatusNoContent), requireAdmin)
}
