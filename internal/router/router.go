// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps route groups to their handlers.
package router

import (
	"net/http"

	"github.com/deppfellow/assignment-api/internal/handler"
	"github.com/deppfellow/assignment-api/internal/middleware"
	"github.com/deppfellow/assignment-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the global middleware chain and
// every route.
//
// Order matters: the request id must exist before the New Relic and context
// middleware read it, and the request logger must see the enhanced logger.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mws := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	router.Use(
		mws.Global.CORS(),
		mws.Global.Secure(),
		middleware.RequestID(),
		mws.Tracing.NewRelicMiddleware(),
		mws.Tracing.EnhanceTracing(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Global.RequestLogger(),
		mws.Global.Recover(),
	)

	if mws.RateLimit.Enabled() {
		router.Use(mws.RateLimit.Limit())
	}

	registerSystemRoutes(router, h)
	registerAssignmentRoutes(router, h)

	return router
}

func registerAssignmentRoutes(r *echo.Echo, h *handler.Handlers) {
	base := h.Assignment.Handler
	assignments := r.Group("/assignments")

	assignments.GET("", handler.Handle(base, h.Assignment.List, http.StatusOK, &handler.ListAssignmentsRequest{}))
	assignments.GET("/:id", handler.Handle(base, h.Assignment.Get, http.StatusOK, &handler.AssignmentIDRequest{}))
	assignments.POST("", handler.Handle(base, h.Assignment.Create, http.StatusCreated, &handler.CreateAssignmentRequest{}))
	assignments.PUT("/:id", handler.Handle(base, h.Assignment.Update, http.StatusOK, &handler.UpdateAssignmentRequest{}))
	assignments.DELETE("/:id", handler.Handle(base, h.Assignment.Delete, http.StatusOK, &handler.AssignmentIDRequest{}))
}
