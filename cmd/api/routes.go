package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"booking-platform/internal/auth"
	"booking-platform/internal/httpapi"
	"booking-platform/internal/metrics"
	"booking-platform/internal/ratelimit"
	"booking-platform/internal/rbac"
	"booking-platform/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type routerDeps struct {
	Log         *slog.Logger
	Handlers    httpapi.Handlers
	Health      httpapi.Health
	Limiter     *ratelimit.Limiter
	Metrics     *metrics.Collectors
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
}

// newPolicy is the role table for every gated route. Routes that only need a
// signed-in user are not listed.
func newPolicy() *rbac.Policy {
	owner := rbac.RoleBusinessOwner
	return rbac.NewPolicy().
		Require(http.MethodGet, "/user/all-users", rbac.RoleAdmin).
		Require(http.MethodGet, "/user/dashboard", rbac.RoleAdmin, owner).
		Require(http.MethodGet, "/user/bookings", rbac.RoleAdmin, owner, rbac.RoleStaff).
		Require(http.MethodPost, "/business/create", owner).
		Require(http.MethodPatch, "/business/edit", owner).
		Require(http.MethodGet, "/business/profile", owner).
		Require(http.MethodPost, "/business/staff/invite", owner).
		Require(http.MethodGet, "/business/staffs", owner).
		Require(http.MethodPatch, "/business/staff/:staffId", owner).
		Require(http.MethodDelete, "/business/staff/:staffId", owner).
		Require(http.MethodPost, "/service", owner).
		Require(http.MethodPatch, "/service/:id", owner).
		Require(http.MethodPatch, "/service/:id/toggle", owner).
		Require(http.MethodDelete, "/service/:id", owner)
}

// newRouter wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func newRouter(d routerDeps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(d.Log))
	r.Use(d.Metrics.Middleware())
	r.Use(httpapi.CORS(d.CORSOrigins))

	// probes and scraping are not throttled
	r.GET("/healthz", d.Health.Live)
	r.GET("/readyz", d.Health.Ready)
	r.GET("/metrics", gin.WrapH(metrics.Handler(d.Gatherer)))

	h := d.Handlers
	policy := newPolicy()
	authMW := auth.RequireAccessToken(h.Auth.Tokens(), h.Auth.Resolver())
	gate := rbac.Gate(policy)

	api := r.Group("")
	api.Use(d.Limiter.Middleware(ratelimit.Global))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", d.Limiter.Middleware(ratelimit.Register), h.Register)
		authGroup.POST("/login", d.Limiter.Middleware(ratelimit.Login), h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", authMW, h.Logout)
	}

	user := api.Group("/user", authMW, gate)
	{
		user.GET("/profile", h.GetProfile)
		user.PATCH("/profile", h.UpdateProfile)
		user.GET("/all-users", h.ListUsers)
		user.GET("/dashboard", h.Dashboard)
		user.GET("/bookings", h.Bookings)
	}

	biz := api.Group("/business", authMW, gate)
	{
		biz.POST("/create", h.CreateBusiness)
		biz.PATCH("/edit", h.UpdateBusiness)
		biz.GET("/profile", h.BusinessProfile)
		biz.POST("/staff/invite", h.InviteStaff)
		biz.GET("/staffs", h.ListStaff)
		biz.PATCH("/staff/:staffId", h.UpdateStaff)
		biz.DELETE("/staff/:staffId", h.RemoveStaff)
	}

	svc := api.Group("/service")
	{
		svc.GET("/all", h.ListServices)
		svc.GET("/business/:businessId", h.ServicesByBusiness)
		svc.GET("/staff/:staffId", h.ServicesByStaff)
		svc.GET("/:id", h.GetService)

		owned := svc.Group("", authMW, gate)
		owned.POST("", h.CreateService)
		owned.PATCH("/:id", h.UpdateService)
		owned.PATCH("/:id/toggle", h.ToggleService)
		owned.DELETE("/:id", h.RemoveService)
	}

	registered := make([]string, 0, len(r.Routes()))
	for _, ri := range r.Routes() {
		registered = append(registered, rbac.RouteKey(ri.Method, ri.Path))
	}
	if missing := policy.Unrouted(registered); len(missing) > 0 {
		return nil, fmt.Errorf("role policy names unregistered routes: %v", missing)
	}
	return r, nil
}
