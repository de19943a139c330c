package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/accounts"
	"resume-generator/internal/resumes"
	"resume-generator/internal/shared/config"
	"resume-generator/internal/shared/metrics"
	"resume-generator/internal/shared/server/middleware"
	"resume-generator/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config         config.Config
	AccountHandler *accounts.Handler
	ResumeHandler  *resumes.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.AccountHandler.RegisterAuthRoutes(api)

	authed := api.Group("", middleware.Auth(deps.Config.JWTSecret))

	admin := authed.Group("/admin", middleware.RequireRoles(string(accounts.RoleAdmin)))
	deps.AccountHandler.RegisterAdminRoutes(admin)

	dev := authed.Group("/dev", middleware.RequireRoles(string(accounts.RoleDeveloper)))
	deps.AccountHandler.RegisterDevRoutes(dev)
	deps.ResumeHandler.RegisterDevRoutes(dev)

	bidder := authed.Group("/bidder", middleware.RequireRoles(string(accounts.RoleBidder)))
	deps.ResumeHandler.RegisterBidderRoutes(bidder)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
