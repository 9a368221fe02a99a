package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fandressouza/indicacoes/internal/http/handlers"
	"github.com/fandressouza/indicacoes/internal/http/middleware"
)

// Deps are the pieces the router is assembled from
type Deps struct {
	Auth     *handlers.AuthHandlers
	Listings *handlers.ListingHandlers
	Admin    *handlers.AdminHandlers
	Sessions *middleware.SessionMW
	Casbin   middleware.CasbinMiddleware
	Logger   *zap.Logger
	// UploadDir is served under /uploads when images are kept on local disk
	UploadDir string
}

func BuildRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger), middleware.Metrics())
	r.Use(d.Sessions.Resolve(), d.Casbin.Enforce())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	r.GET("/", d.Auth.Home)
	r.GET("/home", d.Auth.Home)
	r.GET("/login", d.Auth.LoginForm)
	r.POST("/login", d.Auth.Login)
	r.GET("/register", d.Auth.RegisterForm)
	r.POST("/register", d.Auth.Register)
	r.GET("/logout", d.Auth.Logout)
	r.GET("/profile", d.Auth.Profile)

	anyMethod(r, "/view", d.Listings.View)
	anyMethod(r, "/view/:category", d.Listings.View)
	anyMethod(r, "/advert/:id", d.Listings.Advert)
	r.GET("/add", d.Listings.AddForm)
	r.POST("/add", d.Listings.Add)

	anyMethod(r, "/admin", d.Admin.Queue)
	anyMethod(r, "/approve/:id", d.Admin.Approve)
	anyMethod(r, "/reject/:id", d.Admin.Reject)
	anyMethod(r, "/user/:id", d.Admin.User)
	r.POST("/user/:id/ban", d.Admin.Ban)

	r.NoRoute(handlers.NotFound)
	return r
}

// anyMethod registers h for GET and POST, as the form pages accept both
func anyMethod(r *gin.Engine, path string, h gin.HandlerFunc) {
	r.GET(path, h)
	r.POST(path, h)
}
