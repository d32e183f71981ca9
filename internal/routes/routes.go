package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan_market/internal/controllers"
	"artisan_market/internal/middleware"
)

// Handlers is everything the router mounts.
type Handlers struct {
	Gate      *middleware.Auth
	Auth      *controllers.AuthController
	Seller    *controllers.SellerController
	Product   *controllers.ProductController
	Order     *controllers.OrderController
	Delivery  *controllers.DeliveryController
	Resell    *controllers.ResellController
	Contact   *controllers.ContactController
	Admin     *controllers.AdminController
	Signaling *controllers.SignalingHub
}

type Options struct {
	CORSOrigins []string
	AssetsDir   string
	FrontendDir string
	// RequestLogger is mounted after recovery when set.
	RequestLogger gin.HandlerFunc
}

func SetupRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.RequestLogger != nil {
		r.Use(opts.RequestLogger)
	}
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	AuthRoutes(api, h)
	SellerRoutes(api, h)
	ProductRoutes(api, h)
	OrderRoutes(api, h)
	DeliveryRoutes(api, h)
	ResellRoutes(api, h)
	ContactRoutes(api, h)
	AdminRoutes(api, h)
	WebSocketRoutes(r, h)
	StaticRoutes(r, opts.AssetsDir, opts.FrontendDir)

	return r
}
