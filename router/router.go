package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/controllers"
	"github.com/foodos-payload/frituurapp/middlewares"
	"github.com/foodos-payload/frituurapp/services"
)

// Services bundles the outbound-provider clients the controllers need.
type Services struct {
	Checkout *services.CheckoutService
	Geocoder *services.GeocodeService
	POSSync  *services.POSSyncService
	Printers *services.PrinterService
}

func SetupRouter(db *gorm.DB, svc Services) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())
	// Registered before the routes; gin snapshots each route's chain at
	// registration time.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	userCtrl := controllers.NewUserController(db)
	shopCtrl := controllers.NewShopController(db, svc.Printers)
	orderCtrl := controllers.NewOrderController(db, svc.Geocoder, svc.Printers)
	checkoutCtrl := controllers.NewCheckoutController(db, svc.Checkout)
	syncCtrl := controllers.NewSyncController(db, svc.POSSync)
	tenantCtrl := controllers.NewTenantController(db)
	catalogCtrl := controllers.NewCatalogController(db)
	printerCtrl := controllers.NewPrinterController(db)
	customerCtrl := controllers.NewCustomerController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Login/register sit behind the strict limiter.
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//          STOREFRONT / KIOSK / KITCHEN (host-scoped, no auth)
	// ----------------------------------------------------------------
	api := r.Group("/api")
	{
		api.GET("/shop", shopCtrl.GetShop)
		api.GET("/categories", shopCtrl.GetCategories)
		api.GET("/products", shopCtrl.GetProducts)
		api.GET("/fulfillment-methods", shopCtrl.GetFulfillmentMethods)
		api.GET("/payment-methods", shopCtrl.GetPaymentMethods)
		api.GET("/printers", shopCtrl.GetPrinters)
		api.GET("/geocode", shopCtrl.GetGeocode(svc.Geocoder))

		api.POST("/orders", orderCtrl.CreateOrder)
		api.GET("/orders", orderCtrl.GetOrders)
		api.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		// One endpoint per target status; host + order id only, no body.
		api.POST("/orders/:order_id/awaiting-preparation", orderCtrl.MarkAwaitingPreparation)
		api.POST("/orders/:order_id/in-preparation", orderCtrl.MarkInPreparation)
		api.POST("/orders/:order_id/ready-for-pickup", orderCtrl.MarkReadyForPickup)
		api.POST("/orders/:order_id/in-delivery", orderCtrl.MarkInDelivery)
		api.POST("/orders/:order_id/complete", orderCtrl.MarkComplete)
		api.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)

		api.POST("/checkout/session", checkoutCtrl.CreateSession)
		api.GET("/checkout/session/:session_id", checkoutCtrl.GetSession)
		api.POST("/checkout/webhook", checkoutCtrl.HandleWebhook)

		api.GET("/kitchen/ws", controllers.KitchenScreenHandler(db))
	}

	// ----------------------------------------------------------------
	//                      DASHBOARD (auth)
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	{
		admin.GET("/profile", userCtrl.GetProfile)
		admin.POST("/logout", userCtrl.Logout)

		// TENANTS / SHOPS (platform admins only)
		tenants := admin.Group("/tenants")
		tenants.Use(middlewares.RequireRole())
		{
			tenants.GET("", tenantCtrl.GetAllTenants)
			tenants.POST("", tenantCtrl.CreateTenant)
			tenants.GET("/:tenant_id", tenantCtrl.GetTenantByID)
			tenants.PATCH("/:tenant_id", tenantCtrl.UpdateTenant)
			tenants.POST("/:tenant_id/shops", tenantCtrl.CreateShop)
		}
		admin.PATCH("/shops/:shop_id", middlewares.RequireRole("manager"), tenantCtrl.UpdateShop)

		// CATALOG (manager)
		catalog := admin.Group("/")
		catalog.Use(middlewares.RequireRole("manager"))
		{
			catalog.POST("/categories", catalogCtrl.CreateCategory)
			catalog.PATCH("/categories/:category_id", catalogCtrl.UpdateCategory)
			catalog.POST("/products", catalogCtrl.CreateProduct)
			catalog.PATCH("/products/:product_id", catalogCtrl.UpdateProduct)
			catalog.POST("/subproducts", catalogCtrl.CreateSubproduct)

			catalog.POST("/printers", printerCtrl.CreatePrinter)
			catalog.PATCH("/printers/:printer_id", printerCtrl.UpdatePrinter)
			catalog.DELETE("/printers/:printer_id", printerCtrl.DeletePrinter)

			catalog.GET("/customers", customerCtrl.GetAllCustomers)
			catalog.POST("/customers", customerCtrl.CreateCustomer)
			catalog.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
			catalog.PATCH("/customers/:customer_id/credits", customerCtrl.AdjustLoyaltyCredits)

			catalog.POST("/sync/categories", syncCtrl.SyncCategories)
			catalog.POST("/sync/products", syncCtrl.SyncProducts)
			catalog.POST("/sync/subproducts", syncCtrl.SyncSubproducts)

			catalog.POST("/checkout/portal", checkoutCtrl.CreatePortal)
		}

		// ORDERS (manager/kitchen) -- same handlers as the public surface.
		orders := admin.Group("/orders")
		orders.Use(middlewares.RequireRole("manager", "kitchen"))
		{
			orders.GET("", orderCtrl.GetOrders)
			orders.GET("/:order_id", orderCtrl.GetOrderByID)
			orders.POST("/:order_id/awaiting-preparation", orderCtrl.MarkAwaitingPreparation)
			orders.POST("/:order_id/in-preparation", orderCtrl.MarkInPreparation)
			orders.POST("/:order_id/ready-for-pickup", orderCtrl.MarkReadyForPickup)
			orders.POST("/:order_id/in-delivery", orderCtrl.MarkInDelivery)
			orders.POST("/:order_id/complete", orderCtrl.MarkComplete)
			orders.POST("/:order_id/cancel", orderCtrl.CancelOrder)
		}
	}

	return r
}
