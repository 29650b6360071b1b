package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-billing/config"
	"github.com/yourusername/estate-billing/handlers"
	"github.com/yourusername/estate-billing/middleware"
	"github.com/yourusername/estate-billing/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Domain services
	directory := services.NewTenantDirectory(db)
	generator := services.NewInvoiceGenerator(db, directory)
	ledger := services.NewInvoiceLedger(db)
	wallets := services.NewWalletService(db)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "estate-billing-api",
		})
	})

	authHandler := handlers.NewAuthHandler(db, cfg)
	billHandler := handlers.NewBillHandler(db)
	invoiceHandler := handlers.NewInvoiceHandler(generator, ledger)
	walletHandler := handlers.NewWalletHandler(wallets)
	tenantHandler := handlers.NewTenantHandler(db)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth endpoints
		api.POST("/register/admin", authHandler.RegisterAdmin)
		api.POST("/register/tenant", authHandler.RegisterTenant)
		api.POST("/login/:type", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		authed := api.Group("")
		authed.Use(middleware.JwtAuthMiddleware(cfg))
		{
			// Bill catalog endpoints
			authed.GET("/bills", billHandler.ListBills)
			authed.POST("/bills", middleware.RequireCapability(middleware.CapManageBills), billHandler.CreateBill)
			authed.PUT("/bills/:id", middleware.RequireCapability(middleware.CapManageBills), billHandler.UpdateBill)
			authed.PUT("/bills/:id/toggle", middleware.RequireCapability(middleware.CapManageBills), billHandler.ToggleBill)
			authed.DELETE("/bills/:id", middleware.RequireCapability(middleware.CapManageBills), billHandler.DeleteBill)

			// Tenant directory endpoints
			authed.GET("/tenants", middleware.RequireCapability(middleware.CapManageTenants), tenantHandler.ListTenants)
			authed.PUT("/tenants/:id/toggle", middleware.RequireCapability(middleware.CapManageTenants), tenantHandler.ToggleTenant)
			authed.DELETE("/tenants/:id", middleware.RequireCapability(middleware.CapManageTenants), tenantHandler.DeleteTenant)

			// Invoice endpoints
			authed.GET("/invoices", invoiceHandler.ListInvoices)
			authed.GET("/invoices/estate_invoices", invoiceHandler.ListEstateInvoices)
			authed.GET("/invoices/:id", invoiceHandler.GetInvoice)
			authed.POST("/invoices/estate_invoice", middleware.RequireCapability(middleware.CapGenerateInvoices), invoiceHandler.CreateEstateInvoice)
			authed.POST("/invoices/:id/payments", middleware.RequireCapability(middleware.CapRecordPayments), invoiceHandler.RecordPayment)
			authed.POST("/invoices/:id/pay", middleware.RequireCapability(middleware.CapPayInvoices), walletHandler.PayInvoice)

			// Wallet endpoints
			authed.POST("/wallet/topup", walletHandler.TopUp)
			authed.POST("/wallet/deduct", walletHandler.Deduct)
		}
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting estate-billing API server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
