package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"estate-market/internal/auth"
	"estate-market/internal/config"
	"estate-market/internal/database"
	"estate-market/internal/handlers"
	"estate-market/internal/models"
	"estate-market/internal/payments"
	"estate-market/internal/repository"
	"estate-market/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repository
	repo := repository.NewRepository(database.GetDB())

	// Initialize payment processor and identity verifier
	processor := payments.NewStripeProcessor(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	verifier := auth.NewGoogleVerifier(cfg.Google.ClientID)

	// Initialize services
	authService := services.NewAuthService(repo, verifier)
	userService := services.NewUserService(repo)
	propertyService := services.NewPropertyService(repo)
	offerService := services.NewOfferService(repo)
	paymentService := services.NewPaymentService(repo, processor, cfg.Stripe.Currency)
	reviewService := services.NewReviewService(repo)
	wishlistService := services.NewWishlistService(repo)
	dashboardService := services.NewDashboardService(repo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	offerHandler := handlers.NewOfferHandler(offerService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000", // Local development
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/google", authHandler.GoogleLogin)
	}

	// Authenticated /auth routes
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
		authProtected.PATCH("/profile", authHandler.UpdateProfile)
	}

	// Public catalog routes
	router.GET("/api/properties", propertyHandler.ListProperties)
	router.GET("/api/properties/advertised", propertyHandler.ListAdvertised)
	router.GET("/api/reviews/latest", reviewHandler.LatestReviews)
	router.GET("/api/reviews/property/:id", reviewHandler.PropertyReviews)
	router.GET("/api/statistics", dashboardHandler.GetStatistics)

	// Payment processor webhook (public, signature-verified)
	router.POST("/api/payments/webhook", paymentHandler.Webhook)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Static property routes must come before :id
		api.GET("/properties/mine", propertyHandler.ListMyProperties)
		api.GET("/properties/:id", propertyHandler.GetProperty)

		// Dashboard counters
		api.GET("/dashboard/stats", dashboardHandler.GetUserStats)

		// Wishlist endpoints
		api.POST("/wishlist", wishlistHandler.AddToWishlist)
		api.GET("/wishlist", wishlistHandler.GetWishlist)
		api.GET("/wishlist/:propertyId", wishlistHandler.CheckWishlist)
		api.DELETE("/wishlist/:propertyId", wishlistHandler.RemoveFromWishlist)

		// Review endpoints
		api.POST("/reviews", reviewHandler.AddReview)
		api.GET("/reviews/mine", reviewHandler.MyReviews)
		api.DELETE("/reviews/:id", reviewHandler.DeleteReview)

		// Offer endpoints (buyer side)
		api.POST("/offers", offerHandler.CreateOffer)
		api.GET("/offers", offerHandler.ListMyOffers)
		api.GET("/offers/:id", offerHandler.GetOffer)
		api.PATCH("/offers/:id/complete", paymentHandler.CompletePurchase)
		api.POST("/payments/create-payment-intent", paymentHandler.CreatePaymentIntent)

		// Agent endpoints
		agent := api.Group("")
		agent.Use(auth.RequireRole(models.RoleAgent, models.RoleAdmin))
		{
			agent.POST("/properties", propertyHandler.CreateProperty)
			agent.PUT("/properties/:id", propertyHandler.UpdateProperty)
			agent.DELETE("/properties/:id", propertyHandler.DeleteProperty)
			agent.GET("/offers/received", offerHandler.ListReceivedOffers)
			agent.GET("/offers/sold", offerHandler.GetSoldSummary)
			agent.PATCH("/offers/:id/accept", offerHandler.AcceptOffer)
			agent.PATCH("/offers/:id/reject", offerHandler.RejectOffer)
		}
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", userHandler.ListUsers)
		admin.PATCH("/users/:id/role", userHandler.UpdateRole)
		admin.PATCH("/users/:id/fraud", userHandler.MarkFraud)
		admin.DELETE("/users/:id", userHandler.DeleteUser)

		admin.GET("/properties", propertyHandler.ListAllProperties)
		admin.PATCH("/properties/:id/verify", propertyHandler.VerifyProperty)
		admin.PATCH("/properties/:id/advertise", propertyHandler.AdvertiseProperty)

		admin.GET("/reviews", reviewHandler.AllReviews)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
