// File: foodsavvy/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodsavvy/config"
	"foodsavvy/database"
	cateringRepoPkg "foodsavvy/database/repository/catering"
	deliveryRepoPkg "foodsavvy/database/repository/delivery"
	menuRepoPkg "foodsavvy/database/repository/menu"
	orderRepoPkg "foodsavvy/database/repository/order"
	"foodsavvy/handlers"
	"foodsavvy/routes"
	"foodsavvy/services/availability"
	"foodsavvy/services/catering"
	"foodsavvy/services/checkout"
	"foodsavvy/services/mailer"
	"foodsavvy/services/menu"
	"foodsavvy/services/order"
	"foodsavvy/services/storage"
	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitHoldCache()

	storageService, err := storage.NewFromConfig()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	menuRepo := menuRepoPkg.NewMongoMenuRepo()
	orderRepo := orderRepoPkg.NewMongoOrderRepo()
	deliveryRepo := deliveryRepoPkg.NewMongoDeliveryRepo()
	cateringRepo := cateringRepoPkg.NewMongoCateringRepo()

	// services.
	engine := &availability.DefaultEngine{
		Orders:   orderRepo,
		Delivery: deliveryRepo,
	}

	holdStore := checkout.NewHoldStore(
		utils.GetHoldCacheClient(),
		time.Duration(config.AppConfig.HoldTTLMin)*time.Minute,
	)
	gateway := &checkout.StripeGateway{}

	checkoutService := &checkout.DefaultCheckoutService{
		Orders:       orderRepo,
		Menu:         menuRepo,
		Delivery:     deliveryRepo,
		Availability: engine,
		Holds:        holdStore,
		Gateway:      gateway,
		TaxRate:      config.AppConfig.SalesTaxRate,
	}

	var orderMailer mailer.Mailer
	if m := mailer.NewResendMailer(); m != nil {
		orderMailer = m
	} else {
		logger.Warn("main: RESEND_API_KEY not set, order confirmation emails disabled")
	}

	orderService := &order.DefaultOrderService{
		Repo:    orderRepo,
		Gateway: gateway,
		Holds:   holdStore,
		Mailer:  orderMailer,
	}

	menuService := &menu.DefaultMenuService{
		Repo:         menuRepo,
		Orders:       orderRepo,
		Availability: engine,
	}

	cateringService := &catering.DefaultCateringService{
		Repo: cateringRepo,
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(
		menuService,
		orderService,
		checkoutService,
		cateringService,
		storageService,
		engine,
		deliveryRepo,
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
