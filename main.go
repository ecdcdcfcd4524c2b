// File: bookpage/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookpage/config"
	"bookpage/database"
	journalRepo "bookpage/database/repository/journal"
	"bookpage/handlers"
	"bookpage/middleware"
	"bookpage/routes"
	"bookpage/services/flow"
	"bookpage/services/lifecycle"
	"bookpage/tasks"
	"bookpage/upstream"
	"bookpage/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// Upstream booking store client.
	upstreamClient := upstream.NewClient(
		config.AppConfig.UpstreamBaseURL,
		time.Duration(config.AppConfig.UpstreamTimeoutMS)*time.Millisecond,
	)

	// repositories.
	journal := journalRepo.NewMongoJournalRepo()

	// services.
	lifecycleService := &lifecycle.DefaultLifecycleService{
		API:     upstreamClient,
		Journal: journal,
		Notices: tasks.NewEnqueuer(),
	}

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	flowService := &flow.DefaultFlowService{
		Sessions: flow.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL),
		Upstream: upstreamClient,
		Creator:  lifecycleService,
	}

	bookingHandler := handlers.NewBookingHandler(flowService, lifecycleService)
	journalHandler := handlers.NewJournalHandler(journal)

	routes.RegisterBookingRoutes(router, bookingHandler)
	routes.RegisterJournalRoutes(router, journalHandler)

	// Background notice worker.
	tasks.InitNoticeWorker(upstreamClient, journal)

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
