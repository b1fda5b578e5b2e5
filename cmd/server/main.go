package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	config "github.com/havenhub/content-api/configs"
	"github.com/havenhub/content-api/internal/api/handlers"
	"github.com/havenhub/content-api/internal/api/middleware"
	job "github.com/havenhub/content-api/internal/jobs"
	"github.com/havenhub/content-api/internal/planner"
	"github.com/havenhub/content-api/internal/queue"
	"github.com/havenhub/content-api/internal/repository"
	"github.com/havenhub/content-api/internal/service"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	targets, err := planner.NewStaticTargets(planner.DefaultTargets())
	if err != nil {
		log.Fatalf("Invalid pillar ratio tables: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	contentMediaRepo := repository.NewContentMediaRepository(db)
	selectedAccountRepo := repository.NewSelectedAccountRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	plannerSettingsRepo := repository.NewPlannerSettingsRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	publishHistoryRepo := repository.NewPublishHistoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	r2Service := service.NewR2Service(*cfg)
	contentService := service.NewContentService(*cfg, db, contentRepo, selectedAccountRepo, mediaAssetRepo, socialAccountRepo, contentMediaRepo, *r2Service)
	platformService := service.NewPlatformService(*cfg, socialAccountRepo)
	pinterestService := service.NewPinterestService(*cfg, contentRepo, socialAccountRepo, contentMediaRepo, mediaAssetRepo, productRepo)
	instagramService := service.NewInstagramService(*cfg, socialAccountRepo, contentRepo, contentMediaRepo, mediaAssetRepo)
	tiktokService := service.NewTiktokService(*cfg, contentRepo, socialAccountRepo, contentMediaRepo, mediaAssetRepo)
	balanceService := service.NewBalanceService(*cfg, targets, contentRepo, plannerSettingsRepo)
	schedulerService := service.NewSchedulerService(contentRepo, engagementRepo)
	settingsService := service.NewSettingsService(*cfg, plannerSettingsRepo)
	shopifyService := service.NewShopifyService(*cfg, productRepo)
	klaviyoService := service.NewKlaviyoService(*cfg)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	platform := handlers.NewPlatformHandler(platformService, pinterestService, instagramService, tiktokService, *cfg)
	app.Get("/auth/:platform", platform.AddSocialAccount)
	app.Get("/auth/:platform/callback", platform.CallbackHandler)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	settings := handlers.NewSettingsHandler(settingsService)
	api.Get("/settings/info", settings.GetSettingsInfo)
	api.Post("/settings/update", settings.UpdateSettings)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	content := handlers.NewContentHandler(contentService, client)
	api.Post("/content/create", content.CreateContent)
	api.Get("/content", content.ListContent)
	api.Post("/content/remove", content.RemoveContent)

	balance := handlers.NewBalanceHandler(balanceService)
	api.Get("/balance", balance.GetBalance)
	api.Get("/balance/recommendations", balance.GetRecommendations)

	schedule := handlers.NewScheduleHandler(schedulerService, client)
	api.Post("/schedule/bulk", schedule.BulkSchedule)
	api.Get("/schedule/slots", schedule.ListDaySlots)
	api.Get("/schedule/optimal", schedule.ListOptimalSlots)

	products := handlers.NewProductHandler(shopifyService)
	api.Get("/products", products.ListProducts)
	api.Post("/products/sync", products.SyncProducts)

	// social accounts api routes
	api.Get("/accounts", platform.ListSocialAccounts)
	api.Post("/accounts/remove", platform.DeleteSocialAccount)

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(socialAccountRepo, pinterestService, tiktokService, instagramService)
	shopifySyncJob := job.NewShopifySyncJob(shopifyService)
	digestJob := job.NewDigestJob(*cfg, userRepo, balanceService, klaviyoService)

	// queue
	queueW := queue.NewQueue(contentRepo, selectedAccountRepo, socialAccountRepo, publishHistoryRepo, engagementRepo, pinterestService, tiktokService, instagramService)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", refreshTokenJob.RefreshTokens)
	c.AddFunc("@every 06h00m00s", shopifySyncJob.SyncProducts)
	c.AddFunc("0 0 8 * * 1", digestJob.SendWeeklyDigest)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishContent, queueW.HandlePublishContentTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
