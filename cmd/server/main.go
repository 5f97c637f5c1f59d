package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/templateworks/backend/internal/config"
	"github.com/templateworks/backend/internal/database"
	"github.com/templateworks/backend/internal/docstore"
	"github.com/templateworks/backend/internal/handlers"
	"github.com/templateworks/backend/internal/middleware"
	"github.com/templateworks/backend/internal/repository"
	"github.com/templateworks/backend/internal/services"
	"github.com/templateworks/backend/internal/storage"
	"github.com/templateworks/backend/pkg/utils"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.Seed(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	redisClient, err := database.ConnectRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer database.CloseRedis(redisClient)

	mongoClient, mongoDB, err := database.ConnectMongo(&cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer database.CloseMongo(mongoClient)

	minioStorage, err := storage.NewMinIOStorage(&cfg.MinIO)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpireHour)
	sessionStore := database.NewSessionStore(redisClient)
	docStore := docstore.NewMongoStore(mongoDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	chatTemplateRepo := repository.NewChatTemplateRepository(docStore)
	emailTemplateRepo := repository.NewEmailTemplateRepository(docStore)
	caseResolutionRepo := repository.NewCaseResolutionRepository(docStore)
	caseReplyRepo := repository.NewCaseReplyRepository(docStore)
	bootstrap := repository.NewBootstrap(docStore, chatTemplateRepo, emailTemplateRepo)

	if err := bootstrap.EnsureCollections(context.Background()); err != nil {
		log.Fatalf("Failed to prepare document collections: %v", err)
	}

	// Initialize services
	userService := services.NewUserService(userRepo, bootstrap, jwtManager, sessionStore, minioStorage, cfg)
	chatTemplateService := services.NewChatTemplateService(chatTemplateRepo)
	emailTemplateService := services.NewEmailTemplateService(emailTemplateRepo)
	caseResolutionService := services.NewCaseResolutionService(caseResolutionRepo, caseReplyRepo, minioStorage, cfg)
	tagService := services.NewTagService(tagRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	chatTemplateHandler := handlers.NewChatTemplateHandler(chatTemplateService)
	emailTemplateHandler := handlers.NewEmailTemplateHandler(emailTemplateService)
	caseResolutionHandler := handlers.NewCaseResolutionHandler(caseResolutionService)
	tagHandler := handlers.NewTagHandler(tagService)
	healthHandler := handlers.NewHealthHandler(db, redisClient, mongoClient)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	app := fiber.New(fiber.Config{
		AppName:      "TemplateWorks Backend",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	}))

	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health routes
	v1.Get("/health", healthHandler.Health)
	v1.Get("/ready", healthHandler.Ready)

	// Auth routes
	auth := v1.Group("/auth")
	auth.Post("/register", userHandler.Register)
	auth.Post("/login", userHandler.Login)
	auth.Post("/refresh", userHandler.RefreshToken)
	auth.Post("/logout", authMiddleware.Authenticate(), userHandler.Logout)

	// User routes
	users := v1.Group("/users")
	users.Get("/me", authMiddleware.Authenticate(), userHandler.GetProfile)
	users.Put("/me", authMiddleware.Authenticate(), userHandler.UpdateProfile)
	users.Post("/me/avatar", authMiddleware.Authenticate(), userHandler.UploadAvatar)
	users.Put("/me/password", authMiddleware.Authenticate(), userHandler.ChangePassword)

	// Chat template routes
	chatTemplates := v1.Group("/chat-templates", authMiddleware.Authenticate())
	chatTemplates.Post("/", chatTemplateHandler.Create)
	chatTemplates.Get("/", chatTemplateHandler.List)
	chatTemplates.Get("/:id", chatTemplateHandler.Get)
	chatTemplates.Put("/:id", chatTemplateHandler.Update)
	chatTemplates.Delete("/:id", chatTemplateHandler.Delete)
	chatTemplates.Post("/:id/render", chatTemplateHandler.Render)

	// Email template routes
	emailTemplates := v1.Group("/email-templates", authMiddleware.Authenticate())
	emailTemplates.Post("/", emailTemplateHandler.Create)
	emailTemplates.Get("/", emailTemplateHandler.List)
	emailTemplates.Get("/:id", emailTemplateHandler.Get)
	emailTemplates.Put("/:id", emailTemplateHandler.Update)
	emailTemplates.Delete("/:id", emailTemplateHandler.Delete)
	emailTemplates.Post("/:id/render", emailTemplateHandler.Render)

	// Case resolution routes. Listing and reading degrade to the public
	// slice for anonymous callers; every write needs a session.
	caseResolutions := v1.Group("/case-resolutions")
	caseResolutions.Get("/", authMiddleware.OptionalAuth(), caseResolutionHandler.List)
	caseResolutions.Get("/:id", authMiddleware.OptionalAuth(), caseResolutionHandler.Get)
	caseResolutions.Post("/", authMiddleware.Authenticate(), caseResolutionHandler.Create)
	caseResolutions.Put("/:id", authMiddleware.Authenticate(), caseResolutionHandler.Update)
	caseResolutions.Delete("/:id", authMiddleware.Authenticate(), caseResolutionHandler.Delete)
	caseResolutions.Post("/:id/images", authMiddleware.Authenticate(), caseResolutionHandler.UploadImage)
	caseResolutions.Get("/:id/replies", authMiddleware.OptionalAuth(), caseResolutionHandler.ListReplies)
	caseResolutions.Post("/:id/replies", authMiddleware.Authenticate(), caseResolutionHandler.CreateReply)
	caseResolutions.Put("/:id/replies/:replyId", authMiddleware.Authenticate(), caseResolutionHandler.UpdateReply)
	caseResolutions.Delete("/:id/replies/:replyId", authMiddleware.Authenticate(), caseResolutionHandler.DeleteReply)

	// Tag vocabulary routes
	v1.Get("/tags/:kind", authMiddleware.Authenticate(), tagHandler.ListByKind)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
