package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Anupamakannur/resume-relevance/internal/config"
	"github.com/Anupamakannur/resume-relevance/internal/handlers"
	"github.com/Anupamakannur/resume-relevance/internal/repositories"
	"github.com/Anupamakannur/resume-relevance/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	resumeRepo := repositories.NewResumeRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	evalRepo := repositories.NewEvaluationRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	kb := services.NewKnowledgeBase()
	ner := services.NewEntityRecognizer()
	extractor := services.NewDocumentExtractor()
	resumeParser := services.NewResumeParser(kb, ner)
	jobAnalyzer := services.NewJobAnalyzer(kb, ner)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize the guidance store
	guidanceStore, err := services.NewGuidanceStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := guidanceStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Scoring pipeline
	scorer := services.NewRelevanceScorer(kb, geminiService, cfg.Scoring.NarrativeTimeout, cfg.Worker.RetryMaxAttempts)
	feedbackGenerator := services.NewFeedbackGenerator(geminiService, guidanceStore, geminiService, cfg.Scoring.NarrativeTimeout, cfg.Worker.RetryMaxAttempts)

	evaluatorService := services.NewEvaluatorService(
		resumeRepo,
		jobRepo,
		evalRepo,
		feedbackRepo,
		extractor,
		resumeParser,
		scorer,
		feedbackGenerator,
	)
	log.Println("✅ Evaluator service initialized")

	// Initialize worker
	worker := services.NewWorker(
		resumeRepo,
		evalRepo,
		evaluatorService,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	resumeHandler := handlers.NewResumeHandler(
		resumeRepo,
		storageService,
		worker,
		cfg.Storage.MaxFileSize,
	)
	jobHandler := handlers.NewJobHandler(jobRepo, jobAnalyzer)
	evaluateHandler := handlers.NewEvaluationHandler(
		evalRepo,
		resumeRepo,
		jobRepo,
		worker,
	)
	resultHandler := handlers.NewResultHandler(evalRepo, feedbackRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Relevance API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/resumes", resumeHandler.HandleUpload)
	api.Get("/resumes/:id", resumeHandler.HandleGetResume)
	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)
	api.Post("/evaluate", evaluateHandler.HandleEvaluate)
	api.Post("/evaluate/batch", evaluateHandler.HandleBatchEvaluate)
	api.Get("/results/:id", resultHandler.HandleGetResult)
	api.Delete("/results/:id", resultHandler.HandleDeleteResult)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Relevance API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resumes",
				"GET /api/v1/resumes/:id",
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:id",
				"POST /api/v1/evaluate",
				"POST /api/v1/evaluate/batch",
				"GET /api/v1/results/:id",
				"DELETE /api/v1/results/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
