package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/themobileprof/medichat-be/internal/api"
	"github.com/themobileprof/medichat-be/internal/api/middleware"
	"github.com/themobileprof/medichat-be/internal/assistant"
	"github.com/themobileprof/medichat-be/internal/chat"
	"github.com/themobileprof/medichat-be/internal/circuitbreaker"
	"github.com/themobileprof/medichat-be/internal/classifier"
	"github.com/themobileprof/medichat-be/internal/config"
	"github.com/themobileprof/medichat-be/internal/db"
	"github.com/themobileprof/medichat-be/internal/diagnosis"
	"github.com/themobileprof/medichat-be/internal/lexicon"
	"github.com/themobileprof/medichat-be/internal/prompt"
	"github.com/themobileprof/medichat-be/internal/symptoms"
	"github.com/themobileprof/medichat-be/internal/ws"
	"github.com/themobileprof/medichat-be/pkg/llm"
	"github.com/themobileprof/medichat-be/pkg/openai"
	"github.com/themobileprof/medichat-be/pkg/openrouter"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.Load()

	lex, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		log.Fatalf("Failed to load lexicon: %v", err)
	}

	// Symptom vocabulary and classifier artifact must agree on column order
	predictor, err := diagnosis.Load(context.Background(), cfg.TrainingCSV, cfg.ModelPath)
	if err != nil {
		log.Fatalf("Failed to load disease classifier: %v", err)
	}
	vocab := predictor.Vocabulary()
	log.Printf("✅ Classifier loaded: %d symptoms", vocab.Len())

	detector := classifier.NewDetector(lex.MedicalKeywords)
	if phrases := detector.UnreachablePhrases(); len(phrases) > 0 {
		log.Printf("Warning: %d multi-word medical keywords can never match single-token lookup (e.g. %q)",
			len(phrases), phrases[0])
	}
	log.Printf("✅ Medical keywords loaded: %d", detector.Size())

	llmClient := newChatClient(cfg)
	if cfg.ChatAPIKey == "" {
		log.Printf("Warning: no chat API key configured, chat replies will use the fallback message")
	}

	breaker := circuitbreaker.New(circuitbreaker.Settings{
		Name:         llmClient.Name(),
		MaxFailures:  cfg.BreakerMaxFailures,
		ResetTimeout: cfg.BreakerResetTimeout,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	completer := assistant.New(llmClient, prompt.NewBuilder(lex.SystemPrompt), breaker, assistant.Options{
		Timeout:           cfg.ChatTimeout,
		DisclosurePhrases: lex.DisclosurePhrases,
	})
	log.Printf("✅ Chat provider: %s", llmClient.Name())

	chatRouter := chat.NewRouter(symptoms.NewExtractor(vocab), detector, predictor, completer)

	// Optional consultation log
	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.NewFromURL(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = database.Migrate(migrateCtx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		chatRouter.SetRecorder(database)
		log.Println("✅ Database connected")
	}

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	limiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.RateLimitPerMin), cfg.RateLimitBurst)
	stopSweep := make(chan struct{})
	go limiter.Run(stopSweep)

	router.GET("/", api.Home)
	router.GET("/health", api.Health(api.HealthInfo{
		Symptoms:     vocab.Len(),
		Keywords:     detector.Size(),
		ChatProvider: llmClient.Name(),
		BreakerState: func() string { return breaker.State().String() },
	}))
	router.POST("/chat", middleware.PerIP(limiter), api.NewChatHandler(chatRouter).Chat)
	router.GET("/ws/chat", middleware.PerIP(limiter), ws.NewChatHandler(chatRouter, int(cfg.RateLimitPerMin)).HandleChat)

	if database != nil {
		consultations := api.NewConsultationHandler(database)
		router.GET("/api/consultations/recent", consultations.GetRecent)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%s", cfg.Port)
		log.Printf("📝 API endpoints:")
		log.Printf("   GET    /")
		log.Printf("   POST   /chat")
		log.Printf("   GET    /health")
		log.Printf("   WS     /ws/chat")
		if database != nil {
			log.Printf("   GET    /api/consultations/recent")
		}
		log.Printf("")
		log.Printf("Press Ctrl+C to stop")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	close(stopSweep)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newChatClient builds the configured chat-completion provider
func newChatClient(cfg config.Config) llm.Client {
	switch cfg.ChatProvider {
	case config.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:  cfg.ChatAPIKey,
			BaseURL: cfg.ChatBaseURL,
			Model:   cfg.ChatModel,
			Timeout: cfg.ChatTimeout,
		})
	default:
		return openrouter.NewHTTPClient(openrouter.Config{
			APIKey:  cfg.ChatAPIKey,
			BaseURL: cfg.ChatBaseURL,
			Model:   cfg.ChatModel,
			Referer: cfg.ChatReferer,
			Title:   cfg.ChatTitle,
			Timeout: cfg.ChatTimeout,
		})
	}
}
