package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/yourusername/assessment-api/internal/config"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	"github.com/yourusername/assessment-api/internal/handler"
	"github.com/yourusername/assessment-api/internal/middleware"
	pgRepo "github.com/yourusername/assessment-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/assessment-api/internal/repository/redis"
	"github.com/yourusername/assessment-api/internal/service"
	"github.com/yourusername/assessment-api/pkg/auth"
	"github.com/yourusername/assessment-api/pkg/database"
	"github.com/yourusername/assessment-api/pkg/locale"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := gin.Mode() == gin.ReleaseMode

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), !isProduction, database.DefaultPoolConfig())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Redis опционален: без него не работают кеш slug и ограничение попыток входа
	var redisClient redis.UniversalClient
	var cacheRepo repository.CacheRepository
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewUniversalRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		log.Println("Successfully connected to Redis")

		cache, err := redisRepo.NewCacheRepo(redisClient, "assessment:")
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
		cacheRepo = cache
	} else {
		log.Println("Redis не сконфигурирован: кеш и rate limiting отключены")
	}

	userRepo := pgRepo.NewUserRepo(db)
	invalidTokenRepo := pgRepo.NewInvalidTokenRepo(db)
	surveyRepo := pgRepo.NewSurveyRepo(db)
	surveyAdminRepo := pgRepo.NewSurveyAdminRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	choiceRepo := pgRepo.NewChoiceRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	groupRepo := pgRepo.NewSurveyGroupRepo(db)
	profileRepo := pgRepo.NewProfileRepo(db)

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs, invalidTokenRepo)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(userRepo, jwtService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}

	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		resendService, err := service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
		emailService = resendService
	}

	locales := locale.NewResolver(cfg.Locale.Default, cfg.Locale.Supported)
	defaultLocale := locales.Default()

	surveyService := service.NewSurveyService(surveyRepo, surveyAdminRepo, userRepo, cacheRepo, emailService,
		locales, time.Duration(cfg.Redis.SurveyCacheTTL)*time.Second)
	questionService := service.NewQuestionService(surveyRepo, surveyAdminRepo, questionRepo, choiceRepo, locales)
	resultService := service.NewResultService(surveyRepo, surveyAdminRepo, questionRepo, resultRepo)
	exportService := service.NewExportService(surveyRepo, surveyAdminRepo, questionRepo, resultRepo, defaultLocale)
	groupService := service.NewSurveyGroupService(groupRepo)
	profileService := service.NewProfileService(profileRepo, userRepo)

	sameSitePolicy := http.SameSiteLaxMode
	if isProduction {
		sameSitePolicy = http.SameSiteNoneMode // None только для HTTPS
	}
	cookieConfig := auth.CookieConfig{Path: "/", Secure: isProduction, SameSite: sameSitePolicy}

	handlers := handler.Handlers{
		Auth:     handler.NewAuthHandler(authService, jwtService, cookieConfig),
		Survey:   handler.NewSurveyHandler(surveyService, profileService, defaultLocale),
		Question: handler.NewQuestionHandler(questionService, defaultLocale),
		Result:   handler.NewResultHandler(resultService),
		Export:   handler.NewExportHandler(exportService, defaultLocale),
		Group:    handler.NewGroupHandler(groupService, defaultLocale),
		Profile:  handler.NewProfileHandler(profileService, defaultLocale),
	}

	routerDeps := handler.RouterDeps{
		Auth:    middleware.NewAuthMiddleware(jwtService),
		Locales: locales,
	}
	if cacheRepo != nil {
		routerDeps.LoginLimit = middleware.NewRateLimiter(cacheRepo).
			Limit(middleware.LoginRateLimitConfig(cfg.Auth.LoginRateLimit))
	}

	if err := handler.RegisterValidators(); err != nil {
		log.Printf("Failed to register validators: %v", err)
		os.Exit(1)
	}

	router := gin.Default()

	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	allowOrigins := cfg.CORS.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler.RegisterRoutes(router, handlers, routerDeps)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("Server exited properly")
}
