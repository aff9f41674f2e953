package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/yourusername/assessment-api/internal/config"
	pgRepo "github.com/yourusername/assessment-api/internal/repository/postgres"
	"github.com/yourusername/assessment-api/internal/service"
	"github.com/yourusername/assessment-api/pkg/auth"
	"github.com/yourusername/assessment-api/pkg/database"
)

func main() {
	username := flag.String("username", "", "имя пользователя")
	email := flag.String("email", "", "email")
	password := flag.String("password", os.Getenv("SUPERUSER_PASSWORD"), "пароль (или SUPERUSER_PASSWORD)")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), false, database.DefaultPoolConfig())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs, pgRepo.NewInvalidTokenRepo(db))
	if err != nil {
		log.Fatalf("Failed to initialize JWTService: %v", err)
	}
	authService, err := service.NewAuthService(pgRepo.NewUserRepo(db), jwtService)
	if err != nil {
		log.Fatalf("Failed to initialize AuthService: %v", err)
	}

	user, err := authService.CreateSuperuser(context.Background(), service.RegisterInput{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}
	log.Printf("Superuser %s created (ID=%s)", user.Username, user.ID)
}
