package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/yourusername/assessment-api/internal/config"
	"github.com/yourusername/assessment-api/pkg/database"
)

// Использование:
//
//	migrate up
//	migrate down -steps 1
//	migrate force -version 3
//	migrate version
func main() {
	steps := flag.Int("steps", 1, "количество шагов для down")
	version := flag.Int("version", -1, "версия для force")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance(database.SourceURL(cfg.Database.MigrationsPath), "postgres", driver)
	if err != nil {
		log.Fatal(err)
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-*steps)
	case "force":
		if *version < 0 {
			log.Fatal("force requires -version")
		}
		// снимает флаг dirty после неудачной миграции
		err = m.Force(*version)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal(verr)
		}
		fmt.Printf("version=%d dirty=%t\n", v, dirty)
		return
	default:
		log.Fatalf("unknown command %q (up, down, force, version)", command)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Migration %s failed: %v", command, err)
	}
	fmt.Printf("Migration %s completed\n", command)
}
