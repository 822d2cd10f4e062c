package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/ridwanfathin/ai-invoice-import/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := os.Getenv("SESSION_DATABASE_URL")
	if dbURL == "" {
		log.Fatalf("SESSION_DATABASE_URL environment variable not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, dbURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer db.Close()

	files, err := filepath.Glob("scripts/migrations/*.sql")
	if err != nil {
		log.Fatalf("Unable to list migration files: %v", err)
	}
	sort.Strings(files)

	for _, file := range files {
		migrationSQL, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("Unable to read migration file %s: %v", file, err)
		}
		if _, err := db.GetPool().Exec(ctx, string(migrationSQL)); err != nil {
			log.Fatalf("Failed to execute migration %s: %v", file, err)
		}
		fmt.Printf("Applied %s\n", filepath.Base(file))
	}

	fmt.Println("Migration successfully executed!")
}
