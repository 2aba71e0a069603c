package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"mensa/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, relying on environment")
	}

	maxConns := 5
	if val, exists := os.LookupEnv("DB_MAX_CONNS"); exists {
		if parsed, err := strconv.Atoi(val); err == nil {
			maxConns = parsed
		}
	}

	pool, err := db.New(os.Getenv("DB_ADDR"), int32(maxConns), "15m")
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("applying schema: %v", err)
	}

	log.Println("schema up to date")
}
