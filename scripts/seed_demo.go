//go:build ignore

// Seeds a demo user and a sample published portfolio.
//
//	DEMO_EMAIL=demo@example.com DEMO_PASSWORD=secret go run scripts/seed_demo.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

func main() {
	fmt.Println("adding demo user into database...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	email := os.Getenv("DEMO_EMAIL")
	password := os.Getenv("DEMO_PASSWORD")
	if dsn == "" || email == "" || password == "" {
		log.Fatal("DB_DSN, DEMO_EMAIL and DEMO_PASSWORD must be set")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	var userID uuid.UUID
	query := `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id
	`
	if err := pool.QueryRow(ctx, query, uuid.New(), "Demo User", email, hash).Scan(&userID); err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	p := &portfolio.Portfolio{
		UserID:   userID,
		Username: "demo",
		Name:     "Demo User",
		Email:    email,
		Headline: "Software Engineer",
		About:    "This portfolio was created by the demo seeder.",
		Experiences: []portfolio.Experience{
			{Company: "Acme", Role: "Backend Engineer", Duration: "2021 - now", Description: "APIs and data pipelines."},
		},
		Projects: []portfolio.Project{
			{Title: "Portfolio Builder", Description: "Publish a portfolio in minutes.", Link: "github.com/khoahotran/portfolio-builder"},
		},
		Skills:    []string{"Go", "PostgreSQL", "Kafka"},
		Template:  portfolio.TemplateModern,
		UpdatedAt: time.Now().UTC(),
	}
	p.Normalize()

	repo := persistence.NewPostgresPortfolioRepo(pool, logger.NewNopLogger())
	if _, err := repo.Upsert(ctx, p); err != nil {
		log.Fatalf("cannot publish demo portfolio: %v", err)
	}

	fmt.Printf("added or updated demo user '%s' with portfolio /p/%s\n", email, p.Username)
}
