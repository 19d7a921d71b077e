package main

import (
	"context"
	"log"
	"os"

	"lendloop/db"
	"lendloop/exchange"
	"lendloop/listing"
	"lendloop/member"
)

func main() {
	ctx := context.Background()

	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	memberService := member.NewService(member.NewRepository(pool), jwtSecret)
	listings := listing.NewRepository(pool)
	engine := exchange.NewEngine(pool, exchange.NewRepository(pool), listings)

	log.Printf("reservation engine ready: members=%v listings=%v engine=%v",
		memberService != nil, listings != nil, engine != nil)
}
