package main

import (
	"log"
	"net/http"

	"github.com/Hardik8491/Gold-Coin-sub001/src/ai"
	"github.com/Hardik8491/Gold-Coin-sub001/src/api"
	"github.com/Hardik8491/Gold-Coin-sub001/src/config"
	"github.com/Hardik8491/Gold-Coin-sub001/src/db"
	"github.com/Hardik8491/Gold-Coin-sub001/src/ingest"
	"github.com/Hardik8491/Gold-Coin-sub001/src/mail"
	"github.com/Hardik8491/Gold-Coin-sub001/src/plaid"
	"github.com/Hardik8491/Gold-Coin-sub001/src/ratelimit"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	plaidClient := plaid.NewClient(
		plaid.NewPlaidClient(cfg.PlaidClientID, cfg.PlaidSecret, cfg.PlaidEnv),
		cfg.UpstreamTimeout,
	)
	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, cfg.UpstreamTimeout)
	mailer := mail.NewClient(cfg.ResendAPIKey, cfg.MailFrom, cfg.UpstreamTimeout)
	pipeline := ingest.NewPipeline(plaidClient, aiClient, ingest.NewPgxStore(pool))

	// Router
	router := api.NewRouter(api.Deps{
		Config:      cfg,
		Pool:        pool,
		PlaidClient: plaidClient,
		AIClient:    aiClient,
		Mailer:      mailer,
		Pipeline:    pipeline,
		Limits:      ratelimit.NewStore(),
	})

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
