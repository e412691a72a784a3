package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hardik8491/Gold-Coin-sub001/src/ai"
	"github.com/Hardik8491/Gold-Coin-sub001/src/config"
	"github.com/Hardik8491/Gold-Coin-sub001/src/handlers"
	"github.com/Hardik8491/Gold-Coin-sub001/src/ingest"
	"github.com/Hardik8491/Gold-Coin-sub001/src/mail"
	"github.com/Hardik8491/Gold-Coin-sub001/src/middleware"
	"github.com/Hardik8491/Gold-Coin-sub001/src/plaid"
	"github.com/Hardik8491/Gold-Coin-sub001/src/ratelimit"
)

// Deps is everything the routes need, wired once in main.
type Deps struct {
	Config      *config.Config
	Pool        *pgxpool.Pool
	PlaidClient *plaid.Client
	AIClient    *ai.Client
	Mailer      *mail.Client
	Pipeline    *ingest.Pipeline
	Limits      *ratelimit.Store
}

func NewRouter(deps Deps) *chi.Mux {
	// Fixed per-call-site quotas.
	apiLimiter := ratelimit.NewLimiter(deps.Limits, "api", 10, time.Minute)
	aiLimiter := ratelimit.NewLimiter(deps.Limits, "ai", 5, time.Minute)
	emailLimiter := ratelimit.NewLimiter(deps.Limits, "email", 2, time.Hour)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		// Scheduler endpoint, guarded by the shared secret.
		r.Get("/cron/bill-reminders", handlers.BillReminders(deps.Pool, deps.Mailer, emailLimiter, deps.Config.CronSecret))

		// Token required but no app user yet.
		r.With(middleware.RequireIdentity(deps.Config.JWTSecret)).
			Post("/users/sync", handlers.SyncUser(deps.Pool))

		// Protected routes
		r.With(middleware.AuthMiddleware(deps.Pool, deps.Config.JWTSecret)).Group(func(r chi.Router) {
			// Plaid
			r.Post("/plaid/link-token", handlers.CreateLinkToken(deps.PlaidClient))
			r.Post("/plaid/exchange-token", handlers.ExchangePublicToken(deps.Pipeline, apiLimiter))
			r.Post("/plaid/sync", handlers.SyncTransactions(deps.Pool, deps.Pipeline, apiLimiter))

			// Accounts
			r.Get("/accounts", handlers.GetAccounts(deps.Pool))
			r.Post("/accounts", handlers.CreateAccount(deps.Pool))

			// Transactions
			r.Get("/transactions", handlers.GetTransactions(deps.Pool))
			r.Post("/transactions", handlers.CreateTransaction(deps.Pool))
			r.Get("/transactions/stats", handlers.GetTransactionStats(deps.Pool))
			r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(deps.Pool))
			r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(deps.Pool))

			// Analytics
			r.Get("/analytics/spending", handlers.GetSpendingAnalytics(deps.Pool))

			// AI
			r.Post("/ai/categorize", handlers.CategorizeTransaction(deps.AIClient, aiLimiter))
			r.Post("/ai/receipt-scan", handlers.ScanReceipt(deps.AIClient, aiLimiter))

			// Budgets
			r.Post("/budgets", handlers.CreateBudget(deps.Pool))
			r.Get("/budgets", handlers.GetBudgets(deps.Pool))
			r.Put("/budgets/{budget_id}", handlers.UpdateBudget(deps.Pool))
			r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(deps.Pool))

			// Goals
			r.Post("/goals", handlers.CreateGoal(deps.Pool))
			r.Get("/goals", handlers.GetGoals(deps.Pool))
			r.Put("/goals/{goal_id}", handlers.UpdateGoal(deps.Pool))
			r.Post("/goals/{goal_id}/contribute", handlers.ContributeToGoal(deps.Pool))
			r.Delete("/goals/{goal_id}", handlers.DeleteGoal(deps.Pool))

			// Bills
			r.Post("/bills", handlers.CreateBill(deps.Pool))
			r.Get("/bills", handlers.GetBills(deps.Pool))
			r.Get("/bills/stats", handlers.GetBillStats(deps.Pool))
			r.Put("/bills/{bill_id}", handlers.UpdateBill(deps.Pool))
			r.Delete("/bills/{bill_id}", handlers.DeleteBill(deps.Pool))
		})
	})

	return r
}
