package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"money-tracker-go/internal/config"
	"money-tracker-go/internal/transport/httpserver/handler"
	authmw "money-tracker-go/internal/transport/httpserver/middleware"
	"money-tracker-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/auth/login", handlers.Login)

		auth := authmw.NewTokenAuth(handlers.Tokens, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.Me)
			r.Get("/lock", handlers.LockStatus)
			r.Post("/lock", handlers.Lock)
			r.Post("/unlock", handlers.Unlock)
			r.Get("/preferences", handlers.GetPreferences)
			r.Get("/prices", handlers.GetPrices)
			r.Get("/sync/status", handlers.SyncStatus)

			r.Group(func(r chi.Router) {
				r.Use(authmw.NewLockGate(handlers.Tracker, log))

				r.Put("/preferences", handlers.UpdatePreferences)
				r.Get("/records", handlers.ListRecords)

				r.Get("/incomes", handlers.ListIncomes)
				r.Post("/incomes", handlers.CreateIncome)
				r.Put("/incomes/{id}", handlers.UpdateIncome)
				r.Delete("/incomes/{id}", handlers.DeleteIncome)

				r.Get("/spendings", handlers.ListSpendings)
				r.Post("/spendings", handlers.CreateSpending)
				r.Put("/spendings/{id}", handlers.UpdateSpending)
				r.Delete("/spendings/{id}", handlers.DeleteSpending)

				r.Get("/obligations", handlers.ListObligations)
				r.Post("/obligations", handlers.CreateObligation)
				r.Get("/obligations/progress", handlers.ObligationProgress)
				r.Put("/obligations/{id}", handlers.UpdateObligation)
				r.Delete("/obligations/{id}", handlers.DeleteObligation)

				r.Get("/assets", handlers.ListAssets)
				r.Post("/assets", handlers.CreateAsset)
				r.Get("/assets/valuation", handlers.AssetValuation)
				r.Put("/assets/{id}", handlers.UpdateAsset)
				r.Delete("/assets/{id}", handlers.DeleteAsset)

				r.Get("/budgets", handlers.ListBudgets)
				r.Post("/budgets", handlers.CreateBudget)
				r.Get("/budgets/status", handlers.BudgetStatus)
				r.Put("/budgets/{id}", handlers.UpdateBudget)
				r.Delete("/budgets/{id}", handlers.DeleteBudget)

				r.Get("/summary/month", handlers.MonthSummary)
				r.Get("/summary/year", handlers.YearSummary)
				r.Get("/summary/range", handlers.RangeSummary)
				r.Get("/summary/calendar", handlers.CalendarSummary)
				r.Get("/summary/year-balance", handlers.YearBalanceSummary)
				r.Get("/summary/categories", handlers.CategorySummary)

				r.Post("/prices/refresh", handlers.RefreshPrices)

				r.Post("/sync/push", handlers.SyncPush)
				r.Post("/sync/pull", handlers.SyncPull)

				r.Get("/export/xlsx", handlers.ExportXLSX)
				r.Get("/export/pdf", handlers.ExportPDF)
				r.Get("/export/csv/{collection}", handlers.ExportCSV)
				r.Post("/export/email", handlers.ExportEmail)
			})
		})
	})

	return r
}
