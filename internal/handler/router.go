package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tutor-service/internal/config"
	"github.com/Dan9191/tutor-service/internal/locale"
	"github.com/Dan9191/tutor-service/internal/middleware"
)

// NewRouter wires every HTTP route of the API
func NewRouter(h *Handler, cfg *config.Config, catalog *locale.Catalog, logger *logrus.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recover(logger, catalog), middleware.Logging(logger))

	// Public routes
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/guest-login", h.GuestLogin).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg, catalog))
	owner := middleware.OwnerOnly(catalog)

	authRouter.HandleFunc("/me", h.Me).Methods("GET")
	authRouter.Handle("/me/settings", owner(http.HandlerFunc(h.UpdateSettings))).Methods("PUT")
	authRouter.Handle("/guest-code", owner(http.HandlerFunc(h.CreateGuestCode))).Methods("POST")
	authRouter.Handle("/guest-code", owner(http.HandlerFunc(h.RevokeGuestCode))).Methods("DELETE")

	authRouter.HandleFunc("/payments", h.ListPayments).Methods("GET")
	authRouter.Handle("/payments", owner(http.HandlerFunc(h.CreatePayment))).Methods("POST")
	authRouter.Handle("/payments/{id}", owner(http.HandlerFunc(h.UpdatePayment))).Methods("PUT")
	authRouter.Handle("/payments/{id}", owner(http.HandlerFunc(h.DeletePayment))).Methods("DELETE")

	authRouter.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	authRouter.Handle("/expenses", owner(http.HandlerFunc(h.CreateExpense))).Methods("POST")
	authRouter.Handle("/expenses/{id}", owner(http.HandlerFunc(h.UpdateExpense))).Methods("PUT")
	authRouter.Handle("/expenses/{id}", owner(http.HandlerFunc(h.DeleteExpense))).Methods("DELETE")

	authRouter.HandleFunc("/groups", h.ListGroups).Methods("GET")
	authRouter.Handle("/groups", owner(http.HandlerFunc(h.CreateGroup))).Methods("POST")
	authRouter.Handle("/groups/{id}", owner(http.HandlerFunc(h.DeleteGroup))).Methods("DELETE")

	authRouter.HandleFunc("/payment-status", h.PaymentStatus).Methods("GET")
	authRouter.HandleFunc("/reports/months", h.AvailableMonths).Methods("GET")
	authRouter.HandleFunc("/reports/summary", h.MonthlySummary).Methods("GET")
	authRouter.HandleFunc("/reports/payments", h.PaymentReport).Methods("GET")
	authRouter.HandleFunc("/reports/payments/export", h.ExportPayments).Methods("GET")
	authRouter.HandleFunc("/reports/expenses", h.ExpenseReport).Methods("GET")
	authRouter.HandleFunc("/reports/analysis", h.Analyze).Methods("POST")
	authRouter.HandleFunc("/generate", h.Generate).Methods("POST")

	return middleware.CORS(cfg.AllowedOrigins)(r)
}

// Health reports whether the storage backend answers
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.svc.Ping(ctx); err != nil {
		h.log.WithError(err).Error("health probe failed")
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
