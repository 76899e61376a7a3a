// Package api exposes the dashboard's JSON API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/broadcast"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/deliveries"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/licenses"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/payments"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/settings"
	"github.com/dairygo6311/Babu-jijaji/internal/infra/metrics"
	"github.com/dairygo6311/Babu-jijaji/internal/infra/notify"
	"github.com/dairygo6311/Babu-jijaji/internal/reports"
	"github.com/dairygo6311/Babu-jijaji/internal/session"
)

type API struct {
	log      *slog.Logger
	met      *metrics.Set
	custs    *customers.Service
	delivs   *deliveries.Service
	ledger   *payments.Ledger
	auth     *licenses.Authority
	settings *settings.Service
	bcast    *broadcast.Service
	reports  *reports.Builder
	notifier *notify.Telegram
	gate     *session.Gatekeeper
	keys     session.KeyStore
}

func New(log *slog.Logger, met *metrics.Set,
	custs *customers.Service, delivs *deliveries.Service, ledger *payments.Ledger,
	auth *licenses.Authority, st *settings.Service, bcast *broadcast.Service,
	rep *reports.Builder, notifier *notify.Telegram,
	gate *session.Gatekeeper, keys session.KeyStore) *API {

	return &API{
		log: log, met: met,
		custs: custs, delivs: delivs, ledger: ledger,
		auth: auth, settings: st, bcast: bcast,
		reports: rep, notifier: notifier,
		gate: gate, keys: keys,
	}
}

func (a *API) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/dashboard", a.handleDashboard)

	r.Route("/session", func(r chi.Router) {
		r.Get("/", a.handleSessionState)
		r.Post("/signin", a.handleSignIn)
		r.Post("/signout", a.handleSignOut)
		r.Post("/activate", a.handleActivate)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", a.handleListCustomers)
		r.Post("/", a.handleCreateCustomer)
		r.Get("/{id}", a.handleGetCustomer)
		r.Put("/{id}", a.handleUpdateCustomer)
		r.Delete("/{id}", a.handleDeleteCustomer)
	})

	r.Route("/deliveries", func(r chi.Router) {
		r.Get("/", a.handleDailyView)
		r.Post("/", a.handleRecordDecision)
		r.Delete("/", a.handleResetDecision)
		r.Get("/rollup", a.handleRollup)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Get("/", a.handleMonthlySummary)
		r.Post("/", a.handleApplyPayment)
		r.Post("/reminders", a.handleSendReminders)
		r.Post("/reminders/{customerID}", a.handleSendReminder)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/monthly.xlsx", a.handleMonthlyReport)
		r.Post("/statement", a.handleSendStatement)
	})

	r.Route("/broadcast", func(r chi.Router) {
		r.Post("/", a.handleBroadcast)
		r.Get("/history", a.handleBroadcastHistory)
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", a.handleGetSettings)
		r.Put("/", a.handleUpdateSettings)
	})

	r.Route("/licenses", func(r chi.Router) {
		r.Get("/", a.handleListLicenses)
		r.Post("/", a.handleIssueLicense)
		r.Get("/stats", a.handleLicenseStats)
		r.Post("/verify", a.handleVerifyLicense)
		r.Post("/{id}/deactivate", a.handleDeactivateLicense)
		r.Delete("/{id}", a.handleDeleteLicense)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError keeps user-visible failures to a single line.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// fail maps domain errors onto HTTP codes; unexpected ones are logged
// and reported generically.
func (a *API) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, customers.ErrNotFound),
		errors.Is(err, deliveries.ErrNotFound),
		errors.Is(err, licenses.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, customers.ErrInvalid),
		errors.Is(err, deliveries.ErrInvalidQuantity),
		errors.Is(err, payments.ErrInvalidAmount),
		errors.Is(err, broadcast.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		a.log.Error(op+" failed", "err", err)
		writeError(w, http.StatusInternalServerError, "operation failed")
	}
}

func decode(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(v)
}
