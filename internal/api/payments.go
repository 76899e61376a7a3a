package api

import (
	"net/http"
	"strconv"
)

func queryID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}

func (a *API) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if !monthRe.MatchString(month) {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	sum, err := a.ledger.MonthlySummary(r.Context(), month)
	if err != nil {
		a.fail(w, "monthly summary", err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

type applyPaymentRequest struct {
	CustomerID int64   `json:"customer_id"`
	Month      string  `json:"month"`
	Amount     float64 `json:"amount"`
	Method     string  `json:"payment_method"`
	Note       string  `json:"payment_note"`
}

func (a *API) handleApplyPayment(w http.ResponseWriter, r *http.Request) {
	var in applyPaymentRequest
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.CustomerID <= 0 || !monthRe.MatchString(in.Month) {
		writeError(w, http.StatusBadRequest, "customer_id and month are required")
		return
	}
	rec, status, err := a.ledger.ApplyPayment(r.Context(), in.CustomerID, in.Month, in.Amount, in.Method, in.Note)
	if err != nil {
		a.fail(w, "apply payment", err)
		return
	}
	a.met.PaymentsRecorded.Inc()
	writeJSON(w, http.StatusOK, map[string]any{"payment": rec, "status": status})
}

func (a *API) handleSendReminders(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if !monthRe.MatchString(month) {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	sent, err := a.ledger.SendReminders(r.Context(), month)
	if err != nil {
		a.fail(w, "send reminders", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"sent": sent})
}

func (a *API) handleSendReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "customerID")
	month := r.URL.Query().Get("month")
	if !ok || !monthRe.MatchString(month) {
		writeError(w, http.StatusBadRequest, "customer id and month are required")
		return
	}
	if err := a.ledger.SendReminder(r.Context(), id, month); err != nil {
		a.fail(w, "send reminder", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"sent": true})
}
