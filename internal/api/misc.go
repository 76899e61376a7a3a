package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/deliveries"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/settings"
)

// handleDashboard rolls today's board and the month's payment totals
// into one payload for the landing page.
func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	month := q.Get("month")
	if month == "" {
		month = date[:7]
	}
	if !dateRe.MatchString(date) || !monthRe.MatchString(month) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD and month YYYY-MM")
		return
	}

	items, err := a.delivs.DailyView(r.Context(), date)
	if err != nil {
		a.fail(w, "dashboard", err)
		return
	}
	var delivered, skipped, pending int
	var todayRevenue, todayMilk float64
	for _, it := range items {
		switch it.State {
		case deliveries.SlotDelivered:
			delivered++
			todayRevenue += it.Amount
			todayMilk += it.Qty
		case deliveries.SlotSkipped:
			skipped++
		default:
			pending++
		}
	}

	sum, err := a.ledger.MonthlySummary(r.Context(), month)
	if err != nil {
		a.fail(w, "dashboard", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":            date,
		"month":           month,
		"slots_total":     len(items),
		"slots_delivered": delivered,
		"slots_skipped":   skipped,
		"slots_pending":   pending,
		"today_milk":      todayMilk,
		"today_revenue":   todayRevenue,
		"month_owed":      sum.TotalOwed,
		"month_paid":      sum.TotalPaid,
		"month_balance":   sum.TotalBalance,
		"pending_count":   sum.PendingCount,
		"partial_count":   sum.PartialCount,
		"paid_count":      sum.PaidCount,
	})
}

func (a *API) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if !monthRe.MatchString(month) {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	data, err := a.reports.Monthly(r.Context(), month)
	if err != nil {
		a.fail(w, "monthly report", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%s.xlsx"`, month))
	_, _ = w.Write(data)
}

type statementRequest struct {
	CustomerID int64  `json:"customer_id"`
	Month      string `json:"month"`
}

// handleSendStatement sends a customer their month's delivery report
// over Telegram.
func (a *API) handleSendStatement(w http.ResponseWriter, r *http.Request) {
	var in statementRequest
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.CustomerID <= 0 || !monthRe.MatchString(in.Month) {
		writeError(w, http.StatusBadRequest, "customer_id and month are required")
		return
	}
	cust, err := a.custs.Get(r.Context(), in.CustomerID)
	if err != nil {
		a.fail(w, "send statement", err)
		return
	}
	if cust.TgChatID == "" {
		writeError(w, http.StatusBadRequest, "customer has no telegram chat id")
		return
	}
	roll, err := a.delivs.MonthlyRollup(r.Context(), in.CustomerID, in.Month)
	if err != nil {
		a.fail(w, "send statement", err)
		return
	}
	if err := a.notifier.MonthlyStatement(r.Context(), cust, roll); err != nil {
		a.fail(w, "send statement", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"sent": true})
}

type broadcastRequest struct {
	Message string `json:"message"`
	Photo   []byte `json:"photo,omitempty"` // base64 in JSON
}

func (a *API) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var in broadcastRequest
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry, err := a.bcast.Send(r.Context(), in.Message, in.Photo)
	if err != nil {
		a.fail(w, "broadcast", err)
		return
	}
	a.met.BroadcastsSent.Inc()
	writeJSON(w, http.StatusOK, entry)
}

func (a *API) handleBroadcastHistory(w http.ResponseWriter, r *http.Request) {
	hist, err := a.bcast.History(r.Context())
	if err != nil {
		a.fail(w, "broadcast history", err)
		return
	}
	writeJSON(w, http.StatusOK, hist)
}

func (a *API) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.settings.Current())
}

func (a *API) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in settings.Settings
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.ProjectName == "" || in.ContactNumber == "" {
		writeError(w, http.StatusBadRequest, "project_name and contact_number are required")
		return
	}
	if err := a.settings.Update(r.Context(), in); err != nil {
		a.fail(w, "update settings", err)
		return
	}
	writeJSON(w, http.StatusOK, a.settings.Current())
}
