package api

import (
	"net/http"
	"regexp"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/deliveries"
)

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

func validSlot(s string) bool {
	return s == string(deliveries.SlotMorning) || s == string(deliveries.SlotEvening)
}

func (a *API) handleDailyView(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if !dateRe.MatchString(date) {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	items, err := a.delivs.DailyView(r.Context(), date)
	if err != nil {
		a.fail(w, "daily view", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type recordDecisionRequest struct {
	CustomerID int64   `json:"customer_id"`
	Date       string  `json:"date"`
	Slot       string  `json:"time_slot"`
	Qty        float64 `json:"qty"`
	Decision   string  `json:"decision"` // delivered | skipped
}

func (a *API) handleRecordDecision(w http.ResponseWriter, r *http.Request) {
	var in recordDecisionRequest
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.CustomerID <= 0 || !dateRe.MatchString(in.Date) || !validSlot(in.Slot) {
		writeError(w, http.StatusBadRequest, "customer_id, date and time_slot are required")
		return
	}

	var (
		rec *deliveries.Record
		err error
	)
	switch in.Decision {
	case string(deliveries.StatusDelivered):
		rec, err = a.delivs.RecordDelivered(r.Context(), in.CustomerID, in.Date, deliveries.Slot(in.Slot), in.Qty)
	case string(deliveries.StatusSkipped):
		rec, err = a.delivs.RecordSkipped(r.Context(), in.CustomerID, in.Date, deliveries.Slot(in.Slot))
	default:
		writeError(w, http.StatusBadRequest, "decision must be delivered or skipped")
		return
	}
	if err != nil {
		a.fail(w, "record decision", err)
		return
	}
	a.met.DeliveriesRecorded.WithLabelValues(string(rec.Status)).Inc()
	writeJSON(w, http.StatusOK, rec)
}

func (a *API) handleResetDecision(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, ok := queryID(q.Get("customer_id"))
	date := q.Get("date")
	slot := q.Get("time_slot")
	if !ok || !dateRe.MatchString(date) || !validSlot(slot) {
		writeError(w, http.StatusBadRequest, "customer_id, date and time_slot are required")
		return
	}
	if err := a.delivs.ResetDecision(r.Context(), id, date, deliveries.Slot(slot)); err != nil {
		a.fail(w, "reset decision", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

func (a *API) handleRollup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, ok := queryID(q.Get("customer_id"))
	month := q.Get("month")
	if !ok || !monthRe.MatchString(month) {
		writeError(w, http.StatusBadRequest, "customer_id and month are required")
		return
	}
	roll, err := a.delivs.MonthlyRollup(r.Context(), id, month)
	if err != nil {
		a.fail(w, "monthly rollup", err)
		return
	}
	writeJSON(w, http.StatusOK, roll)
}
