package deliveries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
)

var ErrInvalidQuantity = errors.New("deliveries: quantity must be positive")

// Store is the slice of the repo the aggregator needs.
type Store interface {
	Upsert(ctx context.Context, rec Record) (*Record, error)
	DeleteByKey(ctx context.Context, customerID int64, date string, slot Slot) error
	ListByDate(ctx context.Context, date string) ([]Record, error)
	ListByCustomerMonth(ctx context.Context, customerID int64, month string) ([]Record, error)
}

type CustomerSource interface {
	Get(ctx context.Context, id int64) (*customers.Customer, error)
	ListActive(ctx context.Context) ([]customers.Customer, error)
}

// Notifier tells the customer about a recorded decision. A send failure
// never affects the stored record.
type Notifier interface {
	DeliveryRecorded(ctx context.Context, cust *customers.Customer, rec *Record) error
}

// Service computes per-slot delivery state for a day and rolls records
// into monthly summaries.
type Service struct {
	store  Store
	custs  CustomerSource
	notify Notifier
	log    *slog.Logger
}

func NewService(store Store, custs CustomerSource, notify Notifier, log *slog.Logger) *Service {
	return &Service{store: store, custs: custs, notify: notify, log: log}
}

// RecordDelivered upserts a delivered decision. The rate is the
// customer's rate right now; it stays frozen on the record afterwards.
func (s *Service) RecordDelivered(ctx context.Context, customerID int64, date string, slot Slot, qty float64) (*Record, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	cust, err := s.custs.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.Upsert(ctx, Record{
		CustomerID: customerID,
		Date:       date,
		Slot:       slot,
		Qty:        qty,
		Rate:       cust.Rate,
		Amount:     qty * cust.Rate,
		Status:     StatusDelivered,
	})
	if err != nil {
		return nil, err
	}
	s.notifyRecorded(ctx, cust, rec)
	return rec, nil
}

// RecordSkipped upserts a skipped decision. Quantity is fixed at zero.
func (s *Service) RecordSkipped(ctx context.Context, customerID int64, date string, slot Slot) (*Record, error) {
	cust, err := s.custs.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.Upsert(ctx, Record{
		CustomerID: customerID,
		Date:       date,
		Slot:       slot,
		Qty:        0,
		Rate:       cust.Rate,
		Amount:     0,
		Status:     StatusSkipped,
	})
	if err != nil {
		return nil, err
	}
	s.notifyRecorded(ctx, cust, rec)
	return rec, nil
}

func (s *Service) notifyRecorded(ctx context.Context, cust *customers.Customer, rec *Record) {
	if s.notify == nil || cust.TgChatID == "" {
		return
	}
	if err := s.notify.DeliveryRecorded(ctx, cust, rec); err != nil {
		s.log.Error("delivery notification failed", "customer_id", cust.ID, "err", err)
	}
}

// ResetDecision deletes the record, returning the slot to undecided.
func (s *Service) ResetDecision(ctx context.Context, customerID int64, date string, slot Slot) error {
	return s.store.DeleteByKey(ctx, customerID, date, slot)
}

// DailyView lists every active customer crossed with every slot their
// schedule implies, with the current state of each slot for the date.
func (s *Service) DailyView(ctx context.Context, date string) ([]DailyItem, error) {
	custs, err := s.custs.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	recs, err := s.store.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	type key struct {
		customer int64
		slot     Slot
	}
	byKey := make(map[key]*Record, len(recs))
	for i := range recs {
		rec := &recs[i]
		byKey[key{rec.CustomerID, rec.Slot}] = rec
	}

	var out []DailyItem
	for _, c := range custs {
		var slots []Slot
		if c.DeliversMorning() {
			slots = append(slots, SlotMorning)
		}
		if c.DeliversEvening() {
			slots = append(slots, SlotEvening)
		}
		for _, slot := range slots {
			item := DailyItem{Customer: c, Slot: slot}
			if rec, ok := byKey[key{c.ID, slot}]; ok {
				item.State = stateOf(rec.Status)
				item.Qty = rec.Qty
				item.Amount = rec.Amount
				item.RecordID = rec.ID
			} else {
				item.State = SlotUndecided
				item.Qty = c.DefaultQty(string(slot))
				item.Amount = item.Qty * c.Rate
			}
			out = append(out, item)
		}
	}
	return out, nil
}

// MonthlyRollup partitions the customer's records for the month into
// delivered and skipped, sums quantity and amount over delivered only,
// and builds the day-by-day matrix for display.
func (s *Service) MonthlyRollup(ctx context.Context, customerID int64, month string) (*Rollup, error) {
	recs, err := s.store.ListByCustomerMonth(ctx, customerID, month)
	if err != nil {
		return nil, err
	}

	roll := &Rollup{CustomerID: customerID, Month: month, Records: recs}
	byDate := make(map[string][]Record)
	for _, rec := range recs {
		byDate[rec.Date] = append(byDate[rec.Date], rec)
		switch rec.Status {
		case StatusDelivered:
			roll.DaysDelivered++
			roll.TotalQty += rec.Qty
			roll.TotalAmount += rec.Amount
		case StatusSkipped:
			roll.DaysSkipped++
		}
	}

	days, err := daysInMonth(month)
	if err != nil {
		return nil, err
	}
	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%s-%02d", month, day)
		entry := DayEntry{Day: day, Date: date, State: SlotUndecided}
		for _, rec := range byDate[date] {
			if rec.Status == StatusDelivered {
				entry.State = SlotDelivered
				entry.Slot = rec.Slot
				entry.Qty += rec.Qty
				entry.Amount += rec.Amount
			} else if entry.State == SlotUndecided {
				entry.State = SlotSkipped
				entry.Slot = rec.Slot
			}
		}
		roll.Days = append(roll.Days, entry)
	}
	return roll, nil
}

func stateOf(st Status) SlotState {
	if st == StatusDelivered {
		return SlotDelivered
	}
	return SlotSkipped
}

func daysInMonth(month string) (int, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, fmt.Errorf("bad month %q: %w", month, err)
	}
	return t.AddDate(0, 1, -1).Day(), nil
}
