package payments

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/deliveries"
)

var ErrInvalidAmount = errors.New("payments: amount must be positive")

type Store interface {
	Get(ctx context.Context, customerID int64, month string) (*Record, error)
	Upsert(ctx context.Context, rec Record) (*Record, error)
	ListByMonth(ctx context.Context, month string) ([]Record, error)
}

type DeliverySource interface {
	ListByCustomerMonth(ctx context.Context, customerID int64, month string) ([]deliveries.Record, error)
	ListByMonth(ctx context.Context, month string) ([]deliveries.Record, error)
}

type CustomerSource interface {
	Get(ctx context.Context, id int64) (*customers.Customer, error)
	ListAll(ctx context.Context) ([]customers.Customer, error)
}

// Notifier is the payment side of the Telegram notifier. Failures are
// logged and swallowed: a missed message never rolls back a recorded
// payment.
type Notifier interface {
	PaymentRecorded(ctx context.Context, cust *customers.Customer, amount, totalPaid, owed float64, month string, status Status) error
	PaymentCompleted(ctx context.Context, cust *customers.Customer, owed float64, month string) error
	PaymentReminder(ctx context.Context, cust *customers.Customer, owed, paid, balance float64, month string) error
}

// Ledger computes what each customer owes for a month and records
// incremental payments against it. Owed is always recomputed from
// delivery rows; only the paid side is stored.
type Ledger struct {
	store  Store
	delivs DeliverySource
	custs  CustomerSource
	notify Notifier
	log    *slog.Logger
	now    func() time.Time
}

func NewLedger(store Store, delivs DeliverySource, custs CustomerSource, notify Notifier, log *slog.Logger) *Ledger {
	return &Ledger{store: store, delivs: delivs, custs: custs, notify: notify, log: log, now: time.Now}
}

// ComputeOwed sums amounts over delivered records for the month.
// Skipped records never contribute, whatever their stored quantity.
func (l *Ledger) ComputeOwed(ctx context.Context, customerID int64, month string) (float64, error) {
	recs, err := l.delivs.ListByCustomerMonth(ctx, customerID, month)
	if err != nil {
		return 0, err
	}
	var owed float64
	for _, rec := range recs {
		if rec.Status == deliveries.StatusDelivered {
			owed += rec.Amount
		}
	}
	return owed, nil
}

// ApplyPayment adds amount to the customer's cumulative paid total for
// the month and snapshots owed at save time. Returns the updated record
// and its new status.
func (l *Ledger) ApplyPayment(ctx context.Context, customerID int64, month string, amount float64, method, note string) (*Record, Status, error) {
	if amount <= 0 {
		return nil, "", ErrInvalidAmount
	}
	cust, err := l.custs.Get(ctx, customerID)
	if err != nil {
		return nil, "", err
	}
	owed, err := l.ComputeOwed(ctx, customerID, month)
	if err != nil {
		return nil, "", err
	}
	existing, err := l.store.Get(ctx, customerID, month)
	if err != nil {
		return nil, "", err
	}
	var prevPaid float64
	if existing != nil {
		prevPaid = existing.PaidAmount
	}

	rec := Record{
		CustomerID:  customerID,
		Month:       month,
		PaidAmount:  prevPaid + amount,
		TotalAmount: owed,
		LastPayment: amount,
		Method:      method,
		PaymentDate: l.now().Format("2006-01-02"),
	}
	if note != "" {
		rec.Note = &note
	}
	saved, err := l.store.Upsert(ctx, rec)
	if err != nil {
		return nil, "", err
	}

	status := StatusOf(owed, saved.PaidAmount)
	if cust.TgChatID != "" && l.notify != nil {
		if err := l.notify.PaymentRecorded(ctx, cust, amount, saved.PaidAmount, owed, month, status); err != nil {
			l.log.Error("payment notification failed", "customer_id", customerID, "err", err)
		}
		if status == StatusPaid {
			if err := l.notify.PaymentCompleted(ctx, cust, owed, month); err != nil {
				l.log.Error("payment completion notification failed", "customer_id", customerID, "err", err)
			}
		}
	}
	return saved, status, nil
}

// MonthlySummary builds the payment board: one row per customer with
// fresh owed totals, plus the aggregate counters.
func (l *Ledger) MonthlySummary(ctx context.Context, month string) (*Summary, error) {
	custs, err := l.custs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	delivs, err := l.delivs.ListByMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	paysList, err := l.store.ListByMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[int64][]deliveries.Record)
	for _, d := range delivs {
		byCustomer[d.CustomerID] = append(byCustomer[d.CustomerID], d)
	}
	payByCustomer := make(map[int64]*Record, len(paysList))
	for i := range paysList {
		payByCustomer[paysList[i].CustomerID] = &paysList[i]
	}

	sum := &Summary{Month: month}
	for _, c := range custs {
		row := CustomerMonth{Customer: c}
		for _, d := range byCustomer[c.ID] {
			switch d.Status {
			case deliveries.StatusDelivered:
				row.DaysDelivered++
				row.TotalMilk += d.Qty
				row.Owed += d.Amount
			case deliveries.StatusSkipped:
				row.DaysSkipped++
			}
		}
		if p := payByCustomer[c.ID]; p != nil {
			row.Paid = p.PaidAmount
			row.PaymentDate = p.PaymentDate
		}
		row.Balance = row.Owed - row.Paid
		row.Status = StatusOf(row.Owed, row.Paid)

		sum.Rows = append(sum.Rows, row)
		sum.TotalOwed += row.Owed
		sum.TotalPaid += row.Paid
		sum.TotalMilk += row.TotalMilk
		switch row.Status {
		case StatusPaid:
			sum.PaidCount++
		case StatusPartial:
			sum.PartialCount++
		case StatusPending:
			sum.PendingCount++
		}
	}
	sum.TotalBalance = sum.TotalOwed - sum.TotalPaid
	return sum, nil
}

// SendReminders notifies every pending or partial customer that has a
// Telegram chat id. Returns how many reminders went out.
func (l *Ledger) SendReminders(ctx context.Context, month string) (int, error) {
	sum, err := l.MonthlySummary(ctx, month)
	if err != nil {
		return 0, err
	}
	sent := 0
	for i := range sum.Rows {
		row := &sum.Rows[i]
		if row.Status == StatusPaid || row.Customer.TgChatID == "" || row.Owed == 0 {
			continue
		}
		if err := l.notify.PaymentReminder(ctx, &row.Customer, row.Owed, row.Paid, row.Balance, month); err != nil {
			l.log.Error("payment reminder failed", "customer_id", row.Customer.ID, "err", err)
			continue
		}
		sent++
	}
	return sent, nil
}

// SendReminder sends one customer their current balance for the month.
func (l *Ledger) SendReminder(ctx context.Context, customerID int64, month string) error {
	cust, err := l.custs.Get(ctx, customerID)
	if err != nil {
		return err
	}
	if cust.TgChatID == "" {
		return errors.New("payments: customer has no telegram chat id")
	}
	owed, err := l.ComputeOwed(ctx, customerID, month)
	if err != nil {
		return err
	}
	var paid float64
	if rec, err := l.store.Get(ctx, customerID, month); err != nil {
		return err
	} else if rec != nil {
		paid = rec.PaidAmount
	}
	return l.notify.PaymentReminder(ctx, cust, owed, paid, owed-paid, month)
}
