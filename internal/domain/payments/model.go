package payments

import (
	"time"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusPaid    Status = "paid"
)

// StatusOf classifies a month. Nothing paid is pending even when
// nothing is owed; that keeps a customer with no deliveries yet out of
// the "paid" bucket.
func StatusOf(owed, paid float64) Status {
	if paid == 0 {
		return StatusPending
	}
	if paid >= owed {
		return StatusPaid
	}
	return StatusPartial
}

// Record is the cumulative payment state for one customer-month.
// paid_amount only ever grows; total_amount is the owed snapshot taken
// at the last save.
type Record struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	Month       string    `json:"month"` // YYYY-MM
	PaidAmount  float64   `json:"paid_amount"`
	TotalAmount float64   `json:"total_amount"`
	LastPayment float64   `json:"last_payment_amount"`
	Method      string    `json:"payment_method"`
	Note        *string   `json:"payment_note,omitempty"`
	PaymentDate string    `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomerMonth is one row of the monthly payment board.
type CustomerMonth struct {
	Customer      customers.Customer `json:"customer"`
	TotalMilk     float64            `json:"total_milk"`
	Owed          float64            `json:"owed"`
	Paid          float64            `json:"paid"`
	Balance       float64            `json:"balance"`
	DaysDelivered int                `json:"days_delivered"`
	DaysSkipped   int                `json:"days_skipped"`
	Status        Status             `json:"status"`
	PaymentDate   string             `json:"payment_date,omitempty"`
}

// Summary is the dashboard aggregate across all customers for a month.
type Summary struct {
	Month        string          `json:"month"`
	Rows         []CustomerMonth `json:"rows"`
	TotalOwed    float64         `json:"total_owed"`
	TotalPaid    float64         `json:"total_paid"`
	TotalBalance float64         `json:"total_balance"`
	TotalMilk    float64         `json:"total_milk"`
	PaidCount    int             `json:"paid_count"`
	PartialCount int             `json:"partial_count"`
	PendingCount int             `json:"pending_count"`
}
