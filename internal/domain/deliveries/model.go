package deliveries

import (
	"time"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
)

type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
)

type Status string

const (
	StatusDelivered Status = "delivered"
	StatusSkipped   Status = "skipped"
)

// Record is one decided slot: it exists only once a delivered/skipped
// decision was made. An absent row means the slot is still undecided.
type Record struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Slot       Slot      `json:"time_slot"`
	Qty        float64   `json:"qty"`
	Rate       float64   `json:"rate"` // frozen at decision time
	Amount     float64   `json:"amount"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SlotState is the tri-state a slot can be in for display. Undecided is
// an explicit variant rather than a missing record, so callers never
// branch on nil.
type SlotState string

const (
	SlotUndecided SlotState = "pending"
	SlotDelivered SlotState = "delivered"
	SlotSkipped   SlotState = "skipped"
)

// DailyItem is one row of the daily delivery board: a customer-slot
// pair with its current state and the quantity/amount that apply.
type DailyItem struct {
	Customer customers.Customer `json:"customer"`
	Slot     Slot               `json:"time_slot"`
	State    SlotState          `json:"status"`
	Qty      float64            `json:"qty"`
	Amount   float64            `json:"amount"`
	RecordID int64              `json:"record_id,omitempty"`
}

// DayEntry is one calendar day in a monthly matrix.
type DayEntry struct {
	Day    int       `json:"day"`
	Date   string    `json:"date"`
	Slot   Slot      `json:"time_slot,omitempty"`
	State  SlotState `json:"status"`
	Qty    float64   `json:"qty"`
	Amount float64   `json:"amount"`
}

// Rollup is the month summary for one customer. Sums cover delivered
// records only.
type Rollup struct {
	CustomerID    int64      `json:"customer_id"`
	Month         string     `json:"month"`
	TotalQty      float64    `json:"total_qty"`
	TotalAmount   float64    `json:"total_amount"`
	DaysDelivered int        `json:"days_delivered"`
	DaysSkipped   int        `json:"days_skipped"`
	Days          []DayEntry `json:"days"`
	Records       []Record   `json:"records"`
}
