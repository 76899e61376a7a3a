package customers

import "time"

type Schedule string

const (
	ScheduleNone    Schedule = ""
	ScheduleMorning Schedule = "morning-only"
	ScheduleEvening Schedule = "evening-only"
	ScheduleBoth    Schedule = "both"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Customer struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Rate        float64   `json:"rate"`
	Schedule    Schedule  `json:"delivery_schedule"`
	DailyQty    *float64  `json:"daily_qty,omitempty"` // legacy field, implies morning delivery
	MorningQty  float64   `json:"morning_qty"`
	MorningTime string    `json:"morning_time"`
	EveningQty  float64   `json:"evening_qty"`
	EveningTime string    `json:"evening_time"`
	Address     string    `json:"address"`
	TgChatID    string    `json:"tg_chat_id"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeliversMorning reports whether the customer takes a morning slot.
// Customers created before schedules existed carry only daily_qty and
// default to morning.
func (c *Customer) DeliversMorning() bool {
	if c.Schedule == ScheduleMorning || c.Schedule == ScheduleBoth {
		return true
	}
	return c.Schedule == ScheduleNone && c.DailyQty != nil
}

func (c *Customer) DeliversEvening() bool {
	return c.Schedule == ScheduleEvening || c.Schedule == ScheduleBoth
}

// DefaultQty is the configured quantity for a slot, used while a day is
// still undecided.
func (c *Customer) DefaultQty(slot string) float64 {
	if slot == "evening" {
		return c.EveningQty
	}
	if c.MorningQty > 0 {
		return c.MorningQty
	}
	if c.DailyQty != nil {
		return *c.DailyQty
	}
	return 1
}
