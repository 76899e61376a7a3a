package customers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliversMorning(t *testing.T) {
	qty := 2.0

	assert.True(t, (&Customer{Schedule: ScheduleMorning}).DeliversMorning())
	assert.True(t, (&Customer{Schedule: ScheduleBoth}).DeliversMorning())
	assert.False(t, (&Customer{Schedule: ScheduleEvening}).DeliversMorning())

	// legacy rows have no schedule, only daily_qty, and mean morning
	assert.True(t, (&Customer{DailyQty: &qty}).DeliversMorning())
	assert.False(t, (&Customer{}).DeliversMorning())
}

func TestDeliversEvening(t *testing.T) {
	assert.True(t, (&Customer{Schedule: ScheduleEvening}).DeliversEvening())
	assert.True(t, (&Customer{Schedule: ScheduleBoth}).DeliversEvening())
	assert.False(t, (&Customer{Schedule: ScheduleMorning}).DeliversEvening())

	qty := 2.0
	assert.False(t, (&Customer{DailyQty: &qty}).DeliversEvening())
}

func TestDefaultQty(t *testing.T) {
	legacy := 1.5
	c := &Customer{MorningQty: 2, EveningQty: 3, DailyQty: &legacy}

	assert.Equal(t, 2.0, c.DefaultQty("morning"))
	assert.Equal(t, 3.0, c.DefaultQty("evening"))

	// no morning qty falls back to the legacy field
	c.MorningQty = 0
	assert.Equal(t, 1.5, c.DefaultQty("morning"))

	// nothing configured at all means one unit
	assert.Equal(t, 1.0, (&Customer{}).DefaultQty("morning"))
	assert.Equal(t, 0.0, (&Customer{}).DefaultQty("evening"))
}

func TestValidate(t *testing.T) {
	ok := Customer{Name: "Ramesh", Phone: "9000000001", Rate: 50}
	assert.NoError(t, validate(&ok))
	assert.Equal(t, StatusActive, ok.Status)
	assert.Equal(t, "06:00", ok.MorningTime)
	assert.Equal(t, "18:00", ok.EveningTime)

	for _, bad := range []Customer{
		{Phone: "9000000001", Rate: 50},
		{Name: "Ramesh", Rate: 50},
		{Name: "Ramesh", Phone: "9000000001"},
		{Name: "Ramesh", Phone: "9000000001", Rate: -1},
	} {
		assert.ErrorIs(t, validate(&bad), ErrInvalid)
	}
}
