package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/deliveries"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/payments"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/settings"
)

func TestDeliveryMessageDelivered(t *testing.T) {
	s := settings.Defaults()
	cust := &customers.Customer{Name: "Ramesh"}
	rec := &deliveries.Record{
		Date: "2026-03-05", Slot: deliveries.SlotMorning,
		Qty: 2, Rate: 50, Amount: 100, Status: deliveries.StatusDelivered,
	}

	msg := DeliveryMessage(s, cust, rec)
	assert.Contains(t, msg, "SUDHA SAGAR")
	assert.Contains(t, msg, "Ramesh")
	assert.Contains(t, msg, "05 Mar 2026")
	assert.Contains(t, msg, "2.0 लीटर")
	assert.Contains(t, msg, "₹100")
	assert.Contains(t, msg, "सुबह (Morning)")
}

func TestDeliveryMessageSkipped(t *testing.T) {
	s := settings.Defaults()
	rec := &deliveries.Record{
		Date: "2026-03-05", Slot: deliveries.SlotEvening, Status: deliveries.StatusSkipped,
	}

	msg := DeliveryMessage(s, &customers.Customer{Name: "Sita"}, rec)
	assert.Contains(t, msg, "रद्द")
	assert.Contains(t, msg, "शाम (Evening)")
	assert.NotContains(t, msg, "कुल राशि")
}

func TestPaymentMessages(t *testing.T) {
	s := settings.Defaults()

	msg := PaymentMessage(s, "Ramesh", "2026-03", 100, 250, 300, payments.StatusPartial)
	assert.Contains(t, msg, "March 2026")
	assert.Contains(t, msg, "₹100")
	assert.Contains(t, msg, "₹250")
	assert.Contains(t, msg, "partial")

	done := PaymentCompleteMessage(s, "Ramesh", "2026-03", 300)
	assert.Contains(t, done, "PAID")

	rem := PaymentReminderMessage(s, "Ramesh", "2026-03", 300, 100, 200)
	assert.Contains(t, rem, "₹200")
	assert.Contains(t, rem, s.ContactNumber)
}

func TestMonthlyReportMessage(t *testing.T) {
	s := settings.Defaults()
	roll := &deliveries.Rollup{
		Month: "2026-03", TotalQty: 4, TotalAmount: 200, DaysDelivered: 2, DaysSkipped: 1,
		Records: []deliveries.Record{
			{Date: "2026-03-01", Slot: deliveries.SlotMorning, Qty: 2, Amount: 100, Status: deliveries.StatusDelivered},
			{Date: "2026-03-02", Slot: deliveries.SlotMorning, Qty: 2, Amount: 100, Status: deliveries.StatusDelivered},
			{Date: "2026-03-03", Slot: deliveries.SlotMorning, Status: deliveries.StatusSkipped},
		},
	}

	msg := MonthlyReportMessage(s, &customers.Customer{Name: "Ramesh"}, roll)
	assert.Contains(t, msg, "March 2026")
	assert.Contains(t, msg, "Delivery Details")
	assert.Contains(t, msg, "Skipped Days")
	assert.Contains(t, msg, "4.0 L")
	assert.Contains(t, msg, "₹200")
}

func TestFormatHelpersPassThroughBadInput(t *testing.T) {
	assert.Equal(t, "not-a-date", formatDate("not-a-date"))
	assert.Equal(t, "not-a-month", monthName("not-a-month"))
}

func TestParseChatID(t *testing.T) {
	id, err := parseChatID("123456789")
	assert.NoError(t, err)
	assert.Equal(t, int64(123456789), id)

	_, err = parseChatID("abc")
	assert.Error(t, err)
}
