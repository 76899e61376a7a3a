package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/deliveries"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/payments"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/settings"
)

// The customer-facing texts mix Hindi and English the way the business
// writes to its customers. Branding comes from settings so a renamed
// dairy does not need a redeploy.

func slotLabel(slot deliveries.Slot) (emoji, text string) {
	if slot == deliveries.SlotEvening {
		return "🌆", "शाम (Evening)"
	}
	return "🌅", "सुबह (Morning)"
}

func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02 Jan 2006")
}

func monthName(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}

func header(s settings.Settings) string {
	return fmt.Sprintf("🥛 *%s %s*", s.ProjectName, s.BusinessType)
}

func footer(s settings.Settings) string {
	return fmt.Sprintf("📞 किसी भी प्रश्न के लिए: *%s*\n\n🙏 *धन्यवाद!*\n*%s %s* 🥛", s.ContactNumber, s.ProjectName, s.BusinessType)
}

func DeliveryMessage(s settings.Settings, cust *customers.Customer, rec *deliveries.Record) string {
	emoji, slotText := slotLabel(rec.Slot)
	if rec.Status == deliveries.StatusDelivered {
		return fmt.Sprintf(
			"%s\n───────────────────\n\n🙏 नमस्ते *%s जी*!\n\n✅ आज की %s डिलीवरी पूरी हो गई\n\n%s *डिलीवरी का विवरण:*\n📅 तारीख: %s\n🥛 मात्रा: *%.1f लीटर*\n💰 रेट: ₹%.0f/लीटर\n💸 कुल राशि: *₹%.0f*\n\n───────────────────\n%s",
			header(s), cust.Name, slotText, emoji, formatDate(rec.Date), rec.Qty, rec.Rate, rec.Amount, footer(s))
	}
	return fmt.Sprintf(
		"%s\n───────────────────\n\n🙏 नमस्ते *%s जी*!\n\n⚠️ आज की %s डिलीवरी *रद्द* कर दी गई\n\n%s *विवरण:*\n📅 तारीख: %s\n\n───────────────────\n%s",
		header(s), cust.Name, slotText, emoji, formatDate(rec.Date), footer(s))
}

func RegistrationMessage(s settings.Settings, cust *customers.Customer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n🎉 नमस्कार %s!\n\nआपका registration हमारे %s %s में हो गया है! ✅\n\n",
		header(s), cust.Name, s.ProjectName, s.BusinessType)
	fmt.Fprintf(&b, "📋 आपकी Details:\n👤 नाम: %s\n📱 मोबाइल: %s\n💰 Rate: ₹%.0f/L\n", cust.Name, cust.Phone, cust.Rate)
	if cust.Address != "" {
		fmt.Fprintf(&b, "📍 Address: %s\n", cust.Address)
	}
	fmt.Fprintf(&b, "📊 Status: %s\n\n", cust.Status)
	fmt.Fprintf(&b, "🌟 %s %s की तरफ से आपका हार्दिक स्वागत है!\n\n%s", s.ProjectName, s.BusinessType, footer(s))
	return b.String()
}

func UpdateMessage(s settings.Settings, cust *customers.Customer) string {
	return fmt.Sprintf(
		"%s\n\n🙏 नमस्ते %s जी!\n\nआपकी details update हो गई हैं ✅\n\n💰 Rate: ₹%.0f/L\n📊 Status: %s\n\n%s",
		header(s), cust.Name, cust.Rate, cust.Status, footer(s))
}

func PaymentMessage(s settings.Settings, name, month string, amount, totalPaid, owed float64, status payments.Status) string {
	return fmt.Sprintf(
		"%s\n\n💰 %s\n\n%s का payment received!\n\n✅ Received: ₹%.0f\n📊 Total Paid: ₹%.0f\n💸 Total Amount: ₹%.0f\n📋 %s\n\n%s",
		header(s), name, monthName(month), amount, totalPaid, owed, status, footer(s))
}

func PaymentCompleteMessage(s settings.Settings, name, month string, owed float64) string {
	return fmt.Sprintf(
		"%s\n\n🎉 %s जी, %s का पूरा payment हो गया!\n\n💸 Total: ₹%.0f\n✅ Status: PAID\n\n%s",
		header(s), name, monthName(month), owed, footer(s))
}

func PaymentReminderMessage(s settings.Settings, name, month string, owed, paid, balance float64) string {
	return fmt.Sprintf(
		"%s\n\n🙏 नमस्ते %s जी!\n\n💰 %s का payment बाकी है\n\n💸 Total Amount: ₹%.0f\n✅ Paid: ₹%.0f\n📌 Balance: *₹%.0f*\n\nकृपया जल्द से जल्द payment करें।\n\n%s",
		header(s), name, monthName(month), owed, paid, balance, footer(s))
}

func MonthlyReportMessage(s settings.Settings, cust *customers.Customer, roll *deliveries.Rollup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n📄 %s Report – %s\n\n", header(s), monthName(roll.Month), cust.Name)
	fmt.Fprintf(&b, "📊 Summary:\n• कुल दिन Delivered: %d\n• कुल दिन Skipped: %d\n• Total Quantity: %.1f L\n• Total Amount: ₹%.0f\n",
		roll.DaysDelivered, roll.DaysSkipped, roll.TotalQty, roll.TotalAmount)

	var delivered, skipped []deliveries.Record
	for _, rec := range roll.Records {
		if rec.Status == deliveries.StatusDelivered {
			delivered = append(delivered, rec)
		} else {
			skipped = append(skipped, rec)
		}
	}
	if len(delivered) > 0 {
		b.WriteString("\n📅 Delivery Details:\n")
		for _, rec := range delivered {
			emoji, _ := slotLabel(rec.Slot)
			fmt.Fprintf(&b, "%s %s: %.1fL - ₹%.0f\n", formatDate(rec.Date), emoji, rec.Qty, rec.Amount)
		}
	}
	if len(skipped) > 0 {
		b.WriteString("\n❌ Skipped Days:\n")
		for _, rec := range skipped {
			emoji, _ := slotLabel(rec.Slot)
			fmt.Fprintf(&b, "%s %s: Skipped\n", formatDate(rec.Date), emoji)
		}
	}
	fmt.Fprintf(&b, "\n%s", footer(s))
	return b.String()
}
