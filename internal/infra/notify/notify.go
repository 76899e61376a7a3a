// Package notify sends Telegram messages to customers and the admin.
// Sends are best-effort everywhere: callers record data first and treat
// a failed message as a log line, not an error.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/deliveries"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/payments"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/settings"
	"github.com/dairygo6311/Babu-jijaji/internal/infra/metrics"
)

// Sender is the part of the Telegram API the notifier uses; the real
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	api      Sender
	settings *settings.Service
	met      *metrics.Set
	log      *slog.Logger
}

func NewTelegram(api Sender, st *settings.Service, met *metrics.Set, log *slog.Logger) *Telegram {
	return &Telegram{api: api, settings: st, met: met, log: log}
}

func parseChatID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad telegram chat id %q: %w", id, err)
	}
	return n, nil
}

// SendText sends a Markdown text message to the recipient.
func (t *Telegram) SendText(_ context.Context, chatID string, text string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.api.Send(msg); err != nil {
		t.met.NotificationsFailed.Inc()
		return err
	}
	t.met.NotificationsSent.Inc()
	return nil
}

// SendPhoto sends image bytes with an optional caption.
func (t *Telegram) SendPhoto(_ context.Context, chatID string, photo []byte, caption string) error {
	id, err := parseChatID(chatID)
	if err != nil {
		return err
	}
	msg := tgbotapi.NewPhoto(id, tgbotapi.FileBytes{Name: "photo.jpg", Bytes: photo})
	msg.Caption = caption
	if _, err := t.api.Send(msg); err != nil {
		t.met.NotificationsFailed.Inc()
		return err
	}
	t.met.NotificationsSent.Inc()
	return nil
}

func (t *Telegram) DeliveryRecorded(ctx context.Context, cust *customers.Customer, rec *deliveries.Record) error {
	return t.SendText(ctx, cust.TgChatID, DeliveryMessage(t.settings.Current(), cust, rec))
}

func (t *Telegram) PaymentRecorded(ctx context.Context, cust *customers.Customer, amount, totalPaid, owed float64, month string, status payments.Status) error {
	return t.SendText(ctx, cust.TgChatID, PaymentMessage(t.settings.Current(), cust.Name, month, amount, totalPaid, owed, status))
}

func (t *Telegram) PaymentCompleted(ctx context.Context, cust *customers.Customer, owed float64, month string) error {
	return t.SendText(ctx, cust.TgChatID, PaymentCompleteMessage(t.settings.Current(), cust.Name, month, owed))
}

func (t *Telegram) PaymentReminder(ctx context.Context, cust *customers.Customer, owed, paid, balance float64, month string) error {
	return t.SendText(ctx, cust.TgChatID, PaymentReminderMessage(t.settings.Current(), cust.Name, month, owed, paid, balance))
}

func (t *Telegram) CustomerRegistered(ctx context.Context, cust *customers.Customer) error {
	return t.SendText(ctx, cust.TgChatID, RegistrationMessage(t.settings.Current(), cust))
}

func (t *Telegram) CustomerUpdated(ctx context.Context, cust *customers.Customer) error {
	return t.SendText(ctx, cust.TgChatID, UpdateMessage(t.settings.Current(), cust))
}

func (t *Telegram) MonthlyStatement(ctx context.Context, cust *customers.Customer, roll *deliveries.Rollup) error {
	return t.SendText(ctx, cust.TgChatID, MonthlyReportMessage(t.settings.Current(), cust, roll))
}
