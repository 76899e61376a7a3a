package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
)

var ErrEmptyMessage = errors.New("broadcast: message is empty")

type Store interface {
	Create(ctx context.Context, e Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}

type CustomerSource interface {
	ListAll(ctx context.Context) ([]customers.Customer, error)
}

// Sender is the notifier slice broadcasts use.
type Sender interface {
	SendText(ctx context.Context, chatID string, text string) error
	SendPhoto(ctx context.Context, chatID string, photo []byte, caption string) error
}

// Service fans a message out to every customer with a Telegram chat id
// and records the batch in history. Individual send failures are
// counted, not fatal.
type Service struct {
	store  Store
	custs  CustomerSource
	sender Sender
	log    *slog.Logger

	// pause between sends, to stay under Telegram's flood limits
	sendDelay time.Duration
}

func NewService(store Store, custs CustomerSource, sender Sender, log *slog.Logger) *Service {
	return &Service{store: store, custs: custs, sender: sender, log: log, sendDelay: time.Second}
}

// Send broadcasts message (with optional photo bytes) and returns the
// recorded history entry.
func (s *Service) Send(ctx context.Context, message string, photo []byte) (*Entry, error) {
	if message == "" && len(photo) == 0 {
		return nil, ErrEmptyMessage
	}
	all, err := s.custs.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	entry := Entry{
		ID:       uuid.NewString(),
		Message:  message,
		HasPhoto: len(photo) > 0,
	}
	for _, c := range all {
		if c.TgChatID == "" {
			continue
		}
		entry.Recipients++
		var sendErr error
		if len(photo) > 0 {
			sendErr = s.sender.SendPhoto(ctx, c.TgChatID, photo, message)
		} else {
			sendErr = s.sender.SendText(ctx, c.TgChatID, message)
		}
		if sendErr != nil {
			entry.Failed++
			s.log.Error("broadcast send failed", "customer_id", c.ID, "err", sendErr)
		} else {
			entry.Sent++
		}
		if s.sendDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.sendDelay):
			}
		}
	}

	if err := s.store.Create(ctx, entry); err != nil {
		// history is cosmetic; the messages are already out
		s.log.Error("broadcast history write failed", "err", err)
	}
	return &entry, nil
}

func (s *Service) History(ctx context.Context) ([]Entry, error) {
	return s.store.ListRecent(ctx, 10)
}
