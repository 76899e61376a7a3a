package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
)

type fakeStore struct {
	entries   []Entry
	createErr error
}

func (f *fakeStore) Create(_ context.Context, e Entry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeStore) ListRecent(_ context.Context, limit int) ([]Entry, error) {
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

type fakeCustomers struct{ list []customers.Customer }

func (f *fakeCustomers) ListAll(_ context.Context) ([]customers.Customer, error) {
	return f.list, nil
}

type fakeSender struct {
	texts  []string // chat ids that got a text
	photos []string
	fail   map[string]bool
}

func (f *fakeSender) SendText(_ context.Context, chatID string, _ string) error {
	if f.fail[chatID] {
		return errors.New("blocked by user")
	}
	f.texts = append(f.texts, chatID)
	return nil
}

func (f *fakeSender) SendPhoto(_ context.Context, chatID string, _ []byte, _ string) error {
	if f.fail[chatID] {
		return errors.New("blocked by user")
	}
	f.photos = append(f.photos, chatID)
	return nil
}

func newTestService(store *fakeStore, sender *fakeSender, custs ...customers.Customer) *Service {
	s := NewService(store, &fakeCustomers{list: custs}, sender, slog.Default())
	s.sendDelay = 0
	return s
}

func TestSendRejectsEmpty(t *testing.T) {
	s := newTestService(&fakeStore{}, &fakeSender{})
	_, err := s.Send(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendSkipsCustomersWithoutChatID(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	s := newTestService(store, sender,
		customers.Customer{ID: 1, TgChatID: "11"},
		customers.Customer{ID: 2},
		customers.Customer{ID: 3, TgChatID: "33"},
	)

	entry, err := s.Send(context.Background(), "Holi par dukan band rahegi", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Recipients)
	assert.Equal(t, 2, entry.Sent)
	assert.Equal(t, 0, entry.Failed)
	assert.ElementsMatch(t, []string{"11", "33"}, sender.texts)
	require.Len(t, store.entries, 1)
}

func TestSendCountsFailures(t *testing.T) {
	sender := &fakeSender{fail: map[string]bool{"22": true}}
	s := newTestService(&fakeStore{}, sender,
		customers.Customer{ID: 1, TgChatID: "11"},
		customers.Customer{ID: 2, TgChatID: "22"},
	)

	entry, err := s.Send(context.Background(), "namaste", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Recipients)
	assert.Equal(t, 1, entry.Sent)
	assert.Equal(t, 1, entry.Failed)
}

func TestSendPhotoPath(t *testing.T) {
	sender := &fakeSender{}
	s := newTestService(&fakeStore{}, sender, customers.Customer{ID: 1, TgChatID: "11"})

	entry, err := s.Send(context.Background(), "naya rate card", []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.True(t, entry.HasPhoto)
	assert.Equal(t, []string{"11"}, sender.photos)
	assert.Empty(t, sender.texts)
}

func TestSendSurvivesHistoryFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("db down")}
	s := newTestService(store, &fakeSender{}, customers.Customer{ID: 1, TgChatID: "11"})

	entry, err := s.Send(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Sent)
}
