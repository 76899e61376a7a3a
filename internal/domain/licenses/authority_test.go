package licenses

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	nextID int64
	byID   map[int64]*License
}

func newMemStore() *memStore { return &memStore{byID: make(map[int64]*License)} }

func (m *memStore) Create(_ context.Context, l License) (*License, error) {
	m.nextID++
	l.ID = m.nextID
	l.CreatedAt = time.Now()
	m.byID[l.ID] = &l
	cp := l
	return &cp, nil
}

func (m *memStore) GetByKey(_ context.Context, key string) (*License, error) {
	for _, l := range m.byID {
		if l.Key == key {
			cp := *l
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) MarkExpired(_ context.Context, id int64) error {
	m.byID[id].Status = StatusExpired
	return nil
}

func (m *memStore) TouchVerified(_ context.Context, id int64) error {
	now := time.Now()
	m.byID[id].UsageCount++
	m.byID[id].LastVerified = &now
	return nil
}

func (m *memStore) Deactivate(_ context.Context, id int64) error {
	now := time.Now()
	m.byID[id].Status = StatusDeactivated
	m.byID[id].DeactivatedAt = &now
	return nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

func (m *memStore) ListAll(_ context.Context) ([]License, error) {
	var out []License
	for _, l := range m.byID {
		out = append(out, *l)
	}
	return out, nil
}

func newTestAuthority() (*Authority, *memStore) {
	store := newMemStore()
	return NewAuthority(store, "SUDHA", 3), store
}

func TestGenerateKeyFormat(t *testing.T) {
	a, _ := newTestAuthority()
	re := regexp.MustCompile(`^SUDHA-[0-9A-Z]+-[0-9A-Z]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key := a.GenerateKey()
		assert.Regexp(t, re, key)
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestIssueValidation(t *testing.T) {
	a, _ := newTestAuthority()
	ctx := context.Background()

	_, err := a.Issue(ctx, "", "c@example.com", 30, "")
	assert.Error(t, err)
	_, err = a.Issue(ctx, "Client", "", 30, "")
	assert.Error(t, err)
	_, err = a.Issue(ctx, "Client", "c@example.com", 0, "")
	assert.Error(t, err)

	lic, err := a.Issue(ctx, "Client", "c@example.com", 30, "trial")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, lic.Status)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), lic.ExpiresAt, time.Minute)
}

func TestVerifyNoKey(t *testing.T) {
	a, _ := newTestAuthority()
	v, err := a.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Equal(t, ReasonNoKey, v.Reason)
}

func TestVerifyUnknownKey(t *testing.T) {
	a, _ := newTestAuthority()
	v, err := a.Verify(context.Background(), "SUDHA-BOGUS-AAAAAAAA")
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Equal(t, ReasonNotFound, v.Reason)
}

func TestVerifyBumpsUsage(t *testing.T) {
	a, store := newTestAuthority()
	ctx := context.Background()

	lic, err := a.Issue(ctx, "Client", "c@example.com", 30, "")
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		v, err := a.Verify(ctx, lic.Key)
		require.NoError(t, err)
		assert.True(t, v.Valid)
		assert.Equal(t, i, store.byID[lic.ID].UsageCount)
	}
	assert.NotNil(t, store.byID[lic.ID].LastVerified)
}

func TestVerifyExpiredWritesStatusBack(t *testing.T) {
	a, store := newTestAuthority()
	ctx := context.Background()

	lic, err := a.Issue(ctx, "Client", "c@example.com", 10, "")
	require.NoError(t, err)

	// jump past the expiry
	a.now = func() time.Time { return lic.ExpiresAt.Add(time.Hour) }

	v, err := a.Verify(ctx, lic.Key)
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Equal(t, ReasonExpired, v.Reason)
	assert.Equal(t, StatusExpired, store.byID[lic.ID].Status)
	assert.Equal(t, 0, store.byID[lic.ID].UsageCount) // expired keys do not count usage
}

func TestVerifyDeactivatedIsTerminal(t *testing.T) {
	a, _ := newTestAuthority()
	ctx := context.Background()

	lic, err := a.Issue(ctx, "Client", "c@example.com", 30, "")
	require.NoError(t, err)
	require.NoError(t, a.Deactivate(ctx, lic.ID))

	v, err := a.Verify(ctx, lic.Key)
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Equal(t, ReasonDeactivated, v.Reason)

	// deactivation wins even past expiry
	a.now = func() time.Time { return lic.ExpiresAt.Add(time.Hour) }
	v, err = a.Verify(ctx, lic.Key)
	require.NoError(t, err)
	assert.Equal(t, ReasonDeactivated, v.Reason)
}

func TestVerifyWarnsNearExpiry(t *testing.T) {
	a, _ := newTestAuthority()
	ctx := context.Background()

	lic, err := a.Issue(ctx, "Client", "c@example.com", 30, "")
	require.NoError(t, err)

	a.now = func() time.Time { return lic.ExpiresAt.Add(-36 * time.Hour) }

	v, err := a.Verify(ctx, lic.Key)
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.True(t, v.ExpiresSoon)
	assert.Equal(t, 2, v.DaysLeft)
}

func TestStatsJudgesExpiryAgainstClock(t *testing.T) {
	a, _ := newTestAuthority()
	ctx := context.Background()

	short, err := a.Issue(ctx, "Short", "s@example.com", 1, "")
	require.NoError(t, err)
	_, err = a.Issue(ctx, "Long", "l@example.com", 365, "")
	require.NoError(t, err)
	gone, err := a.Issue(ctx, "Gone", "g@example.com", 365, "")
	require.NoError(t, err)
	require.NoError(t, a.Deactivate(ctx, gone.ID))

	// the short license is past expiry but its row still says active
	a.now = func() time.Time { return short.ExpiresAt.Add(time.Hour) }

	st, err := a.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Active: 1, Expired: 1, Deactivated: 1}, st)
}
