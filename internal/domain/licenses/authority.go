package licenses

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const randomSuffixLen = 8

type Store interface {
	Create(ctx context.Context, l License) (*License, error)
	GetByKey(ctx context.Context, key string) (*License, error)
	MarkExpired(ctx context.Context, id int64) error
	TouchVerified(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]License, error)
}

// Authority issues license keys and rules on presented ones.
type Authority struct {
	store    Store
	prefix   string
	warnDays int
	now      func() time.Time
}

func NewAuthority(store Store, prefix string, warnDays int) *Authority {
	if prefix == "" {
		prefix = "SUDHA"
	}
	if warnDays <= 0 {
		warnDays = 3
	}
	return &Authority{store: store, prefix: prefix, warnDays: warnDays, now: time.Now}
}

// GenerateKey builds PREFIX-<base36 timestamp>-<8 base36 chars>, all
// uppercase. The timestamp makes keys minted at different milliseconds
// distinct; the random suffix covers the same-millisecond case. Not a
// cryptographic guarantee, and not treated as one.
func (a *Authority) GenerateKey() string {
	ts := strconv.FormatInt(a.now().UnixMilli(), 36)
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	var sb strings.Builder
	for i := 0; i < randomSuffixLen; i++ {
		sb.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return strings.ToUpper(fmt.Sprintf("%s-%s-%s", a.prefix, ts, sb.String()))
}

// Issue creates an active license valid for validityDays from now.
func (a *Authority) Issue(ctx context.Context, clientName, clientEmail string, validityDays int, notes string) (*License, error) {
	if clientName == "" || clientEmail == "" {
		return nil, fmt.Errorf("licenses: client name and email are required")
	}
	if validityDays <= 0 {
		return nil, fmt.Errorf("licenses: validity days must be positive")
	}
	return a.store.Create(ctx, License{
		Key:          a.GenerateKey(),
		ClientName:   clientName,
		ClientEmail:  clientEmail,
		ValidityDays: validityDays,
		Notes:        notes,
		Status:       StatusActive,
		ExpiresAt:    a.now().Add(time.Duration(validityDays) * 24 * time.Hour),
	})
}

// Verify rules on a presented key. It is deliberately not read-only: a
// valid verification bumps usage_count and last_verified, and an
// expired license gets its status written back on first detection.
func (a *Authority) Verify(ctx context.Context, key string) (*Verdict, error) {
	if key == "" {
		return &Verdict{Valid: false, Reason: ReasonNoKey}, nil
	}
	lic, err := a.store.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &Verdict{Valid: false, Reason: ReasonNotFound}, nil
		}
		return nil, err
	}

	if lic.Status == StatusDeactivated {
		return &Verdict{Valid: false, Reason: ReasonDeactivated}, nil
	}

	now := a.now()
	if now.After(lic.ExpiresAt) {
		if lic.Status != StatusExpired {
			if err := a.store.MarkExpired(ctx, lic.ID); err != nil {
				return nil, err
			}
		}
		return &Verdict{Valid: false, Reason: ReasonExpired, ExpiresAt: lic.ExpiresAt}, nil
	}

	if err := a.store.TouchVerified(ctx, lic.ID); err != nil {
		return nil, err
	}

	v := &Verdict{Valid: true, ExpiresAt: lic.ExpiresAt, License: lic}
	daysLeft := int(lic.ExpiresAt.Sub(now).Hours()/24) + 1
	if daysLeft > 0 && daysLeft <= a.warnDays {
		v.ExpiresSoon = true
		v.DaysLeft = daysLeft
	}
	return v, nil
}

func (a *Authority) Deactivate(ctx context.Context, id int64) error {
	return a.store.Deactivate(ctx, id)
}

func (a *Authority) Delete(ctx context.Context, id int64) error {
	return a.store.Delete(ctx, id)
}

func (a *Authority) List(ctx context.Context) ([]License, error) {
	return a.store.ListAll(ctx)
}

// Stats recounts every license on each call; the stored status may lag
// expiry, so expiry is judged against the clock here, not the column.
func (a *Authority) Stats(ctx context.Context) (Stats, error) {
	all, err := a.store.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	now := a.now()
	var st Stats
	for _, l := range all {
		switch {
		case l.Status == StatusDeactivated:
			st.Deactivated++
		case now.After(l.ExpiresAt):
			st.Expired++
		default:
			st.Active++
		}
	}
	return st, nil
}
