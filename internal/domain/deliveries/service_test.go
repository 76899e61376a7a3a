package deliveries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
)

type fakeStore struct {
	nextID int64
	recs   map[string]Record // key customerID|date|slot
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: make(map[string]Record)}
}

func storeKey(customerID int64, date string, slot Slot) string {
	return fmt.Sprintf("%d|%s|%s", customerID, date, slot)
}

func (f *fakeStore) Upsert(_ context.Context, rec Record) (*Record, error) {
	k := storeKey(rec.CustomerID, rec.Date, rec.Slot)
	if old, ok := f.recs[k]; ok {
		rec.ID = old.ID
	} else {
		f.nextID++
		rec.ID = f.nextID
	}
	f.recs[k] = rec
	return &rec, nil
}

func (f *fakeStore) DeleteByKey(_ context.Context, customerID int64, date string, slot Slot) error {
	k := storeKey(customerID, date, slot)
	if _, ok := f.recs[k]; !ok {
		return ErrNotFound
	}
	delete(f.recs, k)
	return nil
}

func (f *fakeStore) ListByDate(_ context.Context, date string) ([]Record, error) {
	var out []Record
	for _, r := range f.recs {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByCustomerMonth(_ context.Context, customerID int64, month string) ([]Record, error) {
	var out []Record
	for _, r := range f.recs {
		if r.CustomerID == customerID && strings.HasPrefix(r.Date, month+"-") {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCustomers struct {
	byID map[int64]customers.Customer
}

func (f *fakeCustomers) Get(_ context.Context, id int64) (*customers.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, customers.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCustomers) ListActive(_ context.Context) ([]customers.Customer, error) {
	var out []customers.Customer
	for _, c := range f.byID {
		if c.Status == customers.StatusActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func testLogger() *slog.Logger { return slog.Default() }

func newTestService(custs ...customers.Customer) (*Service, *fakeStore) {
	store := newFakeStore()
	byID := make(map[int64]customers.Customer)
	for _, c := range custs {
		byID[c.ID] = c
	}
	return NewService(store, &fakeCustomers{byID: byID}, nil, testLogger()), store
}

func TestRecordDeliveredFreezesRate(t *testing.T) {
	svc, _ := newTestService(customers.Customer{
		ID: 1, Name: "Ramesh", Rate: 50, Schedule: customers.ScheduleMorning,
		MorningQty: 2, Status: customers.StatusActive,
	})

	rec, err := svc.RecordDelivered(context.Background(), 1, "2026-03-05", SlotMorning, 3)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, rec.Status)
	assert.Equal(t, 50.0, rec.Rate)
	assert.Equal(t, 150.0, rec.Amount)
}

func TestRecordDeliveredRejectsNonPositiveQty(t *testing.T) {
	svc, _ := newTestService(customers.Customer{ID: 1, Rate: 50, Status: customers.StatusActive})

	_, err := svc.RecordDelivered(context.Background(), 1, "2026-03-05", SlotMorning, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.RecordDelivered(context.Background(), 1, "2026-03-05", SlotMorning, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRecordDecisionOverwritesSameSlot(t *testing.T) {
	svc, store := newTestService(customers.Customer{
		ID: 1, Rate: 50, Schedule: customers.ScheduleMorning, Status: customers.StatusActive,
	})
	ctx := context.Background()

	first, err := svc.RecordDelivered(ctx, 1, "2026-03-05", SlotMorning, 2)
	require.NoError(t, err)

	second, err := svc.RecordSkipped(ctx, 1, "2026-03-05", SlotMorning)
	require.NoError(t, err)

	// same key, so the decision flips in place instead of duplicating
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.recs, 1)
	assert.Equal(t, StatusSkipped, second.Status)
	assert.Equal(t, 0.0, second.Qty)
}

func TestResetDecisionReturnsSlotToUndecided(t *testing.T) {
	cust := customers.Customer{
		ID: 1, Rate: 50, Schedule: customers.ScheduleMorning,
		MorningQty: 2, Status: customers.StatusActive,
	}
	svc, _ := newTestService(cust)
	ctx := context.Background()

	_, err := svc.RecordDelivered(ctx, 1, "2026-03-05", SlotMorning, 3)
	require.NoError(t, err)
	require.NoError(t, svc.ResetDecision(ctx, 1, "2026-03-05", SlotMorning))

	items, err := svc.DailyView(ctx, "2026-03-05")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, SlotUndecided, items[0].State)
	assert.Equal(t, 2.0, items[0].Qty) // back to the configured default
}

func TestResetDecisionMissingRecord(t *testing.T) {
	svc, _ := newTestService(customers.Customer{ID: 1, Status: customers.StatusActive})
	err := svc.ResetDecision(context.Background(), 1, "2026-03-05", SlotMorning)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDailyViewLegacyCustomerDefaultsToMorning(t *testing.T) {
	qty := 1.5
	svc, _ := newTestService(customers.Customer{
		ID: 7, Name: "Old", Rate: 60, DailyQty: &qty, Status: customers.StatusActive,
	})

	items, err := svc.DailyView(context.Background(), "2026-03-05")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, SlotMorning, items[0].Slot)
	assert.Equal(t, SlotUndecided, items[0].State)
	assert.Equal(t, 1.5, items[0].Qty)
	assert.Equal(t, 90.0, items[0].Amount)
}

func TestDailyViewBothSlots(t *testing.T) {
	svc, _ := newTestService(customers.Customer{
		ID: 2, Rate: 55, Schedule: customers.ScheduleBoth,
		MorningQty: 1, EveningQty: 2, Status: customers.StatusActive,
	})
	ctx := context.Background()

	_, err := svc.RecordDelivered(ctx, 2, "2026-03-05", SlotMorning, 1)
	require.NoError(t, err)

	items, err := svc.DailyView(ctx, "2026-03-05")
	require.NoError(t, err)
	require.Len(t, items, 2)

	states := map[Slot]SlotState{}
	for _, it := range items {
		states[it.Slot] = it.State
	}
	assert.Equal(t, SlotDelivered, states[SlotMorning])
	assert.Equal(t, SlotUndecided, states[SlotEvening])
}

func TestMonthlyRollup(t *testing.T) {
	svc, _ := newTestService(customers.Customer{
		ID: 1, Rate: 50, Schedule: customers.ScheduleMorning, Status: customers.StatusActive,
	})
	ctx := context.Background()

	_, err := svc.RecordDelivered(ctx, 1, "2026-03-05", SlotMorning, 3)
	require.NoError(t, err)
	_, err = svc.RecordSkipped(ctx, 1, "2026-03-06", SlotMorning)
	require.NoError(t, err)

	roll, err := svc.MonthlyRollup(ctx, 1, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 3.0, roll.TotalQty)
	assert.Equal(t, 150.0, roll.TotalAmount)
	assert.Equal(t, 1, roll.DaysDelivered)
	assert.Equal(t, 1, roll.DaysSkipped)
	assert.Len(t, roll.Days, 31)

	assert.Equal(t, SlotDelivered, roll.Days[4].State) // Mar 5
	assert.Equal(t, SlotSkipped, roll.Days[5].State)   // Mar 6
	assert.Equal(t, SlotUndecided, roll.Days[6].State)
}

func TestMonthlyRollupDeliveredWinsOverSkippedSameDay(t *testing.T) {
	svc, _ := newTestService(customers.Customer{
		ID: 1, Rate: 40, Schedule: customers.ScheduleBoth,
		MorningQty: 1, EveningQty: 1, Status: customers.StatusActive,
	})
	ctx := context.Background()

	_, err := svc.RecordSkipped(ctx, 1, "2026-02-10", SlotMorning)
	require.NoError(t, err)
	_, err = svc.RecordDelivered(ctx, 1, "2026-02-10", SlotEvening, 2)
	require.NoError(t, err)

	roll, err := svc.MonthlyRollup(ctx, 1, "2026-02")
	require.NoError(t, err)
	assert.Len(t, roll.Days, 28)
	assert.Equal(t, SlotDelivered, roll.Days[9].State)
	assert.Equal(t, 2.0, roll.Days[9].Qty)
	assert.Equal(t, 80.0, roll.Days[9].Amount)
}

func TestDaysInMonth(t *testing.T) {
	for month, want := range map[string]int{
		"2026-01": 31,
		"2026-02": 28,
		"2024-02": 29,
		"2026-04": 30,
	} {
		got, err := daysInMonth(month)
		require.NoError(t, err)
		assert.Equal(t, want, got, month)
	}

	_, err := daysInMonth("garbage")
	assert.Error(t, err)
}
