package deliveries

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("deliveries: not found")

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const recordCols = `id, customer_id, date, time_slot, qty, rate, amount, status, created_at, updated_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	if err := row.Scan(
		&rec.ID, &rec.CustomerID, &rec.Date, &rec.Slot,
		&rec.Qty, &rec.Rate, &rec.Amount, &rec.Status,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert writes the decision for (customer, date, slot). The unique key
// guarantees at most one row per slot; a second decision overwrites the
// first in place.
func (r *Repo) Upsert(ctx context.Context, rec Record) (*Record, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO deliveries (customer_id, date, time_slot, qty, rate, amount, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (customer_id, date, time_slot)
		DO UPDATE SET
			qty = EXCLUDED.qty,
			rate = EXCLUDED.rate,
			amount = EXCLUDED.amount,
			status = EXCLUDED.status,
			updated_at = now()
		RETURNING `+recordCols,
		rec.CustomerID, rec.Date, rec.Slot, rec.Qty, rec.Rate, rec.Amount, rec.Status)
	return scanRecord(row)
}

// DeleteByKey reverts the slot to undecided.
func (r *Repo) DeleteByKey(ctx context.Context, customerID int64, date string, slot Slot) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM deliveries WHERE customer_id = $1 AND date = $2 AND time_slot = $3`,
		customerID, date, slot)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]Record, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *Repo) ListByDate(ctx context.Context, date string) ([]Record, error) {
	return r.list(ctx, `SELECT `+recordCols+` FROM deliveries WHERE date = $1`, date)
}

// ListByCustomerMonth scans the customer's rows inside the month's date
// range. Dates are YYYY-MM-DD strings, so the comparison is
// lexicographic; "-31" is a safe upper bound even for short months.
func (r *Repo) ListByCustomerMonth(ctx context.Context, customerID int64, month string) ([]Record, error) {
	return r.list(ctx, `
		SELECT `+recordCols+` FROM deliveries
		WHERE customer_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, time_slot`,
		customerID, month+"-01", month+"-31")
}

func (r *Repo) ListByMonth(ctx context.Context, month string) ([]Record, error) {
	return r.list(ctx, `
		SELECT `+recordCols+` FROM deliveries
		WHERE date >= $1 AND date <= $2`,
		month+"-01", month+"-31")
}
