package payments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const recordCols = `id, customer_id, month, paid_amount, total_amount, last_payment_amount,
	payment_method, payment_note, payment_date, created_at, updated_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	if err := row.Scan(
		&rec.ID, &rec.CustomerID, &rec.Month, &rec.PaidAmount, &rec.TotalAmount,
		&rec.LastPayment, &rec.Method, &rec.Note, &rec.PaymentDate,
		&rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get returns nil without error when no record exists yet for the
// customer-month.
func (r *Repo) Get(ctx context.Context, customerID int64, month string) (*Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+recordCols+` FROM payments WHERE customer_id = $1 AND month = $2`,
		customerID, month)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// Upsert writes the cumulative state for the customer-month. The unique
// key keeps it to one row; a later payment lands on the same row.
func (r *Repo) Upsert(ctx context.Context, rec Record) (*Record, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payments (customer_id, month, paid_amount, total_amount,
			last_payment_amount, payment_method, payment_note, payment_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (customer_id, month)
		DO UPDATE SET
			paid_amount = EXCLUDED.paid_amount,
			total_amount = EXCLUDED.total_amount,
			last_payment_amount = EXCLUDED.last_payment_amount,
			payment_method = EXCLUDED.payment_method,
			payment_note = EXCLUDED.payment_note,
			payment_date = EXCLUDED.payment_date,
			updated_at = now()
		RETURNING `+recordCols,
		rec.CustomerID, rec.Month, rec.PaidAmount, rec.TotalAmount,
		rec.LastPayment, rec.Method, rec.Note, rec.PaymentDate)
	return scanRecord(row)
}

func (r *Repo) ListByMonth(ctx context.Context, month string) ([]Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recordCols+` FROM payments WHERE month = $1`, month)
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
