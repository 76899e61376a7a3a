package customers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("customers: not found")

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const customerCols = `id, name, phone, rate, delivery_schedule, daily_qty,
	morning_qty, morning_time, evening_qty, evening_time,
	address, tg_chat_id, status, created_at, updated_at`

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	if err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Rate, &c.Schedule, &c.DailyQty,
		&c.MorningQty, &c.MorningTime, &c.EveningQty, &c.EveningTime,
		&c.Address, &c.TgChatID, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (*Customer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+customerCols+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *Repo) Create(ctx context.Context, c *Customer) (*Customer, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO customers (name, phone, rate, delivery_schedule, daily_qty,
			morning_qty, morning_time, evening_qty, evening_time,
			address, tg_chat_id, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING `+customerCols,
		c.Name, c.Phone, c.Rate, c.Schedule, c.DailyQty,
		c.MorningQty, c.MorningTime, c.EveningQty, c.EveningTime,
		c.Address, c.TgChatID, c.Status)
	return scanCustomer(row)
}

func (r *Repo) Update(ctx context.Context, c *Customer) (*Customer, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE customers SET
			name = $2, phone = $3, rate = $4, delivery_schedule = $5, daily_qty = $6,
			morning_qty = $7, morning_time = $8, evening_qty = $9, evening_time = $10,
			address = $11, tg_chat_id = $12, status = $13, updated_at = now()
		WHERE id = $1
		RETURNING `+customerCols,
		c.ID, c.Name, c.Phone, c.Rate, c.Schedule, c.DailyQty,
		c.MorningQty, c.MorningTime, c.EveningQty, c.EveningTime,
		c.Address, c.TgChatID, c.Status)
	out, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// Delete removes the customer together with every delivery and payment
// row that references them. The store has no ON DELETE CASCADE; the
// cascade lives here in one transaction.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM deliveries WHERE customer_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE customer_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]Customer, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *Repo) ListAll(ctx context.Context) ([]Customer, error) {
	return r.list(ctx, `SELECT `+customerCols+` FROM customers ORDER BY name`)
}

func (r *Repo) ListActive(ctx context.Context) ([]Customer, error) {
	return r.list(ctx, `SELECT `+customerCols+` FROM customers WHERE status = 'active' ORDER BY name`)
}
