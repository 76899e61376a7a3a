package licenses

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("licenses: not found")

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const licenseCols = `id, license_key, client_name, client_email, validity_days, notes,
	status, created_at, expires_at, deactivated_at, last_verified, usage_count`

func scanLicense(row pgx.Row) (*License, error) {
	var l License
	if err := row.Scan(
		&l.ID, &l.Key, &l.ClientName, &l.ClientEmail, &l.ValidityDays, &l.Notes,
		&l.Status, &l.CreatedAt, &l.ExpiresAt, &l.DeactivatedAt, &l.LastVerified, &l.UsageCount,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) Create(ctx context.Context, l License) (*License, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO licenses (license_key, client_name, client_email, validity_days, notes, status, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+licenseCols,
		l.Key, l.ClientName, l.ClientEmail, l.ValidityDays, l.Notes, l.Status, l.ExpiresAt)
	return scanLicense(row)
}

// GetByKey looks a license up by its key, not its id; the key is what
// clients present.
func (r *Repo) GetByKey(ctx context.Context, key string) (*License, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+licenseCols+` FROM licenses WHERE license_key = $1`, key)
	l, err := scanLicense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *Repo) MarkExpired(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE licenses SET status = 'expired' WHERE id = $1`, id)
	return err
}

// TouchVerified bumps the usage counter and the last-verified stamp.
func (r *Repo) TouchVerified(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE licenses SET usage_count = usage_count + 1, last_verified = now()
		WHERE id = $1`, id)
	return err
}

func (r *Repo) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE licenses SET status = 'deactivated', deactivated_at = now()
		WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM licenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) ListAll(ctx context.Context) ([]License, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+licenseCols+` FROM licenses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []License
	for rows.Next() {
		l, err := scanLicense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}
