package settings

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

// Get returns the stored singleton, or nil when nothing was saved yet.
func (r *Repo) Get(ctx context.Context) (*Settings, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT project_name, business_type, contact_number, admin_email,
		       bot_token, admin_chat_id, updated_at
		FROM app_settings WHERE id = 1`)
	var s Settings
	if err := row.Scan(&s.ProjectName, &s.BusinessType, &s.ContactNumber,
		&s.AdminEmail, &s.BotToken, &s.AdminChatID, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repo) Save(ctx context.Context, s Settings) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO app_settings (id, project_name, business_type, contact_number,
			admin_email, bot_token, admin_chat_id)
		VALUES (1,$1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			project_name = EXCLUDED.project_name,
			business_type = EXCLUDED.business_type,
			contact_number = EXCLUDED.contact_number,
			admin_email = EXCLUDED.admin_email,
			bot_token = EXCLUDED.bot_token,
			admin_chat_id = EXCLUDED.admin_chat_id,
			updated_at = now()`,
		s.ProjectName, s.BusinessType, s.ContactNumber, s.AdminEmail, s.BotToken, s.AdminChatID)
	return err
}
