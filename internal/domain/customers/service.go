package customers

import (
	"context"
	"errors"
	"log/slog"
)

var ErrInvalid = errors.New("customers: name, phone and a positive rate are required")

// Notifier greets a customer on registration and confirms updates.
// Send failures never block the write.
type Notifier interface {
	CustomerRegistered(ctx context.Context, cust *Customer) error
	CustomerUpdated(ctx context.Context, cust *Customer) error
}

type Service struct {
	repo   *Repo
	notify Notifier
	log    *slog.Logger
}

func NewService(repo *Repo, notify Notifier, log *slog.Logger) *Service {
	return &Service{repo: repo, notify: notify, log: log}
}

func validate(c *Customer) error {
	if c.Name == "" || c.Phone == "" || c.Rate <= 0 {
		return ErrInvalid
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	if c.MorningTime == "" {
		c.MorningTime = "06:00"
	}
	if c.EveningTime == "" {
		c.EveningTime = "18:00"
	}
	return nil
}

func (s *Service) Register(ctx context.Context, c Customer) (*Customer, error) {
	if err := validate(&c); err != nil {
		return nil, err
	}
	saved, err := s.repo.Create(ctx, &c)
	if err != nil {
		return nil, err
	}
	if saved.TgChatID != "" && s.notify != nil {
		if err := s.notify.CustomerRegistered(ctx, saved); err != nil {
			s.log.Error("registration notification failed", "customer_id", saved.ID, "err", err)
		}
	}
	return saved, nil
}

func (s *Service) Update(ctx context.Context, c Customer) (*Customer, error) {
	if err := validate(&c); err != nil {
		return nil, err
	}
	saved, err := s.repo.Update(ctx, &c)
	if err != nil {
		return nil, err
	}
	if saved.TgChatID != "" && s.notify != nil {
		if err := s.notify.CustomerUpdated(ctx, saved); err != nil {
			s.log.Error("update notification failed", "customer_id", saved.ID, "err", err)
		}
	}
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]Customer, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]Customer, error) {
	return s.repo.ListActive(ctx)
}
