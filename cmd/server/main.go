package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dairygo6311/Babu-jijaji/internal/api"
	"github.com/dairygo6311/Babu-jijaji/internal/config"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/broadcast"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/customers"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/deliveries"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/licenses"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/payments"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/settings"
	"github.com/dairygo6311/Babu-jijaji/internal/infra/cache"
	"github.com/dairygo6311/Babu-jijaji/internal/infra/db"
	httpx "github.com/dairygo6311/Babu-jijaji/internal/infra/http"
	"github.com/dairygo6311/Babu-jijaji/internal/infra/logger"
	"github.com/dairygo6311/Babu-jijaji/internal/infra/metrics"
	"github.com/dairygo6311/Babu-jijaji/internal/infra/notify"
	"github.com/dairygo6311/Babu-jijaji/internal/reports"
	"github.com/dairygo6311/Babu-jijaji/internal/session"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	// redis is optional: without it the license key and settings cache
	// fall back to process memory.
	var cacheCli *cache.Client
	if cfg.Redis.Addr != "" {
		cacheCli, err = cache.New(cfg.Redis.Addr, cfg.Redis.DB, "dairy")
		if err != nil {
			log.Error("redis connect failed", "err", err)
			return
		}
		defer func() { _ = cacheCli.Close() }()
		log.Info("redis connected")
	}

	met := metrics.New(prometheus.DefaultRegisterer)

	settingsSvc := settings.NewService(settings.NewRepo(pool), cacheCli, log)
	if err := settingsSvc.Load(ctx); err != nil {
		log.Error("settings load failed", "err", err)
		return
	}

	tg, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	notifier := notify.NewTelegram(tg, settingsSvc, met, log)

	customerRepo := customers.NewRepo(pool)
	customerSvc := customers.NewService(customerRepo, notifier, log)

	deliveryRepo := deliveries.NewRepo(pool)
	deliverySvc := deliveries.NewService(deliveryRepo, customerRepo, notifier, log)

	ledger := payments.NewLedger(payments.NewRepo(pool), deliveryRepo, customerRepo, notifier, log)

	authority := licenses.NewAuthority(licenses.NewRepo(pool), cfg.License.Prefix, cfg.License.WarnDays)

	broadcastSvc := broadcast.NewService(broadcast.NewRepo(pool), customerRepo, notifier, log)

	reportBuilder := reports.NewBuilder(ledger, deliverySvc, settingsSvc)

	var keys session.KeyStore
	if cacheCli != nil {
		keys = session.NewRedisKeyStore(cacheCli)
	} else {
		keys = session.NewMemKeyStore()
	}
	gate := session.NewGatekeeper(
		authority, keys, cfg.License.ExemptPages,
		time.Duration(cfg.License.ReverifyMinutes)*time.Minute,
		func() { log.Warn("license invalid, session redirected to verification") },
		log,
	)

	apiHandler := api.New(log, met, customerSvc, deliverySvc, ledger,
		authority, settingsSvc, broadcastSvc, reportBuilder, notifier, gate, keys)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, apiHandler.Routes())
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	gate.SignOut(context.Background())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
