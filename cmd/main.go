package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tinoosan/bank/internal/config"
	"github.com/tinoosan/bank/internal/events"
	"github.com/tinoosan/bank/internal/events/kafka"
	"github.com/tinoosan/bank/internal/httpapi"
	"github.com/tinoosan/bank/internal/ledger"
	"github.com/tinoosan/bank/internal/service/account"
	"github.com/tinoosan/bank/internal/service/client"
	"github.com/tinoosan/bank/internal/service/transaction"
	"github.com/tinoosan/bank/internal/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A local .env is optional; real env vars win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logger := buildLogger(os.Stdout, cfg.Log)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store := memory.New()

	var pub events.Publisher = events.Nop{}
	if cfg.Kafka.Enabled() {
		kp := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Error("kafka publisher close error", "err", err)
			}
		}()
		pub = kp
		logger.Info("event publishing: kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	clients := client.New(store, logger)
	accounts := account.New(store, cfg.Ledger.Currency, logger)
	txs := transaction.New(store, cfg.Ledger.Currency,
		transaction.WithPublisher(pub),
		transaction.WithLogger(logger),
	)

	if cfg.Dev.Seed {
		c, a, err := seedDev(ctx, clients, accounts)
		if err != nil {
			logger.Error("dev seed failed", "err", err)
		} else {
			logger.Info("DEV seed (memory)", "client_id", c.ID, "account", a.Number)
			printDevSeedBanner(os.Stdout, c, a)
		}
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: httpapi.New(httpapi.Deps{
			Clients:      clients,
			Accounts:     accounts,
			Transactions: txs,
			Currency:     cfg.Ledger.Currency,
			Ready:        store,
		}, logger).Handler(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bank service listening", "addr", srv.Addr, "currency", cfg.Ledger.Currency)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
		logger.Info("bank service stopped")
		return nil
	case err := <-errCh:
		return err
	}
}

// seedDev opens one demo client with an empty savings account.
func seedDev(ctx context.Context, clients client.Service, accounts account.Service) (ledger.Client, ledger.Account, error) {
	c, err := clients.Create(ctx, "Demo Client", "demo@example.com")
	if err != nil {
		return ledger.Client{}, ledger.Account{}, fmt.Errorf("seed client: %w", err)
	}
	a, err := accounts.Create(ctx, c.ID, ledger.AccountTypeSavings)
	if err != nil {
		return ledger.Client{}, ledger.Account{}, fmt.Errorf("seed account: %w", err)
	}
	return c, a, nil
}

// printDevSeedBanner prints a simple banner for easy copy/paste of ids
func printDevSeedBanner(w io.Writer, c ledger.Client, a ledger.Account) {
	fmt.Fprintln(w, "==================== DEV SEED ====================")
	fmt.Fprintf(w, "client_id: %d\n", c.ID)
	fmt.Fprintf(w, "client_email: %s\n", c.Email)
	fmt.Fprintf(w, "account_number: %s\n", a.Number)
	fmt.Fprintln(w, "==================================================")
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(w io.Writer, c config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.Level)}
	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(w, opts))
}
