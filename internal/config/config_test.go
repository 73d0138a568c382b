package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate keeps a developer's own config file out of the test.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("BANK_CONFIG", "")
	t.Chdir(dir)
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Addr != ":8080" || c.Server.ReadTimeout != 5*time.Second || c.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected server config: %+v", c.Server)
	}
	if c.Log.Level != "info" || c.Log.Format != "json" || c.Ledger.Currency != "USD" {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.Kafka.Enabled() || c.Kafka.Topic != "bank.transactions" || c.Dev.Seed {
		t.Fatalf("unexpected kafka/dev config: %+v %+v", c.Kafka, c.Dev)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("BANK_SERVER_ADDR", ":9090")
	t.Setenv("BANK_SERVER_WRITE_TIMEOUT", "3s")
	t.Setenv("BANK_LOG_FORMAT", "TEXT")
	t.Setenv("BANK_LEDGER_CURRENCY", "eur")
	t.Setenv("BANK_KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("BANK_DEV_SEED", "true")
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Addr != ":9090" || c.Server.WriteTimeout != 3*time.Second {
		t.Fatalf("unexpected server config: %+v", c.Server)
	}
	if c.Log.Format != "text" || c.Ledger.Currency != "EUR" || !c.Dev.Seed {
		t.Fatalf("unexpected config: %+v", c)
	}
	if len(c.Kafka.Brokers) != 2 || c.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("unexpected brokers: %q", c.Kafka.Brokers)
	}
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bank.yaml")
	body := "server:\n  addr: \":7070\"\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("BANK_CONFIG", path)
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Addr != ":7070" || c.Log.Level != "debug" {
		t.Fatalf("unexpected config: %+v", c)
	}

	t.Setenv("BANK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("BANK_LEDGER_CURRENCY", "XXXX")
	if _, err := Load(); err == nil {
		t.Fatalf("expected invalid currency error")
	}
	t.Setenv("BANK_LEDGER_CURRENCY", "USD")
	t.Setenv("BANK_LOG_FORMAT", "xml")
	if _, err := Load(); err == nil {
		t.Fatalf("expected invalid format error")
	}
}
