package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/tinoosan/bank/internal/config"
	"github.com/tinoosan/bank/internal/service/account"
	"github.com/tinoosan/bank/internal/service/client"
	"github.com/tinoosan/bank/internal/storage/memory"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in).Level(); got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
}

func TestBuildLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	buildLogger(&buf, config.LogConfig{Level: "info", Format: "json"}).Info("hello", "k", "v")
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil || line["msg"] != "hello" {
		t.Fatalf("expected json line, got %q (%v)", buf.String(), err)
	}

	buf.Reset()
	buildLogger(&buf, config.LogConfig{Level: "warn", Format: "text"}).Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info must be filtered at warn level: %q", buf.String())
	}
}

func TestSeedDev(t *testing.T) {
	store := memory.New()
	c, a, err := seedDev(context.Background(), client.New(store, nil), account.New(store, "USD", nil))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if c.ID != 1 || a.Number != "ACC0001" || a.ClientID != c.ID {
		t.Fatalf("unexpected seed: %+v %+v", c, a)
	}
	var buf bytes.Buffer
	printDevSeedBanner(&buf, c, a)
	if !strings.Contains(buf.String(), "account_number: ACC0001") {
		t.Fatalf("unexpected banner: %q", buf.String())
	}
}
