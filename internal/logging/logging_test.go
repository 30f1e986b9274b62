package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext returned nil")
	}
}

func TestWithContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, zerolog.DebugLevel)
	ctx := WithContext(context.Background(), &l)

	Component(ctx, "store").Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["component"] != "store" || line["message"] != "hello" {
		t.Fatalf("log line = %v, want component=store message=hello", line)
	}
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "folio.log")
	closer, err := Init(Config{Level: "warn", File: path})
	if err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	FromContext(context.Background()).Info().Msg("suppressed")
	FromContext(context.Background()).Warn().Msg("kept")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "suppressed") || !strings.Contains(out, "kept") {
		t.Fatalf("log file = %q, want only the warn line", out)
	}
}
