package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Re-initialization must be safe.
	if err := Init(); err != nil {
		t.Fatalf("failed to re-initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after re-initialization")
	}
}

func TestLoggerBasic(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	log := Get()
	ctx := context.Background()

	log.Info(ctx, "test message", String("k", "v"))
	log.Debug(ctx, "debug message", Int("n", 1))
	log.Warn(ctx, "warn message", Float64("f", 1.5))
	log.Error(ctx, "error message", Any("v", struct{}{}))
}

func TestNamedLogger(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("worker")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(context.Background(), "named logger message")
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	for _, level := range []string{"debug", "info", "warn", "warning", "error", "", "INFO"} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("SetLevelString(%q) returned error: %v", level, err)
		}
	}

	if err := SetLevelString("bogus"); err == nil {
		t.Error("SetLevelString(\"bogus\") should return an error")
	}

	SetLevel(slog.LevelInfo)
}

func TestFieldConstructors(t *testing.T) {
	cases := []struct {
		field Field
		key   string
	}{
		{String("s", "v"), "s"},
		{Int("i", 1), "i"},
		{Float64("f", 1.0), "f"},
		{Bool("b", true), "b"},
		{Any("a", nil), "a"},
		{Error(nil), "error"},
	}
	for _, c := range cases {
		if c.field.Key != c.key {
			t.Errorf("field key = %q, want %q", c.field.Key, c.key)
		}
	}
}
