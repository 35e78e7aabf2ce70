package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/hrsys/candidate-api/internal/config"
)

func TestSetup(t *testing.T) {
	levels := []string{"debug", "info", "warn", "error", "DEBUG", "bogus", ""}
	for _, level := range levels {
		logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
		if err != nil {
			t.Errorf("Setup(%q): unexpected error %v", level, err)
		}
		if logger == nil {
			t.Errorf("Setup(%q): expected a logger", level)
		}
	}
}

func TestSetupSetsDefault(t *testing.T) {
	logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "info"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if slog.Default() != logger {
		t.Error("Expected Setup to install the logger as the process default")
	}
}

func TestContextCarriage(t *testing.T) {
	t.Parallel()
	base := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithLogger(context.Background(), base)
	if got := FromContext(ctx); got != base {
		t.Error("Expected FromContext to return the attached logger")
	}

	// Without an attached logger the process default applies.
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("Expected FromContext to fall back to the default logger")
	}

	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := FromContextOrDefault(context.Background(), fallback); got != fallback {
		t.Error("Expected FromContextOrDefault to return the fallback")
	}
	if got := FromContextOrDefault(ctx, fallback); got != base {
		t.Error("Expected FromContextOrDefault to prefer the attached logger")
	}
}
