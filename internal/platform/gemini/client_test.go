package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), logger.Nop(), Config{APIKey: "   "})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("unexpected error: got=%v want=%v", err, ErrMissingAPIKey)
	}
}

func TestWithDefaults(t *testing.T) {
	got := withDefaults(Config{TopP: 3, Timeout: -time.Second, Temperature: -1})
	if got.Model != DefaultModel {
		t.Fatalf("unexpected model: got=%q want=%q", got.Model, DefaultModel)
	}
	if got.TopK != DefaultTopK || got.TopP != DefaultTopP || got.MaxOutputTokens != DefaultMaxOutputTokens {
		t.Fatalf("unexpected sampling defaults: %+v", got)
	}
	if got.Temperature != DefaultTemperature {
		t.Fatalf("unexpected temperature: got=%v want=%v", got.Temperature, DefaultTemperature)
	}
	if got.Timeout != 0 {
		t.Fatalf("negative timeout should disable the deadline, got %v", got.Timeout)
	}
}

func TestWithDefaultsKeepsExplicitValues(t *testing.T) {
	in := Config{Model: " gemini-1.5-pro ", Temperature: 0, TopK: 20, TopP: 0.8, MaxOutputTokens: 512}
	got := withDefaults(in)
	if got.Model != "gemini-1.5-pro" || got.Temperature != 0 || got.TopK != 20 || got.TopP != 0.8 || got.MaxOutputTokens != 512 {
		t.Fatalf("explicit values overwritten: %+v", got)
	}
}

func TestGenerationConfig(t *testing.T) {
	gc := generationConfig(withDefaults(DefaultConfig()))
	if gc.Temperature == nil || *gc.Temperature != float32(DefaultTemperature) {
		t.Fatalf("unexpected temperature: %v", gc.Temperature)
	}
	if gc.TopK == nil || *gc.TopK != float32(DefaultTopK) {
		t.Fatalf("unexpected topK: %v", gc.TopK)
	}
	if gc.MaxOutputTokens != DefaultMaxOutputTokens {
		t.Fatalf("unexpected max output tokens: %d", gc.MaxOutputTokens)
	}
}
