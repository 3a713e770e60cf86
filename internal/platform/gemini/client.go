package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

// ErrMissingAPIKey is returned by NewClient when no credential is configured.
var ErrMissingAPIKey = errors.New("missing GEMINI_API_KEY")

const (
	DefaultModel           = "gemini-2.0-flash"
	DefaultTemperature     = 0.7
	DefaultTopK            = 40
	DefaultTopP            = 0.95
	DefaultMaxOutputTokens = 2048
)

// Config holds the credential and the fixed generation parameters. The same
// parameters apply to every call made by a client.
type Config struct {
	APIKey          string        `yaml:"api_key"`
	Model           string        `yaml:"model"`
	BaseURL         string        `yaml:"base_url"`
	Temperature     float64       `yaml:"temperature"`
	TopK            float64       `yaml:"top_k"`
	TopP            float64       `yaml:"top_p"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
}

func DefaultConfig() Config {
	return Config{
		Model:           DefaultModel,
		Temperature:     DefaultTemperature,
		TopK:            DefaultTopK,
		TopP:            DefaultTopP,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// Client is the text-completion surface the rest of the backend depends on.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Model() string
}

type client struct {
	log     *logger.Logger
	genai   *genai.Client
	model   string
	cfg     *genai.GenerateContentConfig
	timeout time.Duration
}

func NewClient(ctx context.Context, log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	cfg = withDefaults(cfg)

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &client{
		log:     log.With("service", "GeminiClient", "model", cfg.Model),
		genai:   gc,
		model:   cfg.Model,
		cfg:     generationConfig(cfg),
		timeout: cfg.Timeout,
	}, nil
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = def.Model
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Temperature < 0 {
		cfg.Temperature = def.Temperature
	}
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	if cfg.TopP <= 0 || cfg.TopP > 1 {
		cfg.TopP = def.TopP
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = def.MaxOutputTokens
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	return cfg
}

func generationConfig(cfg Config) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(cfg.Temperature)),
		TopK:            genai.Ptr(float32(cfg.TopK)),
		TopP:            genai.Ptr(float32(cfg.TopP)),
		MaxOutputTokens: int32(cfg.MaxOutputTokens),
	}
}

func (c *client) Model() string { return c.model }

func (c *client) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("kisansaathi/gemini").Start(ctx, "gemini.GenerateContent")
	defer span.End()
	span.SetAttributes(
		attribute.String("gen_ai.request.model", c.model),
		attribute.Int("gen_ai.prompt.chars", len(prompt)),
	)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content failed")
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	c.log.Debug("Gemini response received",
		"duration_ms", time.Since(start).Milliseconds(),
		"chars", len(text),
	)
	if text == "" {
		err := errors.New("gemini returned an empty response")
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return text, nil
}
