package textgen

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"interview-agent/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// OllamaTextGenerator implements domain.TextGenerator against a local
// Ollama server, mainly for development without an OpenAI credential.
type OllamaTextGenerator struct {
	llm         *ollama.LLM
	temperature float64
	logger      *zap.Logger
}

// NewOllamaTextGenerator creates a new instance of OllamaTextGenerator.
func NewOllamaTextGenerator(serverURL, model string, temperature float64, logger *zap.Logger) (domain.TextGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("Ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("Ollama model name cannot be empty")
	}

	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     10 * time.Second,
		},
	}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	logger.Info("Initialized Ollama text generator",
		zap.String("server_url", serverURL),
		zap.String("model", model))
	return &OllamaTextGenerator{llm: llm, temperature: temperature, logger: logger}, nil
}

// GenerateText sends the prompt once and returns the model's text
// fragments in delivery order.
func (g *OllamaTextGenerator) GenerateText(ctx context.Context, prompt string) ([]string, error) {
	resp, err := g.llm.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		llms.WithTemperature(g.temperature),
	)
	if err != nil {
		g.logger.Error("Ollama generation call failed", zap.Error(err))
		return nil, fmt.Errorf("Ollama call failed: %w", err)
	}

	fragments := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		if choice != nil && choice.Content != "" {
			fragments = append(fragments, choice.Content)
		}
	}
	if len(fragments) == 0 {
		return nil, fmt.Errorf("Ollama returned no text content")
	}
	return fragments, nil
}

var _ domain.TextGenerator = (*OllamaTextGenerator)(nil)
