package textgen

import (
	"context"
	"fmt"

	"interview-agent/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAITextGenerator implements domain.TextGenerator on top of the
// langchaingo OpenAI client.
type OpenAITextGenerator struct {
	llm         *openai.LLM
	temperature float64
	logger      *zap.Logger
}

// NewOpenAITextGenerator creates a new instance of OpenAITextGenerator.
func NewOpenAITextGenerator(apiKey, model string, temperature float64, logger *zap.Logger) (domain.TextGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenAI model name cannot be empty")
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	logger.Info("Initialized OpenAI text generator", zap.String("model", model))
	return &OpenAITextGenerator{llm: llm, temperature: temperature, logger: logger}, nil
}

// GenerateText sends the prompt once and returns the model's text
// fragments in delivery order. JSON mode is requested as an output
// format hint; the normalizer still does not trust it.
func (g *OpenAITextGenerator) GenerateText(ctx context.Context, prompt string) ([]string, error) {
	resp, err := g.llm.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		llms.WithTemperature(g.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		g.logger.Error("OpenAI generation call failed", zap.Error(err))
		return nil, fmt.Errorf("OpenAI call failed: %w", err)
	}

	fragments := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		if choice != nil && choice.Content != "" {
			fragments = append(fragments, choice.Content)
		}
	}
	if len(fragments) == 0 {
		return nil, fmt.Errorf("OpenAI returned no text content")
	}
	return fragments, nil
}

var _ domain.TextGenerator = (*OpenAITextGenerator)(nil)
