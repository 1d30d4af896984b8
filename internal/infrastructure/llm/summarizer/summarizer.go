package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"task-launcher/internal/application/port/output"
	"task-launcher/internal/domain/entity"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/prompts"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	defaultChunkSize   = 6000
	defaultTemperature = 0.2
)

var ErrNoResults = errors.New("no search results to summarize")

var _ output.SummarizerPort = (*Summarizer)(nil)

type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	ChunkSize int
}

type Summarizer struct {
	model    llms.Model
	template prompts.PromptTemplate
	splitter textsplitter.RecursiveCharacter
	logger   output.LoggerPort
}

// NewOpenAIModel builds the langchaingo client used for summaries.
func NewOpenAIModel(cfg Config) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create summarization model: %w", err)
	}
	return llm, nil
}

func New(model llms.Model, promptTemplate string, chunkSize int, logger output.LoggerPort) *Summarizer {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	return &Summarizer{
		model:    model,
		template: prompts.NewPromptTemplate(promptTemplate, []string{"query", "results"}),
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(0),
		),
		logger: logger,
	}
}

// Summarize sends the leading chunk of the formatted results to the model.
// Results beyond the chunk size are dropped so every summary costs exactly
// one completion.
func (s *Summarizer) Summarize(ctx context.Context, query string, results []entity.SearchResult) (string, error) {
	if len(results) == 0 {
		return "", ErrNoResults
	}
	log := output.LoggerFrom(ctx, s.logger)

	chunks, err := s.splitter.SplitText(entity.FormatSearchResults(results))
	if err != nil {
		return "", fmt.Errorf("split results: %w", err)
	}
	if len(chunks) == 0 {
		return "", ErrNoResults
	}
	if len(chunks) > 1 {
		log.Debug("Search results truncated for summary", "chunks", len(chunks))
	}

	prompt, err := s.template.Format(map[string]any{
		"query":   query,
		"results": chunks[0],
	})
	if err != nil {
		return "", fmt.Errorf("format summary prompt: %w", err)
	}

	summary, err := llms.GenerateFromSinglePrompt(ctx, s.model, prompt, llms.WithTemperature(defaultTemperature))
	if err != nil {
		return "", fmt.Errorf("summarize results: %w", err)
	}

	summary = strings.TrimSpace(summary)
	log.Info("Search results summarized", "query", query, "results", len(results), "summaryLen", len(summary))
	return summary, nil
}
