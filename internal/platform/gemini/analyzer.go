package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/MaharajTanim/apricity/internal/analysis"
	"github.com/MaharajTanim/apricity/internal/config"
	"github.com/MaharajTanim/apricity/internal/domain"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

// defaultPromptTemplate asks the model for a strict-JSON sentiment analysis
// of one journal entry.
const defaultPromptTemplate = `You are a mental health companion assistant.
Analyze the following journal entry and respond with a single JSON object,
no markdown, using exactly these fields:
  "sentiment": one of "positive", "negative", "neutral", "mixed"
  "score": a number between -1 and 1 expressing sentiment intensity
  "keywords": up to five emotional themes found in the entry
  "suggestions": up to three short, gentle wellbeing suggestions

Journal entry:
{{.EntryText}}
`

// Analyzer implements the analysis.Analyzer interface using Google's Gemini
// API. It performs a single model call per invocation: retrying transient
// failures is the job queue's responsibility, not the analyzer's.
type Analyzer struct {
	logger         *slog.Logger
	config         config.AnalysisConfig
	promptTemplate *template.Template
	client         *genai.Client
	model          string
}

// NewAnalyzer creates a new Analyzer with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: Analysis configuration containing the API key and model name
//
// Returns:
//   - A properly initialized Analyzer or an error if initialization fails
func NewAnalyzer(ctx context.Context, logger *slog.Logger, cfg config.AnalysisConfig) (*Analyzer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", analysis.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", analysis.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("analysis").Parse(defaultPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			analysis.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			analysis.ErrInvalidConfig, err)
	}

	return &Analyzer{
		logger:         logger.With(slog.String("component", "gemini_analyzer")),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// Ensure Analyzer implements analysis.Analyzer
var _ analysis.Analyzer = (*Analyzer)(nil)

// Analyze implements analysis.Analyzer. It renders the prompt, makes a single
// Gemini call, and maps the response into a domain.Analysis.
func (a *Analyzer) Analyze(ctx context.Context, entryID uuid.UUID, text string) (*domain.Analysis, error) {
	prompt, err := a.createPrompt(ctx, text)
	if err != nil {
		return nil, err
	}

	schema, err := a.callGemini(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := &domain.Analysis{
		ID:          uuid.New(),
		EntryID:     entryID,
		Sentiment:   schema.Sentiment,
		Score:       schema.Score,
		Keywords:    schema.Keywords,
		Suggestions: schema.Suggestions,
		ModelName:   a.model,
		CreatedAt:   time.Now().UTC(),
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", analysis.ErrInvalidResponse, err)
	}

	a.logger.InfoContext(ctx, "entry analyzed",
		slog.String("entry_id", entryID.String()),
		slog.String("sentiment", result.Sentiment),
		slog.Float64("score", result.Score),
		slog.Int("keyword_count", len(result.Keywords)))

	return result, nil
}

// createPrompt renders the prompt template with the entry text.
func (a *Analyzer) createPrompt(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", ErrEmptyEntryText
	}

	var buf bytes.Buffer
	if err := a.promptTemplate.Execute(&buf, promptData{EntryText: text}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	a.logger.DebugContext(ctx, "prompt generated",
		slog.Int("entry_length", len(text)),
		slog.Int("prompt_length", buf.Len()))

	return buf.String(), nil
}

// callGemini makes one call to the Gemini API and parses the response.
// API-level failures map to ErrTransientFailure; malformed or blocked
// responses map to permanent errors.
func (a *Analyzer) callGemini(ctx context.Context, prompt string) (*ResponseSchema, error) {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		a.logger.ErrorContext(ctx, "Gemini API call failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", analysis.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", analysis.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: response stopped by safety filters", analysis.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return nil, fmt.Errorf("%w: empty content in response", analysis.ErrInvalidResponse)
	}

	text := resp.Text()
	schema, err := parseResponse(text)
	if err != nil {
		a.logger.WarnContext(ctx, "failed to parse model response",
			slog.String("error", err.Error()),
			slog.Int("response_length", len(text)))
		return nil, err
	}

	return schema, nil
}

// parseResponse decodes the model output into a ResponseSchema, tolerating a
// markdown code fence around the JSON body.
func parseResponse(text string) (*ResponseSchema, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response text", analysis.ErrInvalidResponse)
	}

	var schema ResponseSchema
	if err := json.Unmarshal([]byte(cleaned), &schema); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			analysis.ErrInvalidResponse, err)
	}

	if schema.Sentiment == "" {
		return nil, fmt.Errorf("%w: missing sentiment field", analysis.ErrInvalidResponse)
	}

	return &schema, nil
}
