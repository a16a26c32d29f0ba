// Package analyzer asks a hosted language model for a deeper credibility
// judgement of a health page and merges it into the heuristic report.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/karandeol-26/VeriCura/internal/logging"
	"github.com/karandeol-26/VeriCura/internal/model"
)

// ErrNotConfigured is returned when no API key is set. No request is made.
var ErrNotConfigured = errors.New("analyzer: deep analysis is not configured (missing API key)")

// RequestError is a non-2xx answer from the model API.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("xAI request failed (%d): %s", e.StatusCode, e.Body)
}

// Input is what the model is shown about a page.
type Input struct {
	Text           string
	URL            string
	HeuristicScore int
	AuthorNames    []string
}

// Analyzer produces a deep analysis for a page.
type Analyzer interface {
	Analyze(ctx context.Context, in Input) (*model.AnalysisResult, error)
	Close() error
}

// XAIAnalyzer talks to an OpenAI-compatible chat completions endpoint.
type XAIAnalyzer struct {
	cfg    Config
	client openai.Client
	logger logging.Logger
}

// NewXAIAnalyzer builds an analyzer. httpClient may be nil. A config
// without an API key is accepted; Analyze then returns ErrNotConfigured.
func NewXAIAnalyzer(cfg Config, logger logging.Logger, httpClient *http.Client) (*XAIAnalyzer, error) {
	if logger == nil {
		return nil, errors.New("analyzer: nil logger")
	}
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.ExcerptLen <= 0 {
		cfg.ExcerptLen = def.ExcerptLen
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}

	l := logger.With(logging.Field{Key: "component", Value: "analyzer"})
	l.Debug("created xai analyzer",
		logging.Field{Key: "model", Value: cfg.Model},
		logging.Field{Key: "configured", Value: cfg.Configured()})

	return &XAIAnalyzer{
		cfg:    cfg,
		client: openai.NewClient(opts...),
		logger: l,
	}, nil
}

// Analyze sends one chat completion and parses the answer. An answer that
// is not the expected JSON comes back as a Raw result holding the text.
func (a *XAIAnalyzer) Analyze(ctx context.Context, in Input) (*model.AnalysisResult, error) {
	if !a.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	params := openai.ChatCompletionNewParams{
		Model: a.cfg.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt()),
			openai.UserMessage(BuildPrompt(in, a.cfg.ExcerptLen)),
		},
		Temperature: openai.Float(a.cfg.Temperature),
	}

	start := time.Now()
	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			body := strings.TrimSpace(apiErr.RawJSON())
			if body == "" {
				body = http.StatusText(apiErr.StatusCode)
			}
			return nil, &RequestError{StatusCode: apiErr.StatusCode, Body: body}
		}
		return nil, fmt.Errorf("analyzer: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("analyzer: no choices in response")
	}

	content := resp.Choices[0].Message.Content
	result := ParseContent(content)

	a.logger.Info("deep analysis completed",
		logging.Field{Key: "url", Value: in.URL},
		logging.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
		logging.Field{Key: "raw", Value: result.Raw},
		logging.Field{Key: "prompt_tokens", Value: resp.Usage.PromptTokens})
	return result, nil
}

func (a *XAIAnalyzer) Close() error { return nil }
