// Package openai adapts a live OpenAI streaming response into the fragment
// sequence the translator consumes, so fields are routed while the model is
// still generating. Closing the source cancels the underlying HTTP stream.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	osdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/ssestream"
	"github.com/openai/openai-go/v3/responses"

	"postwire/pkg/config"
)

const outputTextDelta = "response.output_text.delta"

// Client opens live model streams against the configured OpenAI endpoint.
type Client struct {
	client osdk.Client
	model  string
}

// NewClient builds a streaming client from config.
func NewClient(cfg *config.Config) (*Client, error) {
	providerCfg := cfg.Providers.OpenAI
	apiKey := resolveAPIKey(providerCfg)
	if apiKey == "" {
		return nil, errors.New("providers.openai.api_key_env is required or OPENAI_API_KEY must be set")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := strings.TrimSpace(providerCfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if organization := strings.TrimSpace(providerCfg.Organization); organization != "" {
		opts = append(opts, option.WithOrganization(organization))
	}
	if project := strings.TrimSpace(providerCfg.Project); project != "" {
		opts = append(opts, option.WithProject(project))
	}

	requestTimeout := time.Duration(providerCfg.RequestTimeoutSeconds) * time.Second
	if requestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(requestTimeout))
	}

	return &Client{
		client: osdk.NewClient(opts...),
		model:  strings.TrimSpace(cfg.Defaults.Model),
	}, nil
}

// Stream sends the prompt and returns a fragment source backed by the live
// response. Each fragment is one output-text delta in generation order.
func (c *Client) Stream(ctx context.Context, prompt string) (*Source, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt is required")
	}
	if c.model == "" {
		return nil, errors.New("model is required")
	}

	log := sourceLogger().With("model", c.model)
	log.Debug("Opening model stream", "prompt_length", len(prompt))

	streamCtx, cancel := context.WithCancel(ctx)
	events := c.client.Responses.NewStreaming(streamCtx, responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{OfString: osdk.String(prompt)},
	})
	if err := events.Err(); err != nil {
		cancel()
		return nil, fmt.Errorf("open model stream: %w", err)
	}

	return &Source{events: events, cancel: cancel, log: log}, nil
}

// Source is a live fragment stream. It implements stream.Fragments.
type Source struct {
	events    *ssestream.Stream[responses.ResponseStreamEventUnion]
	cancel    context.CancelFunc
	closeOnce sync.Once
	closed    bool
	log       *slog.Logger
}

// Next blocks until the model emits the next output-text delta, the response
// ends (io.EOF), or the context is done. Non-text events are skipped.
func (s *Source) Next(ctx context.Context) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if s.closed {
			return "", io.EOF
		}
		if !s.events.Next() {
			if err := s.events.Err(); err != nil && !errors.Is(err, context.Canceled) {
				return "", fmt.Errorf("model stream: %w", err)
			}
			return "", io.EOF
		}

		event := s.events.Current()
		if event.Type == outputTextDelta && event.Delta != "" {
			return event.Delta, nil
		}
	}
}

// Close cancels the request so the model stops being consumed mid-response.
func (s *Source) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.closed = true
		s.cancel()
		err = s.events.Close()
		s.log.Debug("Model stream closed")
	})

	return err
}

func sourceLogger() *slog.Logger {
	return slog.Default().With("component", "source.openai")
}

func resolveAPIKey(cfg config.OpenAIProviderConfig) string {
	if apiKeyEnv := strings.TrimSpace(cfg.APIKeyEnv); apiKeyEnv != "" {
		if apiKey := strings.TrimSpace(os.Getenv(apiKeyEnv)); apiKey != "" {
			return apiKey
		}
	}

	return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
}
