// Package gateway sends composed prompts to a locally hosted Ollama
// instance and translates failures into localized user-visible replies.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/jsoler/apunte/internal/lang"
	"github.com/jsoler/apunte/internal/prompt"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 60 * time.Second

// Client wraps the Ollama API client with prompt composition.
type Client struct {
	ollama  *api.Client
	model   string
	prompts *prompt.Provider
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a gateway client against the given Ollama host
// (e.g. http://localhost:11434).
func New(host, model string, prompts *prompt.Provider, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("gateway: parse host %q: %w", host, err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		ollama:  api.NewClient(base, http.DefaultClient),
		model:   model,
		prompts: prompts,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// compose builds the full prompt: base instruction, explicit language
// directive, optional extra context block, then the user message.
func (c *Client) compose(message, extraContext string) string {
	base := c.prompts.Prompt()
	directive := lang.Directive(lang.Detect(message))

	var b strings.Builder
	b.WriteString(base.Content)
	b.WriteString("\n\n")
	b.WriteString(directive)
	b.WriteString("\n\n")
	if extraContext != "" {
		b.WriteString("Additional context:\n")
		b.WriteString(extraContext)
		b.WriteString("\n\n")
	}
	b.WriteString("User: ")
	b.WriteString(message)
	b.WriteString("\n\nAssistant:")
	return b.String()
}

// Generate sends one synchronous generation request and returns the model
// output. The request is bounded by the configured timeout and retried once
// on failure.
func (c *Client) Generate(ctx context.Context, message, extraContext string) (string, error) {
	req := &api.GenerateRequest{
		Model:  c.model,
		Prompt: c.compose(message, extraContext),
		Stream: new(bool), // single response, no streaming
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		text, err := c.generateOnce(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("gateway: generate: %w", lastErr)
}

func (c *Client) generateOnce(ctx context.Context, req *api.GenerateRequest) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var out strings.Builder
	err := c.ollama.Generate(reqCtx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// Reply generates a response for the user message, falling back to a
// localized apology when the model call fails. Failures are logged and
// never propagate past the gateway.
func (c *Client) Reply(ctx context.Context, message, extraContext string) string {
	text, err := c.Generate(ctx, message, extraContext)
	if err != nil {
		c.logger.Error("gateway: generation failed",
			slog.String("model", c.model),
			slog.String("error", err.Error()))
		return lang.Apology(lang.Detect(message))
	}
	return text
}
