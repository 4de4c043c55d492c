package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/kardolus/taskpilot/api"
	apihttp "github.com/kardolus/taskpilot/api/http"
	"github.com/kardolus/taskpilot/config"
)

const (
	ProviderOpenAI = "openai"
	ProviderCohere = "cohere"
)

var errEmptyResponse = errors.New("empty response from API")

// Request is one model turn: the full message list plus sampling settings.
type Request struct {
	Model       string
	Messages    []api.Message
	Temperature float64
	MaxTokens   int
}

// Provider sends a Request to one model vendor and returns the reply text.
//
//go:generate mockgen -destination=providermocks_test.go -package=advisor_test github.com/kardolus/taskpilot/advisor Provider
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
	// Stream writes the reply to w as it arrives and returns all of it.
	Stream(ctx context.Context, req Request, w io.Writer) (string, error)
}

// NewProvider picks the provider named by cfg.Name. Anything other than
// "cohere" is treated as an OpenAI-compatible endpoint reached through caller.
func NewProvider(caller apihttp.Caller, cfg config.Config, debug *zap.SugaredLogger) Provider {
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case ProviderCohere:
		return NewCohereProvider(NewCohereSDK(cfg.APIKey))
	default:
		return NewOpenAIProvider(caller, cfg, debug)
	}
}

type OpenAIProvider struct {
	caller apihttp.Caller
	url    string
	debug  *zap.SugaredLogger
}

var _ Provider = &OpenAIProvider{}

func NewOpenAIProvider(caller apihttp.Caller, cfg config.Config, debug *zap.SugaredLogger) *OpenAIProvider {
	if debug == nil {
		debug = zap.NewNop().Sugar()
	}
	return &OpenAIProvider{caller: caller, url: cfg.URL + cfg.CompletionsPath, debug: debug}
}

func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	body, err := encode(req, false)
	if err != nil {
		return "", err
	}

	raw, err := p.caller.Post(ctx, p.url, body)
	if err != nil {
		return "", err
	}

	var resp api.CompletionsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errEmptyResponse
	}

	p.debug.Debugf("advisor: response model=%s tokens=%d finish=%s",
		resp.Model, resp.Usage.TotalTokens, resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Stream(ctx context.Context, req Request, w io.Writer) (string, error) {
	body, err := encode(req, true)
	if err != nil {
		return "", err
	}

	out, err := p.caller.PostStream(ctx, p.url, body, w)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func encode(req Request, stream bool) ([]byte, error) {
	body, err := json.Marshal(api.CompletionsRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    req.Messages,
		Stream:      stream,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return body, nil
}
