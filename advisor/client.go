package advisor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kardolus/taskpilot/agent"
	"github.com/kardolus/taskpilot/api"
	apihttp "github.com/kardolus/taskpilot/api/http"
	"github.com/kardolus/taskpilot/config"
)

const (
	defaultPlanTemperature = 0.3
	chatTemperature        = 0.7
	analyzeTemperature     = 0.3
	formatTemperature      = 0.5

	defaultMaxTokens = 4096
	shortMaxTokens   = 2048

	defaultConfidence   = 0.5
	analysisUnavailable = "Failed to analyze error"

	roleSystem    = "system"
	roleUser      = "user"
	roleAssistant = "assistant"
)

// Client is an agent.Advisor on top of a model Provider. Planning and chat
// share one conversation history.
type Client struct {
	provider Provider
	config   config.Config
	debug    *zap.SugaredLogger

	stream io.Writer
	onRaw  func(string)

	mu      sync.Mutex
	history []api.Message
}

var _ agent.Advisor = &Client{}

type Option func(*Client)

func WithDebugLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.debug = l
		}
	}
}

// WithStreamWriter streams chat replies to w as they arrive.
func WithStreamWriter(w io.Writer) Option {
	return func(c *Client) { c.stream = w }
}

// WithProvider replaces the provider New would pick from the config.
func WithProvider(p Provider) Option {
	return func(c *Client) { c.provider = p }
}

// WithPlanRawSink receives the unparsed model reply of every planning request.
func WithPlanRawSink(fn func(string)) Option {
	return func(c *Client) { c.onRaw = fn }
}

// New builds a Client for the provider named in cfg; caller is used for
// OpenAI-compatible endpoints.
func New(caller apihttp.Caller, cfg config.Config, opts ...Option) *Client {
	c := &Client{
		config: cfg,
		debug:  zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.provider == nil {
		c.provider = NewProvider(caller, cfg, c.debug)
	}
	return c
}

func (c *Client) PlanTask(ctx context.Context, task string, pc agent.ProjectContext, actions []agent.ActionKind) (agent.Plan, error) {
	user := api.Message{Role: roleUser, Content: buildTaskPrompt(task, pc, actions)}
	messages := c.withHistory(planSystemPrompt, user)

	c.debug.Debugf("advisor: plan request messages=%d project_type=%q", len(messages), pc.ProjectType)

	raw, err := c.complete(ctx, messages, c.planTemperature(), c.maxTokens(), false)
	if err != nil {
		return agent.Plan{}, err
	}
	if c.onRaw != nil {
		c.onRaw(raw)
	}

	plan, err := parsePlan(raw)
	if err != nil {
		c.debug.Debugf("advisor: plan parse failed: %v", err)
		return agent.Plan{}, err
	}

	c.remember(user, api.Message{Role: roleAssistant, Content: raw})
	c.debug.Debugf("advisor: plan ok steps=%d confidence=%.2f", len(plan.Steps), plan.Confidence)
	return plan, nil
}

// AnalyzeError never fails: a request or parse error degrades to an analysis
// without suggestions.
func (c *Client) AnalyzeError(ctx context.Context, info agent.ErrorInfo) (agent.Analysis, error) {
	messages := []api.Message{
		{Role: roleSystem, Content: planSystemPrompt},
		{Role: roleUser, Content: buildAnalyzePrompt(info)},
	}

	raw, err := c.complete(ctx, messages, analyzeTemperature, shortMaxTokens, false)
	if err != nil {
		c.debug.Warnf("advisor: analyze request failed kind=%s: %v", info.Kind, err)
		return agent.Analysis{Analysis: analysisUnavailable}, nil
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		c.debug.Warnf("advisor: analyze parse failed: %v", err)
		return agent.Analysis{Analysis: analysisUnavailable}, nil
	}

	c.debug.Debugf("advisor: analyze ok suggestions=%d", len(analysis.Suggestions))
	return analysis, nil
}

func (c *Client) FormatToolResult(ctx context.Context, action agent.ActionKind, res agent.ToolResult, task string) (string, error) {
	messages := []api.Message{
		{Role: roleSystem, Content: formatSystemPrompt},
		{Role: roleUser, Content: buildFormatPrompt(action, res, task)},
	}

	out, err := c.complete(ctx, messages, formatTemperature, shortMaxTokens, false)
	if err != nil {
		return "", fmt.Errorf("format result: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (c *Client) Chat(ctx context.Context, text string) (string, error) {
	user := api.Message{Role: roleUser, Content: text}
	messages := c.withHistory(chatSystemPrompt, user)

	reply, err := c.complete(ctx, messages, chatTemperature, c.maxTokens(), c.stream != nil)
	if err != nil {
		return "", err
	}

	reply = strings.TrimSpace(reply)
	c.remember(user, api.Message{Role: roleAssistant, Content: reply})
	return reply, nil
}

func (c *Client) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
	c.debug.Debug("advisor: history cleared")
}

func (c *Client) withHistory(system string, next api.Message) []api.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	messages := make([]api.Message, 0, len(c.history)+2)
	messages = append(messages, api.Message{Role: roleSystem, Content: system})
	messages = append(messages, c.history...)
	return append(messages, next)
}

func (c *Client) remember(msgs ...api.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, msgs...)
}

func (c *Client) complete(ctx context.Context, messages []api.Message, temperature float64, maxTokens int, stream bool) (string, error) {
	req := Request{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	if stream {
		return c.provider.Stream(ctx, req, c.stream)
	}
	return c.provider.Complete(ctx, req)
}

func (c *Client) planTemperature() float64 {
	if c.config.Temperature > 0 {
		return c.config.Temperature
	}
	return defaultPlanTemperature
}

func (c *Client) maxTokens() int {
	if c.config.MaxTokens > 0 {
		return c.config.MaxTokens
	}
	return defaultMaxTokens
}
