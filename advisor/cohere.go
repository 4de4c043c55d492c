package advisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	co "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/kardolus/taskpilot/api"
)

// CohereChatter is the slice of the Cohere SDK the provider needs.
//
//go:generate mockgen -destination=coheremocks_test.go -package=advisor_test github.com/kardolus/taskpilot/advisor CohereChatter
type CohereChatter interface {
	Chat(ctx context.Context, req *co.ChatRequest) (string, error)
	ChatStream(ctx context.Context, req *co.ChatStreamRequest, w io.Writer) (string, error)
}

// CohereProvider talks to Cohere's chat endpoint. The last message of a
// Request becomes the chat message and everything before it the history.
type CohereProvider struct {
	chat CohereChatter
}

var _ Provider = &CohereProvider{}

func NewCohereProvider(chat CohereChatter) *CohereProvider {
	return &CohereProvider{chat: chat}
}

func (p *CohereProvider) Complete(ctx context.Context, req Request) (string, error) {
	message, history, err := splitHistory(req.Messages)
	if err != nil {
		return "", err
	}

	out, err := p.chat.Chat(ctx, &co.ChatRequest{
		Message:     message,
		ChatHistory: history,
		Model:       optional(req.Model),
		Temperature: &req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", errEmptyResponse
	}
	return out, nil
}

func (p *CohereProvider) Stream(ctx context.Context, req Request, w io.Writer) (string, error) {
	message, history, err := splitHistory(req.Messages)
	if err != nil {
		return "", err
	}

	out, err := p.chat.ChatStream(ctx, &co.ChatStreamRequest{
		Message:     message,
		ChatHistory: history,
		Model:       optional(req.Model),
		Temperature: &req.Temperature,
	}, w)
	if err != nil {
		return "", fmt.Errorf("cohere chat stream: %w", err)
	}
	return out, nil
}

func splitHistory(messages []api.Message) (string, []*co.ChatMessage, error) {
	if len(messages) == 0 {
		return "", nil, errors.New("no messages to send")
	}

	history := make([]*co.ChatMessage, 0, len(messages)-1)
	for _, m := range messages[:len(messages)-1] {
		role, err := cohereRole(m.Role)
		if err != nil {
			return "", nil, err
		}
		history = append(history, &co.ChatMessage{Role: role, Message: m.Content})
	}
	return messages[len(messages)-1].Content, history, nil
}

func cohereRole(role string) (co.ChatMessageRole, error) {
	switch role {
	case roleSystem:
		return co.ChatMessageRoleSystem, nil
	case roleUser:
		return co.ChatMessageRoleUser, nil
	case roleAssistant:
		return co.ChatMessageRoleChatbot, nil
	default:
		return "", fmt.Errorf("unknown role: %s", role)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// cohereSDK adapts the generated Cohere client to CohereChatter.
type cohereSDK struct {
	client *cohereclient.Client
}

func NewCohereSDK(apiKey string) CohereChatter {
	return &cohereSDK{client: cohereclient.NewClient(cohereclient.WithToken(apiKey))}
}

func (s *cohereSDK) Chat(ctx context.Context, req *co.ChatRequest) (string, error) {
	res, err := s.client.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

func (s *cohereSDK) ChatStream(ctx context.Context, req *co.ChatStreamRequest, w io.Writer) (string, error) {
	stream, err := s.client.ChatStream(ctx, req)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var b strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return b.String(), err
		}
		if resp.TextGeneration == nil {
			continue
		}
		b.WriteString(resp.TextGeneration.Text)
		if _, err := io.WriteString(w, resp.TextGeneration.Text); err != nil {
			return b.String(), err
		}
	}
}
