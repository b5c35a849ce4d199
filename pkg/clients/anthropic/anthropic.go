package anthropic

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 1024
)

// Client defines the AI text operations the assistant service relies on.
type Client interface {
	Chat(ctx context.Context, history []Message, input string) (string, error)
	Summarize(ctx context.Context, report string) (string, error)
}

// Message is one turn of an assistant conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const chatSystemPrompt = `You are an agronomy assistant for a farm-management platform.
Farmers and field staff ask about crop yields, harvest declarations and
farming practices. Answer concisely and practically. If a question is
outside farming or the platform, say so politely.`

const summarySystemPrompt = `You are a reporting assistant for a farm-management platform.
You receive raw aggregate figures about harvest declarations. Produce a
short plain-language summary (3-5 sentences) highlighting totals, the
leading sectors and anything awaiting review. Do not invent numbers.`

// Chat sends the conversation to the model and returns its reply.
func (c *anthropicClient) Chat(ctx context.Context, history []Message, input string) (string, error) {
	messages := append(append([]Message{}, history...), Message{Role: "user", Content: input})
	return c.complete(ctx, chatSystemPrompt, messages)
}

// Summarize turns raw report figures into a short narrative.
func (c *anthropicClient) Summarize(ctx context.Context, report string) (string, error) {
	messages := []Message{{Role: "user", Content: report}}
	return c.complete(ctx, summarySystemPrompt, messages)
}

func (c *anthropicClient) complete(ctx context.Context, system string, messages []Message) (string, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	return respBody.Content[0].Text, nil
}
