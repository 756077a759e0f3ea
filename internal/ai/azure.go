package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"smartnotes/config"
)

const (
	maxCompletionTokens = 512
	// Upper bound on a provider response body.
	maxResponseBytes = 4 << 20
)

// AzureOpenAIProvider calls an Azure OpenAI chat completions deployment.
type AzureOpenAIProvider struct {
	endpoint   string
	apiKey     string
	deployment string
	apiVersion string
	httpClient *http.Client
}

func NewAzureOpenAIProvider(cfg config.AzureOpenAI) *AzureOpenAIProvider {
	return &AzureOpenAIProvider{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		deployment: cfg.Deployment,
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (p *AzureOpenAIProvider) Name() string { return "azure-openai" }

func (p *AzureOpenAIProvider) Complete(ctx context.Context, action Action, content string) (string, error) {
	if !action.Valid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}
	if p.deployment == "" {
		return "", p.fail(0, errors.New("AZURE_OPENAI_DEPLOYMENT is not configured"))
	}

	body, err := json.Marshal(chatRequest{
		Messages:  []chatMessage{{Role: "user", Content: action.Prompt(content)}},
		MaxTokens: maxCompletionTokens,
	})
	if err != nil {
		return "", p.fail(0, fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.completionsURL(), bytes.NewReader(body))
	if err != nil {
		return "", p.fail(0, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", p.apiKey)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", p.fail(0, fmt.Errorf("execute request: %w", err))
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return "", p.fail(httpResp.StatusCode, fmt.Errorf("read response: %w", err))
	}

	var resp chatResponse
	decodeErr := json.Unmarshal(raw, &resp)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		if decodeErr == nil && resp.Error != nil && resp.Error.Message != "" {
			return "", p.fail(httpResp.StatusCode, fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Message))
		}
		return "", p.fail(httpResp.StatusCode, errors.New(http.StatusText(httpResp.StatusCode)))
	}
	if decodeErr != nil {
		return "", p.fail(httpResp.StatusCode, fmt.Errorf("decode response: %w", decodeErr))
	}
	if len(resp.Choices) == 0 {
		return "", p.fail(httpResp.StatusCode, errors.New("response contained no choices"))
	}

	if msg := resp.Choices[0].Message.Content; msg != nil {
		return *msg, nil
	}
	return "", nil
}

func (p *AzureOpenAIProvider) completionsURL() string {
	q := url.Values{"api-version": {p.apiVersion}}
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?%s",
		p.endpoint, url.PathEscape(p.deployment), q.Encode())
}

func (p *AzureOpenAIProvider) fail(status int, err error) error {
	return &ProviderError{Provider: p.Name(), StatusCode: status, Err: err}
}

// Azure OpenAI request/response types
type chatRequest struct {
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
