// Package openai implements the language-model capability used for
// natural-language route explanations.
package openai

import (
	"context"
	"strings"

	gopenai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	clierr "github.com/swapsage/swapsage-cli/internal/errors"
	"github.com/swapsage/swapsage-cli/internal/model"
)

const keyEnvVar = "SWAPSAGE_OPENAI_API_KEY"

const completionTemperature = 0.7

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req gopenai.ChatCompletionRequest) (gopenai.ChatCompletionResponse, error)
}

type Client struct {
	chat   chatCompleter
	model  string
	logger *logrus.Logger
	hasKey bool
}

func New(apiKey, modelName string, logger *logrus.Logger) *Client {
	cfg := gopenai.DefaultConfig(apiKey)
	return &Client{
		chat:   gopenai.NewClientWithConfig(cfg),
		model:  modelName,
		logger: logger,
		hasKey: apiKey != "",
	}
}

func (c *Client) Info() model.ProviderInfo {
	return model.ProviderInfo{
		Name:          "openai",
		Type:          "llm",
		RequiresKey:   true,
		KeyEnvVarName: keyEnvVar,
		Capabilities:  []string{"explain.completion"},
	}
}

// Complete asks the model for a single JSON-mode completion. Any failure is
// surfaced as recoverable so callers can fall back to template output.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.hasKey {
		return "", clierr.New(clierr.CodeAuth, "missing required API key for openai ("+keyEnvVar+")")
	}
	resp, err := c.chat.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: completionTemperature,
		ResponseFormat: &gopenai.ChatCompletionResponseFormat{
			Type: gopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: gopenai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		c.logger.WithError(err).Warn("openai completion failed")
		return "", clierr.Wrap(clierr.CodeUnavailable, "openai completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", clierr.New(clierr.CodeValidation, "openai returned no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", clierr.New(clierr.CodeValidation, "openai returned an empty completion")
	}
	return content, nil
}
