package openai

import (
	"context"
	"errors"
	"testing"

	gopenai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierr "github.com/swapsage/swapsage-cli/internal/errors"
)

type fakeChat struct {
	lastReq gopenai.ChatCompletionRequest
	resp    gopenai.ChatCompletionResponse
	err     error
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req gopenai.ChatCompletionRequest) (gopenai.ChatCompletionResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestCompleteRequestsJSONMode(t *testing.T) {
	fake := &fakeChat{resp: gopenai.ChatCompletionResponse{
		Choices: []gopenai.ChatCompletionChoice{
			{Message: gopenai.ChatCompletionMessage{Content: `{"summary":"ok"}`}},
		},
	}}
	c := &Client{chat: fake, model: "gpt-4-turbo-preview", logger: newTestLogger(), hasKey: true}

	got, err := c.Complete(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, got)
	require.NotNil(t, fake.lastReq.ResponseFormat)
	assert.Equal(t, gopenai.ChatCompletionResponseFormatTypeJSONObject, fake.lastReq.ResponseFormat.Type)
	assert.InDelta(t, 0.7, float64(fake.lastReq.Temperature), 0.001)
	require.Len(t, fake.lastReq.Messages, 2)
	assert.Equal(t, gopenai.ChatMessageRoleSystem, fake.lastReq.Messages[0].Role)
}

func TestCompleteMissingKeyIsAuthError(t *testing.T) {
	c := New("", "gpt-4-turbo-preview", newTestLogger())
	_, err := c.Complete(context.Background(), "system", "user")
	cErr, ok := clierr.As(err)
	require.True(t, ok)
	assert.Equal(t, clierr.CodeAuth, cErr.Code)
}

func TestCompleteTransportFailureIsRecoverable(t *testing.T) {
	fake := &fakeChat{err: errors.New("connection reset")}
	c := &Client{chat: fake, model: "gpt-4-turbo-preview", logger: newTestLogger(), hasKey: true}

	_, err := c.Complete(context.Background(), "system", "user")
	require.Error(t, err)
	assert.True(t, clierr.Recoverable(err))
}

func TestCompleteEmptyChoicesRejected(t *testing.T) {
	fake := &fakeChat{resp: gopenai.ChatCompletionResponse{}}
	c := &Client{chat: fake, model: "gpt-4-turbo-preview", logger: newTestLogger(), hasKey: true}

	_, err := c.Complete(context.Background(), "system", "user")
	cErr, ok := clierr.As(err)
	require.True(t, ok)
	assert.Equal(t, clierr.CodeValidation, cErr.Code)
}
