package ai

import (
	"context"
	"errors"
	"testing"

	"smartnotes/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProvider struct{ calls int }

func (f *failingProvider) Complete(context.Context, Action, string) (string, error) {
	f.calls++
	return "", &ProviderError{Provider: f.Name(), StatusCode: 503, Err: errors.New("unavailable")}
}

func (f *failingProvider) Name() string { return "failing" }

func TestNewDispatcherSelectsProvider(t *testing.T) {
	disabled := NewDispatcher(config.AzureOpenAI{Endpoint: "https://x"})
	assert.False(t, disabled.Enabled())
	assert.Equal(t, "placeholder", disabled.ProviderName())

	enabled := NewDispatcher(config.AzureOpenAI{Endpoint: "https://x", APIKey: "k", Deployment: "d"})
	assert.True(t, enabled.Enabled())
	assert.Equal(t, "azure-openai", enabled.ProviderName())
}

func TestDispatcherRunPlaceholder(t *testing.T) {
	d := NewDispatcher(config.AzureOpenAI{})

	got, err := d.Run(context.Background(), Summarize, "anything")
	require.NoError(t, err)
	assert.Equal(t, Summarize.Placeholder(), got)
}

func TestDispatcherDoesNotMaskProviderErrors(t *testing.T) {
	p := &failingProvider{}
	d := NewDispatcherWithProvider(p, true)

	got, err := d.Run(context.Background(), Summarize, "x")
	assert.Empty(t, got)
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 503, perr.StatusCode)
	assert.Equal(t, 1, p.calls, "exactly one provider call, no retries")
}

func TestDispatcherRejectsInvalidAction(t *testing.T) {
	p := &failingProvider{}
	d := NewDispatcherWithProvider(p, true)

	_, err := d.Run(context.Background(), Action(42), "x")
	assert.ErrorIs(t, err, ErrInvalidAction)
	assert.Zero(t, p.calls)
}
