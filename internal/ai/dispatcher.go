package ai

import (
	"context"
	"fmt"

	"smartnotes/config"
	"smartnotes/pkg/logger"
)

// Dispatcher runs actions against the provider chosen at startup.
type Dispatcher struct {
	provider Provider
	enabled  bool
}

// NewDispatcher picks the network provider when the capability check passes
// and the placeholder provider otherwise.
func NewDispatcher(cfg config.AzureOpenAI) *Dispatcher {
	if !cfg.AIEnabled() {
		logger.Sugar.Info("AI integration disabled, using placeholder results")
		return NewDispatcherWithProvider(NewPlaceholderProvider(), false)
	}
	if cfg.Deployment == "" {
		logger.Sugar.Warn("AI integration enabled but AZURE_OPENAI_DEPLOYMENT is empty; AI calls will fail")
	}
	logger.Sugar.Infof("AI integration enabled via %s", cfg.Endpoint)
	return NewDispatcherWithProvider(NewAzureOpenAIProvider(cfg), true)
}

func NewDispatcherWithProvider(p Provider, enabled bool) *Dispatcher {
	return &Dispatcher{provider: p, enabled: enabled}
}

// Enabled reports whether results come from a real provider.
func (d *Dispatcher) Enabled() bool { return d.enabled }

func (d *Dispatcher) ProviderName() string { return d.provider.Name() }

// Run makes exactly one provider call. Provider failures are returned as is
// and never replaced by placeholder text.
func (d *Dispatcher) Run(ctx context.Context, action Action, content string) (string, error) {
	if !action.Valid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}
	return d.provider.Complete(ctx, action, content)
}
