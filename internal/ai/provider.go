package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Provider turns note content into the text result of an action.
type Provider interface {
	Complete(ctx context.Context, action Action, content string) (string, error)
	Name() string
}

// PlaceholderProvider answers every action with its fixed placeholder text.
type PlaceholderProvider struct{}

func NewPlaceholderProvider() *PlaceholderProvider {
	return &PlaceholderProvider{}
}

func (p *PlaceholderProvider) Complete(_ context.Context, action Action, _ string) (string, error) {
	if !action.Valid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidAction, action)
	}
	return action.Placeholder(), nil
}

func (p *PlaceholderProvider) Name() string { return "placeholder" }

// ProviderError reports a failed call to an external provider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s provider error (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Timeout reports whether the call failed because it ran out of time.
func (e *ProviderError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}
