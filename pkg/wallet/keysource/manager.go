package keysource

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Manager chains secret providers with priority-based fallback. The first
// provider that supports a secret and returns a value wins; values are
// cached so repeated lookups do not hit the backends.
type Manager struct {
	providers []Provider
	logger    *slog.Logger

	mu    sync.RWMutex
	cache map[string]string
}

// NewManager creates a manager trying providers in the given order.
func NewManager(providers ...Provider) *Manager {
	return &Manager{
		providers: providers,
		logger:    slog.Default().With("component", "wallet.keysource"),
		cache:     make(map[string]string),
	}
}

// GetSecret retrieves a secret from the first provider that serves it.
func (m *Manager) GetSecret(ctx context.Context, name string) (string, error) {
	m.mu.RLock()
	if value, ok := m.cache[name]; ok {
		m.mu.RUnlock()
		return value, nil
	}
	m.mu.RUnlock()

	var lastErr error
	for _, provider := range m.providers {
		if !provider.Supports(name) {
			continue
		}

		value, err := provider.GetSecret(ctx, name)
		if err != nil {
			lastErr = err
			m.logger.Debug("provider failed to resolve secret",
				"provider", provider.Provider(),
				"name", name,
				"error", err,
			)
			continue
		}

		m.mu.Lock()
		m.cache[name] = value
		m.mu.Unlock()

		m.logger.Debug("secret resolved",
			"provider", provider.Provider(),
			"name", name,
		)
		return value, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("failed to resolve secret %q: %w", name, lastErr)
	}
	return "", fmt.Errorf("secret not found: %q (no provider serves it)", name)
}

// ResolveEncryptionKey resolves the wallet's encryption key material. An
// empty name falls back to DefaultKeyName. Failure here is the startup
// condition that must keep the process from serving traffic.
func (m *Manager) ResolveEncryptionKey(ctx context.Context, name string) (string, error) {
	if name == "" {
		name = DefaultKeyName
	}

	material, err := m.GetSecret(ctx, name)
	if err != nil {
		return "", fmt.Errorf("encryption key unavailable: %w", err)
	}

	m.logger.Info("encryption key resolved", "name", name)
	return material, nil
}

// Refresh reloads all refreshable providers and clears the manager cache.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	m.cache = make(map[string]string)
	m.mu.Unlock()

	for _, provider := range m.providers {
		refreshable, ok := provider.(RefreshableProvider)
		if !ok {
			continue
		}
		if err := refreshable.Refresh(ctx); err != nil {
			return fmt.Errorf("failed to refresh provider %s: %w", provider.Provider(), err)
		}
	}
	return nil
}
