package keysource

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// DefaultEnvPrefix namespaces the wallet's secret environment variables.
const DefaultEnvPrefix = "WALLET_SECRET_"

// EnvProvider loads secrets from environment variables.
//
// Secret names are uppercased with hyphens replaced by underscores and
// prefixed, so "encryption-key" reads WALLET_SECRET_ENCRYPTION_KEY.
type EnvProvider struct {
	Prefix string
}

// NewEnvProvider creates an environment variable secret provider. An empty
// prefix falls back to DefaultEnvPrefix.
func NewEnvProvider(prefix string) *EnvProvider {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return &EnvProvider{Prefix: prefix}
}

// GetSecret retrieves a secret from its environment variable.
func (p *EnvProvider) GetSecret(ctx context.Context, name string) (string, error) {
	envVar := p.envVarName(name)

	value := os.Getenv(envVar)
	if value == "" {
		return "", fmt.Errorf("secret not found in environment: %s (env var: %s)", name, envVar)
	}

	return value, nil
}

// Provider returns the provider name.
func (p *EnvProvider) Provider() string {
	return "env"
}

// Supports always returns true; the environment is the fallback of last
// resort for any secret name.
func (p *EnvProvider) Supports(name string) bool {
	return true
}

func (p *EnvProvider) envVarName(name string) string {
	return p.Prefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
