package vault

import (
	"context"
	"fmt"
	"path"

	"github.com/hashicorp/vault/api"
	"go.uber.org/zap"

	"github.com/lyra-ai/lyra-backend/pkg/config"
)

// Secret locations under the KV v2 mount.
const (
	DatabasePath = "lyra/database"
	JWTPath      = "lyra/jwt"
	OpenAIPath   = "lyra/openai"
)

// SecretManager reads KV v2 secrets.
type SecretManager struct {
	client *api.Client
	mount  string
	log    *zap.Logger
}

func NewSecretManager(cfg config.VaultConfig, log *zap.Logger) (*SecretManager, error) {
	vc := api.DefaultConfig()
	vc.Address = cfg.Address

	client, err := api.NewClient(vc)
	if err != nil {
		return nil, fmt.Errorf("vault client: %w", err)
	}
	if cfg.Token != "" {
		client.SetToken(cfg.Token)
	}

	mount := cfg.Mount
	if mount == "" {
		mount = "secret"
	}
	return &SecretManager{client: client, mount: mount, log: log}, nil
}

// ReadField returns a string field of the secret at p. A missing secret or
// field yields "" without error so callers can keep file/env values.
func (sm *SecretManager) ReadField(ctx context.Context, p, field string) (string, error) {
	secret, err := sm.client.Logical().ReadWithContext(ctx, path.Join(sm.mount, "data", p))
	if err != nil {
		return "", fmt.Errorf("vault read %s: %w", p, err)
	}
	if secret == nil || secret.Data == nil {
		return "", nil
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return "", nil
	}
	raw, ok := data[field]
	if !ok {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("vault %s.%s is %T, want string", p, field, raw)
	}
	return value, nil
}

// LoadSecrets reads every secret the server consumes.
func (sm *SecretManager) LoadSecrets(ctx context.Context) (config.Secrets, error) {
	var s config.Secrets
	fields := []struct {
		path, field string
		dst         *string
	}{
		{DatabasePath, "connection_string", &s.DatabaseURL},
		{JWTPath, "secret", &s.JWTSecret},
		{OpenAIPath, "api_key", &s.OpenAIAPIKey},
	}
	for _, f := range fields {
		v, err := sm.ReadField(ctx, f.path, f.field)
		if err != nil {
			return config.Secrets{}, err
		}
		*f.dst = v
		if v != "" {
			sm.log.Info("Secret loaded from Vault", zap.String("path", f.path))
		}
	}
	return s, nil
}
