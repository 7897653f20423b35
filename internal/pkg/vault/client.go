package vault

import (
	"context"
	"fmt"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	vault "github.com/hashicorp/vault/api"
)

// Config는 Vault 클라이언트 설정입니다
type Config struct {
	Address    string
	Token      string
	AuthMethod string // "token" 또는 "approle"
	RoleID     string
	SecretID   string
	Namespace  string
}

// Validate는 설정을 검증합니다
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("vault address is required")
	}

	switch c.AuthMethod {
	case "token":
		if c.Token == "" {
			return fmt.Errorf("vault token is required for token auth")
		}
	case "approle":
		if c.RoleID == "" || c.SecretID == "" {
			return fmt.Errorf("vault role_id and secret_id are required for approle auth")
		}
	default:
		return fmt.Errorf("unsupported vault auth method: %s", c.AuthMethod)
	}

	return nil
}

// Client는 Vault 클라이언트 래퍼입니다
type Client struct {
	client *vault.Client
	config *Config
}

// NewClient는 새로운 Vault 클라이언트를 생성합니다
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vault config: %w", err)
	}

	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	// 네임스페이스 설정
	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	c := &Client{
		client: client,
		config: cfg,
	}

	// 인증
	if err := c.authenticate(); err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	logger.Info(context.Background(), "vault client initialized successfully",
		logger.Field("address", cfg.Address),
		logger.Field("auth_method", cfg.AuthMethod),
	)

	return c, nil
}

// authenticate는 Vault에 인증합니다
func (c *Client) authenticate() error {
	switch c.config.AuthMethod {
	case "token":
		c.client.SetToken(c.config.Token)
		// 토큰 유효성 확인
		if _, err := c.client.Auth().Token().LookupSelf(); err != nil {
			return fmt.Errorf("invalid token: %w", err)
		}

	case "approle":
		data := map[string]interface{}{
			"role_id":   c.config.RoleID,
			"secret_id": c.config.SecretID,
		}
		secret, err := c.client.Logical().Write("auth/approle/login", data)
		if err != nil {
			return fmt.Errorf("approle login failed: %w", err)
		}
		if secret == nil || secret.Auth == nil {
			return fmt.Errorf("approle login returned no auth info")
		}
		c.client.SetToken(secret.Auth.ClientToken)
	}

	return nil
}

// GetSecret는 정적 시크릿을 가져옵니다 (KV v2)
func (c *Client) GetSecret(ctx context.Context, path string) (map[string]interface{}, error) {
	secret, err := c.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	if secret == nil {
		return nil, fmt.Errorf("secret not found at path: %s", path)
	}

	// KV v2 데이터 추출
	if inner, ok := secret.Data["data"].(map[string]interface{}); ok {
		return inner, nil
	}
	return secret.Data, nil
}

// GetAdminPassword는 관리자 비밀번호를 가져옵니다
func (c *Client) GetAdminPassword(ctx context.Context, path string) (string, error) {
	data, err := c.GetSecret(ctx, path)
	if err != nil {
		return "", err
	}

	password, ok := data["admin_password"].(string)
	if !ok || password == "" {
		return "", fmt.Errorf("admin_password not found at path: %s", path)
	}

	return password, nil
}

// GetMongoDBURI는 MongoDB 접속 URI를 가져옵니다
func (c *Client) GetMongoDBURI(ctx context.Context, path string) (string, error) {
	data, err := c.GetSecret(ctx, path)
	if err != nil {
		return "", err
	}

	uri, ok := data["uri"].(string)
	if !ok || uri == "" {
		return "", fmt.Errorf("mongodb uri not found at path: %s", path)
	}

	return uri, nil
}

// HealthCheck는 Vault 서버 상태를 확인합니다
func (c *Client) HealthCheck(ctx context.Context) error {
	health, err := c.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health check failed: %w", err)
	}

	if health.Sealed {
		return fmt.Errorf("vault is sealed")
	}

	return nil
}
