package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config는 애플리케이션 전체 설정입니다
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Admin         AdminConfig         `mapstructure:"admin"`
	MongoDB       MongoDBConfig       `mapstructure:"mongodb"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AppConfig는 애플리케이션 기본 설정입니다
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig는 서버 설정입니다
type ServerConfig struct {
	HTTP HTTPServerConfig `mapstructure:"http"`
}

// HTTPServerConfig는 HTTP 서버 설정입니다
type HTTPServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimit       int64         `mapstructure:"rate_limit"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
}

// AdminConfig는 관리자 인증 설정입니다.
// 비밀번호가 없으면 서비스는 기동에 실패합니다 (fail closed).
type AdminConfig struct {
	Password  string `mapstructure:"password"`
	UseVault  bool   `mapstructure:"use_vault"`
	VaultPath string `mapstructure:"vault_path"`
}

// MongoDBConfig는 MongoDB 설정입니다
type MongoDBConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	Collection     string        `mapstructure:"collection"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
	MinPoolSize    uint64        `mapstructure:"min_pool_size"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	Timeout        time.Duration `mapstructure:"timeout"`
	UseVault       bool          `mapstructure:"use_vault"`
	VaultPath      string        `mapstructure:"vault_path"`
}

// RedisConfig는 Redis 설정입니다
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig는 Kafka 설정입니다
type KafkaConfig struct {
	Enabled  bool                `mapstructure:"enabled"`
	Brokers  []string            `mapstructure:"brokers"`
	ClientID string              `mapstructure:"client_id"`
	Producer KafkaProducerConfig `mapstructure:"producer"`
	Topics   KafkaTopics         `mapstructure:"topics"`
}

// KafkaProducerConfig는 Kafka Producer 설정입니다
type KafkaProducerConfig struct {
	MaxMessageBytes  int           `mapstructure:"max_message_bytes"`
	RequiredAcks     int16         `mapstructure:"required_acks"`
	Compression      string        `mapstructure:"compression"`
	MaxRetries       int           `mapstructure:"max_retries"`
	RetryBackoff     time.Duration `mapstructure:"retry_backoff"`
	EnableIdempotent bool          `mapstructure:"enable_idempotent"`
}

// KafkaTopics는 카탈로그 변경 이벤트 토픽 설정입니다
type KafkaTopics struct {
	MovieCreated string `mapstructure:"movie_created"`
	MovieUpdated string `mapstructure:"movie_updated"`
	MovieDeleted string `mapstructure:"movie_deleted"`
}

// VaultConfig는 Vault 설정입니다
type VaultConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Address    string `mapstructure:"address"`
	Token      string `mapstructure:"token"`
	AuthMethod string `mapstructure:"auth_method"`
	RoleID     string `mapstructure:"role_id"`
	SecretID   string `mapstructure:"secret_id"`
	Namespace  string `mapstructure:"namespace"`
}

// ObservabilityConfig는 관찰성 설정입니다
type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig는 로깅 설정입니다
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// TracingConfig는 분산 추적 설정입니다
type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	ServiceName    string  `mapstructure:"service_name"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
}

// MetricsConfig는 메트릭 설정입니다
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoadConfig는 설정 파일을 로드합니다
func LoadConfig(configPath string, configName string) (*Config, error) {
	v := viper.New()

	// 설정 파일 경로 및 이름 설정
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if configName != "" {
		v.SetConfigName(configName)
	} else {
		v.SetConfigName("config")
	}

	v.SetConfigType("yaml")

	// 환경변수 바인딩
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 설정 파일 읽기
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 설정 구조체로 언마샬
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 환경변수로 민감한 값 오버라이드
	overrideFromEnv(&config)

	return &config, nil
}

// overrideFromEnv는 환경변수로 민감한 설정을 오버라이드합니다
func overrideFromEnv(config *Config) {
	// 관리자 비밀번호
	if val := os.Getenv("ADMIN_PASSWORD"); val != "" {
		config.Admin.Password = val
	}

	// MongoDB 설정
	if val := os.Getenv("MONGODB_URI"); val != "" {
		config.MongoDB.URI = val
	}
	if val := os.Getenv("MONGODB_DATABASE"); val != "" {
		config.MongoDB.Database = val
	}

	// Redis 설정
	if val := os.Getenv("REDIS_HOST"); val != "" {
		config.Redis.Host = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		config.Redis.Password = val
	}

	// Kafka 설정
	if val := os.Getenv("KAFKA_BROKERS"); val != "" {
		config.Kafka.Brokers = strings.Split(val, ",")
	}
	if val := os.Getenv("KAFKA_CLIENT_ID"); val != "" {
		config.Kafka.ClientID = val
	}

	// Vault 설정
	if val := os.Getenv("VAULT_TOKEN"); val != "" {
		config.Vault.Token = val
	}
	if val := os.Getenv("VAULT_ADDRESS"); val != "" {
		config.Vault.Address = val
	}
	if val := os.Getenv("VAULT_ROLE_ID"); val != "" {
		config.Vault.RoleID = val
	}
	if val := os.Getenv("VAULT_SECRET_ID"); val != "" {
		config.Vault.SecretID = val
	}
	if val := os.Getenv("VAULT_NAMESPACE"); val != "" {
		config.Vault.Namespace = val
	}

	// 애플리케이션 설정
	if val := os.Getenv("APP_ENVIRONMENT"); val != "" {
		config.App.Environment = val
	}
	if val := os.Getenv("APP_VERSION"); val != "" {
		config.App.Version = val
	}

	// Observability 설정
	if val := os.Getenv("JAEGER_ENDPOINT"); val != "" {
		config.Observability.Tracing.JaegerEndpoint = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		config.Observability.Logging.Level = val
	}
}

// Validate는 설정을 검증합니다
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Server.HTTP.Port <= 0 {
		return fmt.Errorf("server.http.port must be positive")
	}

	// 관리자 비밀번호가 없으면 변경 API 전체가 열리거나 닫히는 대신
	// 기동 자체를 거부합니다
	if c.Admin.Password == "" && !(c.Vault.Enabled && c.Admin.UseVault) {
		return fmt.Errorf("admin.password is required (set ADMIN_PASSWORD or configure vault)")
	}

	if !c.MongoDB.UseVault && c.MongoDB.URI == "" {
		return fmt.Errorf("mongodb.uri is required when vault is not used")
	}
	if c.MongoDB.Database == "" {
		return fmt.Errorf("mongodb.database is required")
	}
	if c.MongoDB.Collection == "" {
		return fmt.Errorf("mongodb.collection is required")
	}

	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("redis.host is required")
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}

	if c.Vault.Enabled {
		if c.Vault.Address == "" {
			return fmt.Errorf("vault.address is required")
		}
		if c.Vault.AuthMethod == "token" && c.Vault.Token == "" {
			return fmt.Errorf("vault.token is required for token auth")
		}
	}

	return nil
}
