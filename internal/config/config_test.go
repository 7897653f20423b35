package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YouSangSon/movie-catalog-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := []byte(`app:
  name: movie-catalog-service
  environment: test
server:
  http:
    port: 8080
admin:
  password: from-file
mongodb:
  uri: mongodb://file-host:27017
  database: moviedb
  collection: movies
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))
	return dir
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := writeConfigFile(t)

	cfg, err := config.LoadConfig(dir, "config")
	require.NoError(t, err)

	assert.Equal(t, "movie-catalog-service", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, "from-file", cfg.Admin.Password)
	assert.Equal(t, "mongodb://file-host:27017", cfg.MongoDB.URI)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverridesSecrets(t *testing.T) {
	// 민감한 값은 환경변수가 설정 파일보다 우선합니다
	dir := writeConfigFile(t)

	t.Setenv("ADMIN_PASSWORD", "from-env")
	t.Setenv("MONGODB_URI", "mongodb://env-host:27017")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")

	cfg, err := config.LoadConfig(dir, "config")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Admin.Password)
	assert.Equal(t, "mongodb://env-host:27017", cfg.MongoDB.URI)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
}

func TestValidate_MissingAdminPassword(t *testing.T) {
	dir := writeConfigFile(t)

	cfg, err := config.LoadConfig(dir, "config")
	require.NoError(t, err)

	// 관리자 비밀번호가 없으면 기동을 거부합니다
	cfg.Admin.Password = ""
	assert.Error(t, cfg.Validate())
}
