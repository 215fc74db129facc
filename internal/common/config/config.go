package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config 应用配置
type Config struct {
	App     AppConfig     `json:"app"`
	Storage StorageConfig `json:"storage"`
	Auth    AuthConfig    `json:"auth"`
	Log     LogConfig     `json:"log"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name string `json:"name" envconfig:"APP_NAME"`
}

// StorageConfig 存储配置。driver 可选 file（逐行文本文件）或 sqlite。
type StorageConfig struct {
	Driver     string `json:"driver" envconfig:"STORAGE_DRIVER"`
	DataDir    string `json:"data_dir" envconfig:"STORAGE_DATA_DIR"`
	SQLitePath string `json:"sqlite_path" envconfig:"STORAGE_SQLITE_PATH"`
}

// AuthConfig 登录会话配置
type AuthConfig struct {
	JWTSecret         string `json:"jwt_secret" envconfig:"AUTH_JWT_SECRET"`
	Issuer            string `json:"issuer" envconfig:"AUTH_ISSUER"`
	Audience          string `json:"audience" envconfig:"AUTH_AUDIENCE"`
	SessionTTLMinutes int    `json:"session_ttl_minutes" envconfig:"AUTH_SESSION_TTL_MINUTES"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `json:"level" envconfig:"LOG_LEVEL"`   // debug, info, warn, error
	Format string `json:"format" envconfig:"LOG_FORMAT"` // json, text
	Output string `json:"output" envconfig:"LOG_OUTPUT"` // stdout, file
	Path   string `json:"path" envconfig:"LOG_PATH"`     // 日志文件路径
}

var (
	globalConfig *Config
	configOnce   sync.Once
)

// LoadConfig 加载配置：先读 .env（可选），再读 JSON 配置文件，最后用环境变量覆盖。
// 配置文件不存在时退回默认配置。
func LoadConfig(configPath string) (*Config, error) {
	var err error
	configOnce.Do(func() {
		_ = godotenv.Load()

		globalConfig = defaultConfig()
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			logrus.Warnf("config file not found: %s, using default config", configPath)
		} else {
			data, readErr := os.ReadFile(configPath)
			if readErr != nil {
				err = fmt.Errorf("failed to read config file: %w", readErr)
				return
			}
			if unmarshalErr := json.Unmarshal(data, globalConfig); unmarshalErr != nil {
				err = fmt.Errorf("failed to parse config file: %w", unmarshalErr)
				return
			}
		}

		// 环境变量优先级最高，CARRENTAL_ 前缀
		if envErr := envconfig.Process("carrental", globalConfig); envErr != nil {
			err = fmt.Errorf("failed to process env config: %w", envErr)
			return
		}
	})

	if err != nil {
		return nil, err
	}
	return globalConfig, nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if globalConfig == nil {
		return defaultConfig()
	}
	return globalConfig
}

// defaultConfig 默认配置（本地单机环境）
func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name: "carrental",
		},
		Storage: StorageConfig{
			Driver:     "file",
			DataDir:    "data",
			SQLitePath: "data/carrental.db",
		},
		Auth: AuthConfig{
			JWTSecret:         "carrental-dev-secret",
			Issuer:            "carrental",
			Audience:          "carrental",
			SessionTTLMinutes: 8 * 60,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
			Path:   "logs/carrental.log",
		},
	}
}
