package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "NOVAREL"

type NovaRelConfig struct {
	AppName string `mapstructure:"app_name"`

	Server struct {
		// Addr is the relwire TCP listener.
		Addr string `mapstructure:"addr"`
		// HTTPAddr enables the HTTP API when set.
		HTTPAddr string `mapstructure:"http_addr"`
		Debug    bool   `mapstructure:"debug"`
	} `mapstructure:"server"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Session struct {
		// Shared makes every TCP connection use one store instead of its own.
		Shared bool `mapstructure:"shared"`
	} `mapstructure:"session"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novarel")
	v.SetDefault("server.addr", "127.0.0.1:8866")
	v.SetDefault("server.http_addr", "")
	v.SetDefault("server.debug", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("session.shared", false)
}

// LoadConfig reads the YAML file at path (skipped when path is empty),
// then applies NOVAREL_* environment overrides, e.g. NOVAREL_SERVER_ADDR.
// A .env file in the working directory is loaded first if present.
func LoadConfig(path string) (*NovaRelConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg NovaRelConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
