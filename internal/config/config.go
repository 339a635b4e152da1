package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "KOMARABO"

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Log struct {
		Level string
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
		RequireToken    bool
	}
	Admin struct {
		// Bootstrap is a comma separated list of user_hash values granted admin at startup.
		Bootstrap string
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
}

// Load reads configuration from environment variables and an optional config file.
// configFile overrides the default lookup of ./config.{yaml,json,toml}.
func Load(configFile string) (Config, error) {
	loadDotEnv(".env")

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8787")
	v.SetDefault("database.path", "data/komarabo.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 24*60)
	v.SetDefault("auth.requiretoken", false)
	v.SetDefault("admin.bootstrap", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "komarabo")
	v.SetDefault("storage.region", "ap-northeast-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// AdminHashes splits Admin.Bootstrap into trimmed, non-empty user hashes.
func (c Config) AdminHashes() []string {
	var out []string
	for _, h := range strings.Split(c.Admin.Bootstrap, ",") {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

// ValidateServe reports settings the HTTP server cannot start without.
func (c Config) ValidateServe() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth jwt secret is required (set KOMARABO_AUTH_JWTSECRET)")
	}
	if c.Auth.TokenTTLMinutes < 0 {
		return fmt.Errorf("auth token ttl must not be negative, got %d", c.Auth.TokenTTLMinutes)
	}
	return nil
}

func loadDotEnv(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
