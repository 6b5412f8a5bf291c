package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
	flag "github.com/spf13/pflag"
)

type Config struct {
	TelegramBotToken string      `koanf:"telegram_bot_token"`
	TelegramAPIURL   string      `koanf:"telegram_api_url"`
	StoragePath      string      `koanf:"storage_path"`
	HTTPPort         string      `koanf:"http_port"`
	AllowedUsers     []int64     `koanf:"allowed_users"`
	AppEnv           AppEnv      `koanf:"app_env"`
	Store            StoreConfig `koanf:"store"`
}

// StoreConfig selects where filter records live
type StoreConfig struct {
	Driver StoreDriver `koanf:"driver"`
	// DSN is used by the sqlite and mysql drivers
	DSN   string      `koanf:"dsn"`
	Redis RedisConfig `koanf:"redis"`
}

type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// NewFlagSet returns the command line flags understood by Load
func NewFlagSet() *flag.FlagSet {
	f := flag.NewFlagSet("config", flag.ContinueOnError)
	f.String("config", "", "Path to a YAML, JSON or TOML configuration file")
	f.String("http_port", "", "HTTP port for the feed and metrics server")
	f.String("storage_path", "", "Directory for file based storage")
	f.String("store.driver", "", "Filter store: file, sqlite, mysql or redis")
	f.String("store.dsn", "", "Database DSN for the sqlite and mysql stores")
	return f
}

func Load(flags *flag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	configFile, found := "", false
	if flags != nil {
		if path, err := flags.GetString("config"); err == nil && path != "" {
			configFile, found = path, true
		}
	}

	if !found {
		// Try to load config file from various formats
		configFiles := []string{
			"config.yaml",
			"config.yml",
			"config.json",
			"config.toml",
		}

		configFile, found = lo.Find(configFiles, func(file string) bool {
			_, err := os.Stat(file)
			return err == nil
		})
	}

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Environment variables override config file values; a double
	// underscore descends into a section (STORE__DRIVER -> store.driver)
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Explicitly set flags win over everything else
	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *flag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return f.Name, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, oops.With("context", "loading command line flags").Wrap(err)
		}
	}

	// Set defaults
	if !k.Exists("telegram_api_url") {
		k.Set("telegram_api_url", "https://api.telegram.org")
	}
	if !k.Exists("storage_path") {
		k.Set("storage_path", "./data")
	}
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}
	if !k.Exists("store.driver") {
		k.Set("store.driver", "file")
	}
	if !k.Exists("store.redis.address") {
		k.Set("store.redis.address", "localhost:6379")
	}

	// allowed_users may be a comma-separated string from env, which Unmarshal cannot decode
	allowedUsers := k.Get("allowed_users")
	k.Delete("allowed_users")

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	if allowedUsers != nil {
		switch v := allowedUsers.(type) {
		case string:
			cfg.AllowedUsers = ParseAllowedUsers(v)
		case []interface{}:
			cfg.AllowedUsers = lo.FilterMap(v, func(item interface{}, _ int) (int64, bool) {
				switch val := item.(type) {
				case int64:
					return val, true
				case int:
					return int64(val), true
				case float64:
					return int64(val), true
				default:
					return 0, false
				}
			})
		}
	}

	if env, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = env
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	driver, err := ParseStoreDriver(k.String("store.driver"))
	if err != nil {
		return nil, oops.With("store_driver", k.String("store.driver")).Wrap(err)
	}
	cfg.Store.Driver = driver

	// Validate required fields
	if cfg.TelegramBotToken == "" {
		return nil, errors.ErrMissingBotToken
	}

	return &cfg, nil
}

// ParseAllowedUsers parses comma-separated user IDs string into []int64
func ParseAllowedUsers(s string) []int64 {
	if s == "" {
		return []int64{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (int64, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return 0, false
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err == nil {
			return id, true
		}
		return 0, false
	})
}

// IsAuthorized reports whether userID may administer the bot. An empty
// allow list lets everyone in.
func (c *Config) IsAuthorized(userID int64) bool {
	return len(c.AllowedUsers) == 0 || lo.Contains(c.AllowedUsers, userID)
}
