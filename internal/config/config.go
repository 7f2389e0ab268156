// Package config loads designkit settings from, in increasing precedence, a
// YAML config file, a .env file, DESIGNKIT_* environment variables and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DESIGNKIT"

// Setting keys.
const (
	KeyProvider      = "provider"
	KeyModel         = "model"
	KeyOpenAIAPIKey  = "openai_api_key"
	KeyOpenAIBaseURL = "openai_base_url"
	KeyGoogleAPIKey  = "google_api_key"
	KeyGenAIBackend  = "genai_backend"
	KeyKnowledge     = "knowledge"
	KeyTimeout       = "timeout"
	KeyListen        = "listen"
	KeyTemplateDir   = "template_dir"
)

// Defaults.
const (
	DefaultProvider = "auto"
	DefaultTimeout  = 60 * time.Second
	DefaultListen   = "127.0.0.1:8080"
)

// Config is the resolved configuration.
type Config struct {
	Provider      string        `mapstructure:"provider"`
	Model         string        `mapstructure:"model"`
	OpenAIAPIKey  string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL string        `mapstructure:"openai_base_url"`
	GoogleAPIKey  string        `mapstructure:"google_api_key"`
	GenAIBackend  string        `mapstructure:"genai_backend"`
	Knowledge     string        `mapstructure:"knowledge"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Listen        string        `mapstructure:"listen"`
	TemplateDir   string        `mapstructure:"template_dir"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit config file. It must exist when set.
	ConfigFile string

	// ConfigDirs are searched for config.yaml when ConfigFile is empty.
	// Defaults to DefaultConfigDirs.
	ConfigDirs []string

	// EnvFiles are loaded into the process environment without overriding
	// variables that are already set. Missing files are skipped. Defaults to ".env".
	EnvFiles []string

	// Flags, when set, overrides settings whose flag was changed. Flag names
	// use dashes in place of underscores.
	Flags *pflag.FlagSet
}

// DefaultConfigDirs returns the directories searched for config.yaml.
func DefaultConfigDirs() []string {
	var dirs []string
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "designkit"))
	}
	// os.UserConfigDir is not ~/.config on macOS.
	if home, err := os.UserHomeDir(); err == nil {
		xdg := filepath.Join(home, ".config", "designkit")
		if len(dirs) == 0 || dirs[0] != xdg {
			dirs = append(dirs, xdg)
		}
	}
	return dirs
}

// Load resolves the configuration.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Provider SDK variables are honoured without the prefix too.
	if err := v.BindEnv(KeyOpenAIAPIKey, EnvPrefix+"_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv(KeyGoogleAPIKey, EnvPrefix+"_GOOGLE_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return nil, err
	}

	file, err := readConfigFile(v, opts)
	if err != nil {
		return nil, err
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.File = file
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyProvider, DefaultProvider)
	v.SetDefault(KeyModel, "")
	v.SetDefault(KeyOpenAIAPIKey, "")
	v.SetDefault(KeyOpenAIBaseURL, "")
	v.SetDefault(KeyGoogleAPIKey, "")
	v.SetDefault(KeyGenAIBackend, "gemini-api")
	v.SetDefault(KeyKnowledge, "")
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyListen, DefaultListen)
	v.SetDefault(KeyTemplateDir, "")
}

func readConfigFile(v *viper.Viper, opts Options) (string, error) {
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
		return v.ConfigFileUsed(), nil
	}

	dirs := opts.ConfigDirs
	if dirs == nil {
		dirs = DefaultConfigDirs()
	}
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

func loadEnvFiles(files []string) error {
	if files == nil {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// bindFlags binds every setting that has a flag of the same name.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{
		KeyProvider, KeyModel, KeyOpenAIBaseURL, KeyGenAIBackend,
		KeyKnowledge, KeyTimeout, KeyListen, KeyTemplateDir,
	} {
		flag := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}
	return nil
}
