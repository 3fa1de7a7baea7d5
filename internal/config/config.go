package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kolah/humbler/internal/logz"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

const (
	DefaultConfigFile = ".humbler.yaml"
	DefaultEnvFile    = ".env"
	EnvPrefix         = "HUMBLER_"
)

// Formats lists the output formats the renderer understands.
var Formats = []string{"markdown", "html", "json", "yaml"}

type Config struct {
	Spec           string         `koanf:"spec"`
	SwaggerUIURL   string         `koanf:"swagger-ui-url"`
	FilterKeywords []string       `koanf:"filter-keywords"`
	Templates      TemplateConfig `koanf:"templates"`
	Output         OutputConfig   `koanf:"output"`
	Fetch          FetchConfig    `koanf:"fetch"`
	Serve          ServeConfig    `koanf:"serve"`
	Log            LogConfig      `koanf:"log"`
}

type TemplateConfig struct {
	Dir string `koanf:"dir"`
}

type OutputConfig struct {
	Format string `koanf:"format"`
	// File is where the catalog is written; empty means stdout.
	File string `koanf:"file"`
}

type FetchConfig struct {
	Timeout   time.Duration `koanf:"timeout"`
	UserAgent string        `koanf:"user-agent"`
}

type ServeConfig struct {
	Addr string `koanf:"addr"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func defaults() map[string]any {
	return map[string]any{
		"output.format":    "markdown",
		"fetch.timeout":    "30s",
		"fetch.user-agent": "humbler/1.0",
		"serve.addr":       ":4000",
		"log.level":        "warn",
	}
}

// envKeys maps environment variable names onto config keys. The two
// unprefixed names are the ones a plain .env next to the document usually has.
var envKeys = map[string]string{
	"OPENAPI_JSON_URL": "spec",
	"SWAGGER_UI_URL":   "swagger-ui-url",
}

// keys is every leaf key settable from HUMBLER_* variables.
var keys = []string{
	"spec",
	"swagger-ui-url",
	"filter-keywords",
	"templates.dir",
	"output.format",
	"output.file",
	"fetch.timeout",
	"fetch.user-agent",
	"serve.addr",
	"log.level",
}

// EnvName returns the HUMBLER_* variable for a config key, e.g.
// "fetch.user-agent" -> "HUMBLER_FETCH_USER_AGENT".
func EnvName(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return EnvPrefix + strings.ToUpper(r.Replace(key))
}

// BindFlags binds the flags shared by every command.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: "+DefaultConfigFile+")")
	flags.StringP("spec", "s", "", "OpenAPI document URL or file path")
	flags.StringP("swagger-ui-url", "u", "", "Swagger UI base URL, without trailing slash")
	flags.StringSliceP("filter", "k", nil, "Keep only paths containing all of these keywords")
	flags.String("templates", "", "Custom templates directory")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
}

// Load layers defaults, the config file, the environment and the command's
// flags, in increasing precedence, and validates the result.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile, _ = cmd.PersistentFlags().GetString("config")
	}
	if configFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			configFile = DefaultConfigFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := loadEnv(k, DefaultEnvFile); err != nil {
		return nil, err
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadEnv reads envFile into the process environment, without overriding
// variables already set, then loads the known variables into k. HUMBLER_*
// variables win over the unprefixed ones.
func loadEnv(k *koanf.Koanf, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", envFile, err)
		}
	}

	plain := env.Provider("", ".", func(s string) string {
		return envKeys[s]
	})
	if err := k.Load(plain, nil); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	byEnv := make(map[string]string, len(keys))
	for _, key := range keys {
		byEnv[EnvName(key)] = key
	}
	prefixed := env.ProviderWithValue(EnvPrefix, ".", func(name, value string) (string, any) {
		key, ok := byEnv[name]
		if !ok {
			return "", nil
		}
		if key == "filter-keywords" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(prefixed, nil); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	getStringSlice := func(name string) []string {
		if v, err := cmd.Flags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		if v, err := cmd.PersistentFlags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		return nil
	}

	if v := getString("spec"); v != "" {
		m["spec"] = v
	}
	if v := getString("swagger-ui-url"); v != "" {
		m["swagger-ui-url"] = v
	}
	if v := getStringSlice("filter"); len(v) > 0 {
		m["filter-keywords"] = v
	}
	if v := getString("templates"); v != "" {
		m["templates.dir"] = v
	}
	if v := getString("log-level"); v != "" {
		m["log.level"] = v
	}

	// Command specific flags
	if v := getString("format"); v != "" {
		m["output.format"] = v
	}
	if v := getString("output"); v != "" {
		m["output.file"] = v
	}
	if v := getString("addr"); v != "" {
		m["serve.addr"] = v
	}

	return m
}

func (c *Config) Validate() error {
	if c.Spec == "" {
		return fmt.Errorf("spec is required (--spec, spec in %s or OPENAPI_JSON_URL)", DefaultConfigFile)
	}
	if c.SwaggerUIURL == "" {
		return fmt.Errorf("swagger ui url is required (--swagger-ui-url, swagger-ui-url in %s or SWAGGER_UI_URL)", DefaultConfigFile)
	}
	if strings.HasSuffix(c.SwaggerUIURL, "/") {
		return fmt.Errorf("swagger ui url must not end with a slash: %s", c.SwaggerUIURL)
	}

	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (valid: %s)", c.Output.Format, strings.Join(Formats, ", "))
	}

	if !logz.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Log.Level)
	}

	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("invalid fetch timeout: %s", c.Fetch.Timeout)
	}

	return nil
}
