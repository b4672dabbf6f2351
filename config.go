package truegate

import (
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the production portal API root.
const DefaultBaseURL = "https://truegate.live/api"

// DefaultRequestTimeout bounds every pipeline call.
const DefaultRequestTimeout = 15 * time.Second

// DefaultCSRFHeaderName carries the anti-forgery token on mutating calls.
const DefaultCSRFHeaderName = "X-CSRF-Token"

// PortalConfig is the concrete Config used by the client binary. Degraded
// fallback ships off by default; it exists for demo and development runs
// against an unavailable backend and must be opted into explicitly.
type PortalConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	TokenStoragePath string        `mapstructure:"token_storage_path"`
	CSRFHeaderName   string        `mapstructure:"csrf_header_name"`
	DegradedFallback bool          `mapstructure:"degraded_fallback"`
	Debug            bool          `mapstructure:"debug"`
}

var _ Config = (*PortalConfig)(nil)

func (c *PortalConfig) GetBaseURL() string          { return c.BaseURL }
func (c *PortalConfig) GetTimeout() time.Duration   { return c.Timeout }
func (c *PortalConfig) GetTokenStoragePath() string { return c.TokenStoragePath }
func (c *PortalConfig) GetCSRFHeaderName() string   { return c.CSRFHeaderName }
func (c *PortalConfig) GetDegradedFallback() bool   { return c.DegradedFallback }
func (c *PortalConfig) GetDebug() bool              { return c.Debug }

// DefaultConfig returns production defaults.
func DefaultConfig() *PortalConfig {
	return &PortalConfig{
		BaseURL:          DefaultBaseURL,
		Timeout:          DefaultRequestTimeout,
		TokenStoragePath: ".truegate/token",
		CSRFHeaderName:   DefaultCSRFHeaderName,
	}
}

// LoadConfig reads an optional config file and TRUEGATE_* environment
// overrides on top of the defaults. An empty path skips file loading.
func LoadConfig(path string) (*PortalConfig, error) {
	v := viper.New()
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", DefaultRequestTimeout)
	v.SetDefault("token_storage_path", ".truegate/token")
	v.SetDefault("csrf_header_name", DefaultCSRFHeaderName)
	v.SetDefault("degraded_fallback", false)
	v.SetDefault("debug", false)

	v.SetEnvPrefix("TRUEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "could not read client config")
		}
	}

	cfg := &PortalConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse client config")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRequestTimeout
	}
	if cfg.CSRFHeaderName == "" {
		cfg.CSRFHeaderName = DefaultCSRFHeaderName
	}
	return cfg, nil
}
