package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"github.com/sushihentaime/cmsblog/internal/common"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`
	SiteTitle   string `mapstructure:"SITE_TITLE"`
	SiteURL     string `mapstructure:"SITE_URL"`

	CMSEndpoint string        `mapstructure:"CMS_ENDPOINT"`
	CMSToken    string        `mapstructure:"CMS_TOKEN"`
	CMSTimeout  time.Duration `mapstructure:"CMS_TIMEOUT"`

	CacheTTL     time.Duration `mapstructure:"CACHE_TTL"`
	CacheCleanup time.Duration `mapstructure:"CACHE_CLEANUP"`

	// CommentRelayURL points the comment form at a relay served elsewhere.
	// When empty the form submits in-process.
	CommentRelayURL string `mapstructure:"COMMENT_RELAY_URL"`
	CookieHashKey   string `mapstructure:"COOKIE_HASH_KEY"`
	CookieBlockKey  string `mapstructure:"COOKIE_BLOCK_KEY"`

	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`

	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`

	MailHost      string `mapstructure:"MAIL_HOST"`
	MailPort      int    `mapstructure:"MAIL_PORT"`
	MailUser      string `mapstructure:"MAIL_USER"`
	MailPassword  string `mapstructure:"MAIL_PASSWORD"`
	MailSender    string `mapstructure:"MAIL_SENDER"`
	MailModerator string `mapstructure:"MAIL_MODERATOR"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`
}

var configDefaults = map[string]any{
	"PORT":               ":4000",
	"ENVIRONMENT":        "development",
	"VERSION":            "1.0.0",
	"SITE_TITLE":         "Petrol Notes",
	"SITE_URL":           "",
	"CMS_ENDPOINT":       "",
	"CMS_TOKEN":          "",
	"CMS_TIMEOUT":        10 * time.Second,
	"CACHE_TTL":          5 * time.Minute,
	"CACHE_CLEANUP":      10 * time.Minute,
	"COMMENT_RELAY_URL":  "",
	"COOKIE_HASH_KEY":    "",
	"COOKIE_BLOCK_KEY":   "",
	"TLS_CERT_FILE":      "",
	"TLS_KEY_FILE":       "",
	"RATE_LIMIT_ENABLED": true,
	"RATE_LIMIT_RPS":     1.0,
	"RATE_LIMIT_BURST":   5,
	"MAIL_HOST":          "",
	"MAIL_PORT":          587,
	"MAIL_USER":          "",
	"MAIL_PASSWORD":      "",
	"MAIL_SENDER":        "",
	"MAIL_MODERATOR":     "",
	"RABBITMQ_HOST":      "",
	"RABBITMQ_PORT":      "5672",
	"RABBITMQ_USER":      "guest",
	"RABBITMQ_PASSWORD":  "guest",
}

// loadConfig reads the .env file at path, if it exists, and lets environment
// variables override its values.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate checks the settings every command needs. The CMS token is only
// needed by the comment relay.
func (c *Config) validate(requireToken bool) error {
	v := common.NewValidator()
	v.Check(c.CMSEndpoint != "", "CMS_ENDPOINT", "must be provided")
	if requireToken {
		v.Check(c.CMSToken != "", "CMS_TOKEN", "must be provided")
	}
	v.Check(c.CMSTimeout > 0, "CMS_TIMEOUT", "must be greater than zero")
	v.Check(c.RateLimitRPS > 0, "RATE_LIMIT_RPS", "must be greater than zero")
	v.Check(c.RateLimitBurst > 0, "RATE_LIMIT_BURST", "must be greater than zero")
	if c.Environment == "production" {
		v.Check(c.TLSCertFile != "" && c.TLSKeyFile != "", "TLS_CERT_FILE", "must be provided in production")
	}
	if c.MQHost != "" {
		v.Check(c.MailHost != "", "MAIL_HOST", "must be provided when RABBITMQ_HOST is set")
		v.Check(c.MailModerator != "", "MAIL_MODERATOR", "must be provided when RABBITMQ_HOST is set")
	}
	if !v.Valid() {
		return v.ValidationError()
	}

	return nil
}
