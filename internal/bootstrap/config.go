// Package bootstrap loads the viewer's configuration from defaults, an
// optional config file, and CHESSTV_* environment variables, in that order
// of increasing precedence.
package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

const DefaultFeedURL = "https://lichess.org/api/tv/feed"

type Config struct {
	FeedURL  string `mapstructure:"FEED_URL"`
	LogFile  string `mapstructure:"LOG_FILE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// Setup builds the configuration.  cfgPath may be empty; a named file that
// does not exist is ignored so the same invocation works with and without a
// local config.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("FEED_URL", DefaultFeedURL)
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetEnvPrefix("CHESSTV")
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("bootstrap: reading %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("bootstrap: unmarshaling config: %w", err)
	}
	return &cfg, nil
}
