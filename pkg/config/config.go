// This file is part of trailgpx (https://github.com/spezifisch/trailgpx).
// Copyright (C) 2022-2025 spezifisch <spezifisch-7e6@below.fr> (https://github.com/spezifisch).
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, version 3 of the License.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE. See the GNU Affero General Public License for more
// details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// Package config merges command line flags, TRAILGPX_* environment
// variables and an optional trailgpx.yaml.
package config

import (
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spezifisch/trailgpx/pkg/utmb"
)

// Config keys as used in trailgpx.yaml
const (
	KeyLogLevel  = "log_level"
	KeyTimeout   = "http.timeout"
	KeyUserAgent = "http.user_agent"
	KeyRaceName  = "race_name"
)

// Flag names
const (
	FlagLogLevel  = "log-level"
	FlagTimeout   = "timeout"
	FlagUserAgent = "user-agent"
)

var flagKeys = map[string]string{
	FlagLogLevel:  KeyLogLevel,
	FlagTimeout:   KeyTimeout,
	FlagUserAgent: KeyUserAgent,
}

// Config holds the settings shared by the tools
type Config struct {
	LogLevel  log.Level
	Timeout   time.Duration
	UserAgent string
	RaceName  string
}

// AddFlags registers the common flags on fs
func AddFlags(fs *pflag.FlagSet) {
	fs.String(FlagLogLevel, "info", "log level (debug, info, warn, error)")
}

// AddHTTPFlags registers the flags of tools that download pages
func AddHTTPFlags(fs *pflag.FlagSet) {
	fs.Duration(FlagTimeout, utmb.DefaultTimeout, "HTTP request timeout")
	fs.String(FlagUserAgent, utmb.DefaultUserAgent, "HTTP User-Agent header")
}

// Load reads the configuration with trailgpx.yaml looked up in the working
// directory.
func Load(fs *pflag.FlagSet) (*Config, error) {
	return LoadFrom(fs, ".")
}

// LoadFrom reads the configuration with trailgpx.yaml looked up in dir.
// Flags that were set on the command line win over the environment, which
// wins over the config file.
func LoadFrom(fs *pflag.FlagSet, dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTimeout, utmb.DefaultTimeout)
	v.SetDefault(KeyUserAgent, utmb.DefaultUserAgent)
	v.SetDefault(KeyRaceName, "")

	v.SetConfigName("trailgpx")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// TRAILGPX_HTTP_USER_AGENT -> http.user_agent
	v.SetEnvPrefix("TRAILGPX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}

	level, err := log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, err
	}

	timeout := v.GetDuration(KeyTimeout)
	if timeout <= 0 {
		return nil, errors.New("timeout must be positive")
	}

	return &Config{
		LogLevel:  level,
		Timeout:   timeout,
		UserAgent: v.GetString(KeyUserAgent),
		RaceName:  v.GetString(KeyRaceName),
	}, nil
}
