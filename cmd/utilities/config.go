// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/utilities/pkg/types"
)

// setDefaults registers the built-in defaults so every config key resolves
// even without a config file.
func setDefaults() {
	d := types.DefaultConfig()

	viper.SetDefault("http.timeout", d.HTTP.Timeout)
	viper.SetDefault("http.user_agent", d.HTTP.UserAgent)

	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)

	viper.SetDefault("random_id.length", d.RandomID.Length)

	viper.SetDefault("gsheet.base_url", d.Sheet.BaseURL)
	viper.SetDefault("gsheet.format", string(d.Sheet.Format))
	viper.SetDefault("gsheet.rows", d.Sheet.Rows)

	viper.SetDefault("htmlmd.timeout", d.HTML.Timeout)
	viper.SetDefault("htmlmd.user_agent", d.HTML.UserAgent)
	viper.SetDefault("htmlmd.engine", string(d.HTML.Engine))
	viper.SetDefault("htmlmd.output_format", d.HTML.OutputFormat)
	viper.SetDefault("htmlmd.pandoc_image", d.HTML.PandocImage)

	viper.SetDefault("collection.search_url", d.Collection.SearchURL)
	viper.SetDefault("collection.collections_url", d.Collection.CollectionsURL)
	viper.SetDefault("collection.rows", d.Collection.Rows)
	viper.SetDefault("collection.max_retries", d.Collection.MaxRetries)
}

// bindFlag binds a config key to a flag. Lookup failures are programming
// errors, so they panic at init.
func bindFlag(key string, f *pflag.Flag) {
	if f == nil {
		panic("binding unknown flag for " + key)
	}
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// loadConfig decodes the merged defaults, config file, environment and
// flags. Tool sections that leave HTTP settings unset inherit the top-level
// http block.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Sheet.HTTPConfig = cfg.Sheet.HTTPConfig.WithDefaults(cfg.HTTP)
	cfg.HTML.HTTPConfig = cfg.HTML.HTTPConfig.WithDefaults(cfg.HTTP)
	cfg.Collection.HTTPConfig = cfg.Collection.HTTPConfig.WithDefaults(cfg.HTTP)
	return cfg, nil
}
