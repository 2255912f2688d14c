// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration and result structs shared between the
// CLI and the internal tool packages.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by tools that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// WithDefaults fills zero fields of h from fallback.
func (h HTTPConfig) WithDefaults(fallback HTTPConfig) HTTPConfig {
	if h.Timeout <= 0 {
		h.Timeout = fallback.Timeout
	}
	if h.UserAgent == "" {
		h.UserAgent = fallback.UserAgent
	}
	return h
}

// LogConfig selects the slog handler used for diagnostics on stderr.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// RandomIDConfig holds settings for the random-id tool.
type RandomIDConfig struct {
	// Length is the default ID length (default 10).
	Length int `json:"length" yaml:"length" mapstructure:"length"`
}

// SheetFormat selects which export of a spreadsheet is downloaded.
type SheetFormat string

const (
	SheetCSV  SheetFormat = "csv"
	SheetXLSX SheetFormat = "xlsx"
)

// SheetConfig holds settings for the gsheet tool.
type SheetConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the spreadsheet host (default https://docs.google.com).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Format selects the export format: csv or xlsx.
	Format SheetFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Rows is the number of rows printed in table output (default 5).
	Rows int `json:"rows" yaml:"rows" mapstructure:"rows"`
}

// ConversionEngine identifies the HTML-to-Markdown backend.
type ConversionEngine string

const (
	EngineBuiltin ConversionEngine = "builtin"
	EnginePandoc  ConversionEngine = "pandoc"
)

// HTMLConfig holds settings for the html-to-markdown tool.
type HTMLConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Engine selects the conversion backend: builtin or pandoc.
	Engine ConversionEngine `json:"engine" yaml:"engine" mapstructure:"engine"`

	// OutputFormat is the pandoc writer format (default gfm-raw_html).
	OutputFormat string `json:"output_format" yaml:"output_format" mapstructure:"output_format"`

	// PandocImage is the container image used when pandoc is not on PATH.
	PandocImage string `json:"pandoc_image" yaml:"pandoc_image" mapstructure:"pandoc_image"`
}

// CollectionConfig holds settings for the collection-size tool.
type CollectionConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// SearchURL is the repository search API endpoint.
	SearchURL string `json:"search_url" yaml:"search_url" mapstructure:"search_url"`

	// CollectionsURL is the repository collections API endpoint.
	CollectionsURL string `json:"collections_url" yaml:"collections_url" mapstructure:"collections_url"`

	// Rows is the search page size (the API caps this at 500).
	Rows int `json:"rows" yaml:"rows" mapstructure:"rows"`

	// MaxRetries bounds the 429 backoff loop (0 uses the default).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// Config groups all tool configurations. It is the shape of utilities.yaml.
type Config struct {
	HTTP       HTTPConfig       `json:"http" yaml:"http" mapstructure:"http"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	RandomID   RandomIDConfig   `json:"random_id" yaml:"random_id" mapstructure:"random_id"`
	Sheet      SheetConfig      `json:"gsheet" yaml:"gsheet" mapstructure:"gsheet"`
	HTML       HTMLConfig       `json:"htmlmd" yaml:"htmlmd" mapstructure:"htmlmd"`
	Collection CollectionConfig `json:"collection" yaml:"collection" mapstructure:"collection"`
}

// DefaultConfig returns the settings used when neither a config file nor
// flags override them.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "utilities/0.1",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		RandomID: RandomIDConfig{Length: 10},
		Sheet: SheetConfig{
			BaseURL: "https://docs.google.com",
			Format:  SheetCSV,
			Rows:    5,
		},
		HTML: HTMLConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "utilities-html-to-markdown/1.0",
			},
			Engine:       EngineBuiltin,
			OutputFormat: "gfm-raw_html",
			PandocImage:  "pandoc/core:latest",
		},
		Collection: CollectionConfig{
			SearchURL:      "https://repository.library.brown.edu/api/search/",
			CollectionsURL: "https://repository.library.brown.edu/api/collections/",
			Rows:           500,
		},
	}
}
