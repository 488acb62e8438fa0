// Package config loads file-based configuration for reading and writing Relations.
package config

import (
	"fmt"

	"github.com/go-sif/tabular/datasource/parser/dsv"
	"github.com/go-sif/tabular/datasource/parser/jsonl"
	"github.com/go-sif/tabular/logging"
	"github.com/go-sif/tabular/schema"
	"github.com/spf13/viper"
)

const (
	// FormatDSV selects the delimited text parser
	FormatDSV = "dsv"
	// FormatJSONL selects the JSON lines parser
	FormatJSONL = "jsonl"
)

// Config describes how input is parsed into a Relation, and how Relations are written
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	Input struct {
		Format      string            `mapstructure:"format"`
		Name        string            `mapstructure:"name"`
		Header      string            `mapstructure:"header"`
		Separator   string            `mapstructure:"separator"`
		HeaderLines int               `mapstructure:"header_lines"`
		Comment     string            `mapstructure:"comment"`
		Compression string            `mapstructure:"compression"`
		Reuse       bool              `mapstructure:"reuse"`
		Paths       map[string]string `mapstructure:"paths"`
	} `mapstructure:"input"`

	Output struct {
		Separator   string `mapstructure:"separator"`
		OmitHeader  bool   `mapstructure:"omit_header"`
		Compression string `mapstructure:"compression"`
	} `mapstructure:"output"`
}

// LoadConfig reads a YAML configuration file
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("log_level", "warn")
	v.SetDefault("input.format", FormatDSV)
	v.SetDefault("output.separator", "\t")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Input.Format != FormatDSV && cfg.Input.Format != FormatJSONL {
		return nil, fmt.Errorf("unknown input format %q", cfg.Input.Format)
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyLogLevel sets the level of the default Logger
func (c *Config) ApplyLogLevel() error {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logging.Default().SetLevel(level)
	return nil
}

func (c *Config) inputSchema() (*schema.Schema, error) {
	if len(c.Input.Header) == 0 {
		return nil, nil
	}
	return schema.Parse(c.Input.Header, c.Input.Separator)
}

// DSVParserConf produces the configuration of a DSV Parser for the input. Without a
// configured header, the header is read from the input itself.
func (c *Config) DSVParserConf() (*dsv.ParserConf, error) {
	s, err := c.inputSchema()
	if err != nil {
		return nil, err
	}
	return &dsv.ParserConf{
		Separator:   c.Input.Separator,
		Schema:      s,
		HeaderLines: c.Input.HeaderLines,
		Comment:     c.Input.Comment,
		Compression: c.Input.Compression,
		Name:        c.Input.Name,
		Reuse:       c.Input.Reuse,
	}, nil
}

// JSONLParserConf produces the configuration of a JSONL Parser for the input, which requires a header
func (c *Config) JSONLParserConf() (*jsonl.ParserConf, error) {
	s, err := c.inputSchema()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("input.header is required to parse JSON lines")
	}
	return &jsonl.ParserConf{
		Schema:      s,
		Paths:       c.Input.Paths,
		HeaderLines: c.Input.HeaderLines,
		Comment:     c.Input.Comment,
		Name:        c.Input.Name,
		Reuse:       c.Input.Reuse,
	}, nil
}

// DSVWriterConf produces the configuration of a DSV Writer for the output
func (c *Config) DSVWriterConf() *dsv.WriterConf {
	return &dsv.WriterConf{
		Separator:   c.Output.Separator,
		OmitHeader:  c.Output.OmitHeader,
		Compression: c.Output.Compression,
	}
}
