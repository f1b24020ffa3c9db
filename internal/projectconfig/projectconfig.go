// Package projectconfig loads the optional cimdea.toml project file:
// product/root overrides and a default table output format, so the CLI
// doesn't need every flag spelled out on every invocation.
package projectconfig

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the decoded cimdea.toml document. Every field is optional;
// zero values mean "let the caller's defaults apply."
type Config struct {
	Product      string `toml:"product"`
	ProductRoot  string `toml:"product_root"`
	DataRoot     string `toml:"data_root"`
	OutputFormat string `toml:"output_format"`
}

// Parser reads cimdea.toml project files.
type Parser struct{}

// NewParser creates a new project-config parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile opens the file at path and parses it as a project config. A
// missing file is not an error: it returns a zero Config, since the file
// is optional.
func (p *Parser) ParseFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("projectconfig: open file %q: %w", path, err)
	}
	defer f.Close()

	return p.Parse(f)
}

// Parse reads TOML content from r and returns the decoded Config.
func (p *Parser) Parse(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("projectconfig: decode error: %w", err)
	}
	return &cfg, nil
}
