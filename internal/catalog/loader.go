package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinYAML []byte

type catalogFile struct {
	Items []Item `yaml:"items"`
}

// Parse reads a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("catalog has no items")
	}
	return New(f.Items)
}

// LoadFile reads a catalog from path. Environment variables in the file
// are expanded before parsing.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Builtin returns the catalog shipped with the binary.
func Builtin() *Catalog {
	c, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// Load uses path when set and falls back to the builtin catalog otherwise.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	return LoadFile(path)
}
