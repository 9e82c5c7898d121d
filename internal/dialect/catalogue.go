package dialect

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalogue is the on-disk dialects.yaml file.
type Catalogue struct {
	Dialects []Dialect `yaml:"dialects"`
}

// Load reads a dialects.yaml file from disk and validates every entry.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dialects: %w", err)
	}
	var cat Catalogue
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing dialects: %w", err)
	}
	for i, d := range cat.Dialects {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("dialect %d: %w", i+1, err)
		}
	}
	return &cat, nil
}

// Save writes a Catalogue to a YAML file.
func Save(path string, cat *Catalogue) error {
	data, err := yaml.Marshal(cat)
	if err != nil {
		return fmt.Errorf("marshaling dialects: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing dialects: %w", err)
	}
	return nil
}

// Default returns a Catalogue holding the built-in dialects.
func Default() *Catalogue {
	return &Catalogue{Dialects: Builtins()}
}
