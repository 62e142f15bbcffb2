package catalog

import (
	"fmt"
	"os"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// file mirrors the YAML layout:
//
//	steps:
//	  - target: gallery
//	    text: View the next image(s) here.
//	  - target: gallery
//	    slot: add
//	modes:
//	  labels:
//	    add: Then, click to assign label.
type file struct {
	Steps []Entry                      `mapstructure:"steps"`
	Modes map[string]map[string]string `mapstructure:"modes"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	var f file
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &f,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := &Catalog{
		Entries:  f.Steps,
		Variants: make(map[domain.Mode]map[Slot]string, len(f.Modes)),
	}
	for mode, slots := range f.Modes {
		v := make(map[Slot]string, len(slots))
		for slot, text := range slots {
			v[Slot(slot)] = text
		}
		c.Variants[domain.Mode(mode)] = v
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
