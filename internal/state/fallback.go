package state

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/five82/foodikal/internal/foodikal"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// Fallback is the embedded snapshot of the production menu.
type Fallback struct {
	Updated    string              `yaml:"updated"`
	Categories []foodikal.Category `yaml:"categories"`
	Banners    []foodikal.Banner   `yaml:"banners"`
}

// Catalog returns the fallback categories as a catalog.
func (f Fallback) Catalog() foodikal.Catalog {
	return foodikal.Catalog{Categories: f.Categories}
}

// LoadFallback parses the embedded fallback data.
func LoadFallback() (Fallback, error) {
	return parseFallback(fallbackYAML)
}

func parseFallback(data []byte) (Fallback, error) {
	var fb Fallback
	if err := yaml.Unmarshal(data, &fb); err != nil {
		return Fallback{}, fmt.Errorf("parse fallback: %w", err)
	}
	for i := range fb.Categories {
		cat := &fb.Categories[i]
		for j := range cat.Items {
			if cat.Items[j].Category == "" {
				cat.Items[j].Category = cat.Name
			}
		}
	}
	if err := fb.Catalog().Validate(); err != nil {
		return Fallback{}, fmt.Errorf("fallback catalog: %w", err)
	}
	return fb, nil
}
