package parsing

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog holds the lookup tables used to interpret and enrich exercises.
// It is passed explicitly to Assemble, Enrich and Parse so callers can swap or
// extend the tables without touching the parsing logic.
type Catalog struct {
	Equipment    []KeywordRule     `yaml:"equipment"`
	MuscleGroups map[string]string `yaml:"muscle_groups"`
	Summary      []KeywordRule     `yaml:"summary"`
	DemoURL      string            `yaml:"demo_url"`
}

// KeywordRule maps any of a set of keywords to a name
type KeywordRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// matches reports whether any keyword occurs in s
func (r KeywordRule) matches(s string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// DefaultCatalog returns a fresh copy of the embedded catalog
func DefaultCatalog() *Catalog {
	var c Catalog
	if err := yaml.Unmarshal(defaultCatalogYAML, &c); err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return &c
}

// LoadCatalog reads a catalog from a YAML file.
// Sections missing from the file are taken from the default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes a YAML catalog, filling missing sections from the default
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshaling yaml: %w", err)
	}

	def := DefaultCatalog()
	if c.Equipment == nil {
		c.Equipment = def.Equipment
	}
	if c.MuscleGroups == nil {
		c.MuscleGroups = def.MuscleGroups
	}
	if c.Summary == nil {
		c.Summary = def.Summary
	}
	if c.DemoURL == "" {
		c.DemoURL = def.DemoURL
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	for i, rule := range c.Equipment {
		if err := rule.validate(); err != nil {
			return fmt.Errorf("equipment rule %d: %w", i, err)
		}
	}
	for i, rule := range c.Summary {
		if err := rule.validate(); err != nil {
			return fmt.Errorf("summary rule %d: %w", i, err)
		}
	}
	if strings.Count(c.DemoURL, "%s") != 1 {
		return fmt.Errorf("demo_url must contain exactly one %%s placeholder")
	}
	return nil
}

func (r KeywordRule) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(r.Keywords) == 0 {
		return fmt.Errorf("%s: at least one keyword is required", r.Name)
	}
	for _, kw := range r.Keywords {
		if kw == "" {
			return fmt.Errorf("%s: keywords must not be empty", r.Name)
		}
	}
	return nil
}

// classifyEquipment returns the first equipment rule matching name, or "Unknown"
func (c *Catalog) classifyEquipment(name string) string {
	for _, rule := range c.Equipment {
		if rule.matches(name) {
			return rule.Name
		}
	}
	return UnknownEquipment
}
