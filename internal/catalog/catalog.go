// Package catalog loads the read-only reference data: partners, templates,
// business models and the seed rule sets.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"docmap/internal/domain"
	"docmap/internal/schema"
)

//go:embed catalog.yaml
var seed []byte

// Catalog is the static reference data a deployment starts from.
type Catalog struct {
	Partners  []domain.Partner        `yaml:"partners"`
	Templates []domain.Template       `yaml:"templates"`
	BizModels []domain.BizModel       `yaml:"biz_models"`
	RuleSets  []domain.MappingRuleSet `yaml:"rule_sets"`

	models map[string]int
}

// bizModelDoc mirrors domain.BizModel with the sample kept as a YAML tree.
type bizModelDoc struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Schema      *schema.Node `yaml:"schema"`
	Sample      yaml.Node    `yaml:"sample"`
}

type document struct {
	Partners  []domain.Partner        `yaml:"partners"`
	Templates []domain.Template       `yaml:"templates"`
	BizModels []bizModelDoc           `yaml:"biz_models"`
	RuleSets  []domain.MappingRuleSet `yaml:"rule_sets"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(seed)
}

// Load reads a catalog file. An empty path selects the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c := &Catalog{
		Partners:  doc.Partners,
		Templates: doc.Templates,
		RuleSets:  doc.RuleSets,
		models:    make(map[string]int, len(doc.BizModels)),
	}
	for _, bm := range doc.BizModels {
		if bm.ID == "" {
			return nil, fmt.Errorf("decoding catalog: business model without id")
		}
		if bm.Schema == nil {
			return nil, fmt.Errorf("decoding catalog: business model %s has no schema", bm.ID)
		}
		if _, dup := c.models[bm.ID]; dup {
			return nil, fmt.Errorf("decoding catalog: duplicate business model %s", bm.ID)
		}
		sample, err := sampleJSON(&bm.Sample)
		if err != nil {
			return nil, fmt.Errorf("decoding sample of %s: %w", bm.ID, err)
		}
		c.models[bm.ID] = len(c.BizModels)
		c.BizModels = append(c.BizModels, domain.BizModel{
			ID:          bm.ID,
			Name:        bm.Name,
			Description: bm.Description,
			Schema:      bm.Schema,
			Sample:      sample,
		})
	}
	for i := range c.Templates {
		if c.Templates[i].CompatibleRuleSetIDs == nil {
			c.Templates[i].CompatibleRuleSetIDs = []string{}
		}
	}
	return c, nil
}

func sampleJSON(n *yaml.Node) (json.RawMessage, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	var v interface{}
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// BizModel returns the business model with the given id.
func (c *Catalog) BizModel(id string) (*domain.BizModel, bool) {
	i, ok := c.models[id]
	if !ok {
		return nil, false
	}
	bm := c.BizModels[i]
	return &bm, true
}

// Partner looks up a partner by name, ignoring case.
func (c *Catalog) Partner(name string) (domain.Partner, bool) {
	for _, p := range c.Partners {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return domain.Partner{}, false
}
