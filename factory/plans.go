/*
Package factory provides YAML to plan-catalog conversion.

PURPOSE:
  Converts a YAML plan catalog into the entitlement grants the
  redemption flow applies. This keeps product configuration out of
  code: pricing experiments change a file, not a build.

YAML SCHEMA:
  plans:
    - token: credit_1
      label: "Single game"
      price_cents: 199
      credits: 1
    - token: credit_10
      label: "10-game pack"
      price_cents: 1499
      credits: 10
    - token: unlimited_season
      label: "Unlimited season"
      price_cents: 2999
      unlimited_days: 180

VALIDATION:
  Every plan needs a token and exactly one of credits/unlimited_days.
  Duplicate tokens are rejected. A catalog that fails validation is
  rejected whole; there is no partial load.

USAGE:
  catalog := factory.Default()            // built-in products
  catalog, err := factory.Load(path)      // or from plans.yaml

  grant, ok := catalog.Resolve("credit_10")

SEE ALSO:
  - entitlement/redemption.go: Consumes Catalog via the Resolve method
*/
package factory

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/courtside/stat-engine/entitlement"
)

// =============================================================================
// YAML SCHEMA TYPES
// =============================================================================

// PlanSpec is one purchasable product in the catalog.
type PlanSpec struct {
	Token         string `yaml:"token" json:"token"`
	Label         string `yaml:"label" json:"label"`
	PriceCents    int    `yaml:"price_cents" json:"priceCents"`
	Credits       int    `yaml:"credits,omitempty" json:"credits,omitempty"`
	UnlimitedDays int    `yaml:"unlimited_days,omitempty" json:"unlimitedDays,omitempty"`
}

type catalogYAML struct {
	Plans []PlanSpec `yaml:"plans"`
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog maps plan tokens to entitlement grants.
// Implements entitlement.Catalog.
type Catalog struct {
	specs map[string]PlanSpec
}

// Default returns the built-in product catalog.
func Default() *Catalog {
	c, err := build([]PlanSpec{
		{Token: "credit_1", Label: "Single game", PriceCents: 199, Credits: 1},
		{Token: "credit_10", Label: "10-game pack", PriceCents: 1499, Credits: 10},
		{Token: "unlimited_season", Label: "Unlimited season", PriceCents: 2999, UnlimitedDays: 180},
	})
	if err != nil {
		panic(err) // built-in catalog is validated by tests
	}
	return c
}

// Load reads and validates a plans.yaml catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan catalog %s: %w", path, err)
	}

	var doc catalogYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing plan catalog: %w", err)
	}
	if len(doc.Plans) == 0 {
		return nil, fmt.Errorf("plan catalog %s has no plans", path)
	}
	return build(doc.Plans)
}

func build(specs []PlanSpec) (*Catalog, error) {
	c := &Catalog{specs: make(map[string]PlanSpec, len(specs))}
	for _, p := range specs {
		if p.Token == "" {
			return nil, fmt.Errorf("plan %q: token is required", p.Label)
		}
		if (p.Credits > 0) == (p.UnlimitedDays > 0) {
			return nil, fmt.Errorf("plan %q: exactly one of credits/unlimited_days is required", p.Token)
		}
		if _, dup := c.specs[p.Token]; dup {
			return nil, fmt.Errorf("plan %q: duplicate token", p.Token)
		}
		c.specs[p.Token] = p
	}
	return c, nil
}

// Resolve returns the grant for a purchased plan token.
func (c *Catalog) Resolve(token string) (entitlement.Grant, bool) {
	p, ok := c.specs[token]
	if !ok {
		return entitlement.Grant{}, false
	}
	return entitlement.Grant{Credits: p.Credits, UnlimitedDays: p.UnlimitedDays}, true
}

// Specs returns every plan in the catalog, ordered by token for a
// stable API response.
func (c *Catalog) Specs() []PlanSpec {
	out := make([]PlanSpec, 0, len(c.specs))
	for _, p := range c.specs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}
