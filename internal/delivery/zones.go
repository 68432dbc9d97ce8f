package delivery

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Center is one delivery destination with its flat shipping price.
type Center struct {
	Name  string  `yaml:"name" json:"name"`
	Price float64 `yaml:"price" json:"price"`
}

// Zones maps governorates to their centers. Read-only reference data; the
// storefront never writes it.
type Zones struct {
	Governorates map[string][]Center `yaml:"governorates" json:"governorates"`
}

// Load reads the zone table from a YAML file.
func Load(path string) (*Zones, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading delivery zones: %w", err)
	}
	z := &Zones{}
	if err := yaml.Unmarshal(data, z); err != nil {
		return nil, fmt.Errorf("parsing delivery zones: %w", err)
	}
	if z.Governorates == nil {
		z.Governorates = map[string][]Center{}
	}
	return z, nil
}

// Lookup resolves the flat delivery price for a governorate/center pair.
// Unknown pairs return ok=false; callers display "-" and leave the price out
// of numeric totals rather than treating it as zero.
func (z *Zones) Lookup(governorate, center string) (float64, bool) {
	centers, ok := z.Governorates[governorate]
	if !ok {
		return 0, false
	}
	for _, c := range centers {
		if c.Name == center {
			return c.Price, true
		}
	}
	return 0, false
}

// GovernorateNames returns the governorates in stable sorted order.
func (z *Zones) GovernorateNames() []string {
	out := make([]string, 0, len(z.Governorates))
	for name := range z.Governorates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Centers lists the centers of one governorate; nil when unknown.
func (z *Zones) Centers(governorate string) []Center {
	return z.Governorates[governorate]
}
