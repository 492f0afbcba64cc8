package catalog

import (
	"sort"
	"strings"
)

// PriceCatalog exposes the listed marketplace prices of each model.
type PriceCatalog interface {
	Prices(model string) map[string]float64
	Models() []string
}

// RepairCostTable maps a damage label to the amount deducted from a trade-in.
type RepairCostTable interface {
	Deduction(label string) float64
	Table() map[string]float64
}

// PriceTable is an in-memory PriceCatalog: model -> source -> price.
type PriceTable map[string]map[string]float64

// Prices returns a copy of the source prices listed for model, nil when unknown.
func (t PriceTable) Prices(model string) map[string]float64 {
	sources, ok := t[model]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(sources))
	for source, price := range sources {
		out[source] = price
	}
	return out
}

// Models lists every catalog key in lexical order.
func (t PriceTable) Models() []string {
	out := make([]string, 0, len(t))
	for model := range t {
		out = append(out, model)
	}
	sort.Strings(out)
	return out
}

// RepairTable is an in-memory RepairCostTable.
type RepairTable map[string]float64

// Deduction returns the cost for label; unknown labels cost nothing.
func (t RepairTable) Deduction(label string) float64 {
	return t[label]
}

// Table returns a copy of the whole table.
func (t RepairTable) Table() map[string]float64 {
	out := make(map[string]float64, len(t))
	for label, cost := range t {
		out[label] = cost
	}
	return out
}

// Resolve maps free text typed in chat onto a catalog key: an exact match wins,
// then the first case-insensitive match.
func Resolve(c PriceCatalog, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	models := c.Models()
	for _, model := range models {
		if model == name {
			return model, true
		}
	}
	for _, model := range models {
		if strings.EqualFold(model, name) {
			return model, true
		}
	}
	return "", false
}
