package advisor

import (
	"fmt"

	"github.com/appleprotools/resale/internal/domain/models"
)

const (
	// accessoryMarkup is added to the average price of a bundled phone.
	accessoryMarkup = 50.0
	// highStockThreshold is the quantity above which a bonus offer is advised.
	highStockThreshold = 3
	bundleMinQuantity  = 2
)

// InventoryReader is the read side of the inventory store.
type InventoryReader interface {
	Lots() []models.InventoryLot
	Find(model string) (models.InventoryLot, bool)
}

// AveragePricer provides the market average of a model.
type AveragePricer interface {
	AveragePrice(model string) float64
}

// Service turns stock levels into sales advice.
type Service struct {
	inventory InventoryReader
	prices    AveragePricer
	matcher   Matcher
}

// NewService wires an advisor. A nil matcher falls back to SecondTokenMatcher.
func NewService(inventory InventoryReader, prices AveragePricer, matcher Matcher) *Service {
	if matcher == nil {
		matcher = SecondTokenMatcher{}
	}
	return &Service{inventory: inventory, prices: prices, matcher: matcher}
}

// StockInsight returns exactly one insight for model. A lot sold down to zero
// is still present and therefore reads as moderate stock, not absent.
func (s *Service) StockInsight(model string) []models.Insight {
	lot, found := s.inventory.Find(model)

	var insight models.Insight
	switch {
	case !found:
		insight = models.Insight{
			Code:    models.InsightNotInStock,
			Message: fmt.Sprintf("%s is not in stock.", model),
		}
	case lot.Quantity > highStockThreshold:
		insight = models.Insight{
			Code:    models.InsightHighStock,
			Message: fmt.Sprintf("High stock of %s (%d units): offer a bonus or accessory to move units.", model, lot.Quantity),
		}
	case lot.Quantity == 1:
		insight = models.Insight{
			Code:    models.InsightLastUnit,
			Message: fmt.Sprintf("Last unit of %s: use urgency in the pitch.", model),
		}
	default:
		insight = models.Insight{
			Code:    models.InsightModerateStock,
			Message: fmt.Sprintf("Moderate stock of %s (%d units).", model, lot.Quantity),
		}
	}

	return []models.Insight{insight}
}

// SimilarModels lists stocked models the matcher considers close to model,
// in store order.
func (s *Service) SimilarModels(model string) []string {
	lots := s.inventory.Lots()
	candidates := make([]string, 0, len(lots))
	for _, lot := range lots {
		candidates = append(candidates, lot.Model)
	}
	return s.matcher.Match(model, candidates)
}

// BundleSuggestions proposes a phone + screen protector + case combo for each
// lot holding at least two units.
func (s *Service) BundleSuggestions(lots []models.InventoryLot) []models.Bundle {
	out := make([]models.Bundle, 0)
	for _, lot := range lots {
		if lot.Quantity < bundleMinQuantity {
			continue
		}
		out = append(out, models.Bundle{
			Label:          lot.Model + " + screen protector + case",
			Model:          lot.Model,
			SuggestedPrice: s.prices.AveragePrice(lot.Model) + accessoryMarkup,
		})
	}
	return out
}

// CurrentBundles runs BundleSuggestions over the live inventory.
func (s *Service) CurrentBundles() []models.Bundle {
	return s.BundleSuggestions(s.inventory.Lots())
}
