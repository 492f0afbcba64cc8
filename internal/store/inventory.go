package store

import (
	"sync"

	"github.com/appleprotools/resale/internal/domain/models"
)

// Inventory is the ordered set of inventory lots. Store order matters: sales
// draw from the first matching lot with units left.
type Inventory struct {
	mu   sync.RWMutex
	lots []models.InventoryLot
}

// NewInventory seeds an inventory with a copy of lots.
func NewInventory(lots []models.InventoryLot) *Inventory {
	seeded := make([]models.InventoryLot, len(lots))
	copy(seeded, lots)
	return &Inventory{lots: seeded}
}

// Lots returns a snapshot of every lot in store order.
func (i *Inventory) Lots() []models.InventoryLot {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]models.InventoryLot, len(i.lots))
	copy(out, i.lots)
	return out
}

// Find returns the first lot for model, whatever its quantity.
func (i *Inventory) Find(model string) (models.InventoryLot, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	for _, lot := range i.lots {
		if lot.Model == model {
			return lot, true
		}
	}
	return models.InventoryLot{}, false
}

// TakeUnit decrements the first lot of model that still has units and returns
// it after the decrement. Returns false without mutation when none qualifies.
func (i *Inventory) TakeUnit(model string) (models.InventoryLot, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for idx := range i.lots {
		if i.lots[idx].Model == model && i.lots[idx].InStock() {
			i.lots[idx].Quantity--
			return i.lots[idx], true
		}
	}
	return models.InventoryLot{}, false
}
