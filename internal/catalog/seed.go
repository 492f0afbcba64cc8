package catalog

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/appleprotools/resale/internal/domain/models"
)

// DateLayout is the calendar date format used in seeds and sheets.
const DateLayout = "2006-01-02"

// ErrInvalidSeed indicates reference data that breaks a catalog invariant.
var ErrInvalidSeed = errors.New("invalid seed data")

// Seed is the reference data supplied at startup.
type Seed struct {
	Prices    PriceTable  `yaml:"prices"`
	Repairs   RepairTable `yaml:"repairs"`
	Inventory []SeedLot   `yaml:"inventory"`
}

// SeedLot is the flat form of an inventory lot.
type SeedLot struct {
	Model      string  `yaml:"model"`
	Quantity   int     `yaml:"quantity"`
	IntakeDate string  `yaml:"intake_date"`
	UnitCost   float64 `yaml:"unit_cost"`
}

// LoadSeedFile reads and validates a YAML seed from disk.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML seed document and validates it.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// Validate checks prices are finite and positive with at least one named
// source per model, repair costs are finite and non-negative, and lots carry
// sane quantities, costs and dates.
func (s *Seed) Validate() error {
	for model, sources := range s.Prices {
		if strings.TrimSpace(model) == "" {
			return fmt.Errorf("%w: price entry has no model", ErrInvalidSeed)
		}
		if len(sources) == 0 {
			return fmt.Errorf("%w: model %q has no source prices", ErrInvalidSeed, model)
		}
		for source, price := range sources {
			if strings.TrimSpace(source) == "" {
				return fmt.Errorf("%w: model %q has a price without source", ErrInvalidSeed, model)
			}
			if !(price > 0) || math.IsInf(price, 0) {
				return fmt.Errorf("%w: price of %q on %q must be positive", ErrInvalidSeed, model, source)
			}
		}
	}

	for label, cost := range s.Repairs {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%w: repair entry has no label", ErrInvalidSeed)
		}
		if !(cost >= 0) || math.IsInf(cost, 0) {
			return fmt.Errorf("%w: repair %q must have a finite non-negative cost", ErrInvalidSeed, label)
		}
	}

	for i, lot := range s.Inventory {
		if strings.TrimSpace(lot.Model) == "" {
			return fmt.Errorf("%w: inventory row %d has no model", ErrInvalidSeed, i)
		}
		if lot.Quantity < 0 || !(lot.UnitCost >= 0) || math.IsInf(lot.UnitCost, 0) {
			return fmt.Errorf("%w: inventory row %d (%s) has negative quantity or invalid cost", ErrInvalidSeed, i, lot.Model)
		}
		if _, err := parseIntake(lot.IntakeDate); err != nil {
			return fmt.Errorf("%w: inventory row %d (%s): %v", ErrInvalidSeed, i, lot.Model, err)
		}
	}

	return nil
}

// Lots converts the seed rows into inventory lots, keeping row order.
func (s *Seed) Lots() []models.InventoryLot {
	lots := make([]models.InventoryLot, 0, len(s.Inventory))
	for _, row := range s.Inventory {
		intake, _ := parseIntake(row.IntakeDate)
		lots = append(lots, models.InventoryLot{
			Model:    row.Model,
			Quantity: row.Quantity,
			IntakeAt: intake,
			UnitCost: row.UnitCost,
		})
	}
	return lots
}

func parseIntake(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, value)
}
