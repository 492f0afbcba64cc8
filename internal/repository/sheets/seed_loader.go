package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/appleprotools/resale/internal/catalog"
)

const (
	pricesRange    = "Prices!A:C"
	repairsRange   = "Repairs!A:B"
	inventoryRange = "Inventory!A:D"
)

// LoadSeed builds the reference data from three tabs:
// Prices (model, source, price), Repairs (label, cost) and
// Inventory (model, quantity, intake date, unit cost). Rows whose numbers do
// not parse, header rows included, are skipped.
func LoadSeed(ctx context.Context, repo Repository, logger *zap.Logger) (*catalog.Seed, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	seed := &catalog.Seed{
		Prices:  catalog.PriceTable{},
		Repairs: catalog.RepairTable{},
	}

	rows, err := repo.ReadRange(ctx, pricesRange)
	if err != nil {
		return nil, fmt.Errorf("load prices range: %w", err)
	}
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		price, err := parseFloat(row[2])
		if err != nil {
			logger.Debug("skip price row", zap.Any("row", row), zap.Error(err))
			continue
		}
		model, source := cell(row[0]), cell(row[1])
		if seed.Prices[model] == nil {
			seed.Prices[model] = map[string]float64{}
		}
		seed.Prices[model][source] = price
	}

	rows, err = repo.ReadRange(ctx, repairsRange)
	if err != nil {
		return nil, fmt.Errorf("load repairs range: %w", err)
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		cost, err := parseFloat(row[1])
		if err != nil {
			logger.Debug("skip repair row", zap.Any("row", row), zap.Error(err))
			continue
		}
		seed.Repairs[cell(row[0])] = cost
	}

	rows, err = repo.ReadRange(ctx, inventoryRange)
	if err != nil {
		return nil, fmt.Errorf("load inventory range: %w", err)
	}
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		qty, err := strconv.Atoi(cell(row[1]))
		if err != nil {
			logger.Debug("skip inventory row with invalid quantity", zap.Any("row", row), zap.Error(err))
			continue
		}
		cost, err := parseFloat(row[3])
		if err != nil {
			logger.Debug("skip inventory row with invalid cost", zap.Any("row", row), zap.Error(err))
			continue
		}
		seed.Inventory = append(seed.Inventory, catalog.SeedLot{
			Model:      cell(row[0]),
			Quantity:   qty,
			IntakeDate: dateCell(row[2]),
			UnitCost:   cost,
		})
	}

	if err := seed.Validate(); err != nil {
		return nil, err
	}

	logger.Info("seed loaded from spreadsheet",
		zap.Int("models", len(seed.Prices)),
		zap.Int("repairs", len(seed.Repairs)),
		zap.Int("lots", len(seed.Inventory)))

	return seed, nil
}

func cell(value interface{}) string {
	return strings.TrimSpace(fmt.Sprint(value))
}

// dateCell keeps the calendar part of timestamps sheets sometimes return.
func dateCell(value interface{}) string {
	str := cell(value)
	if len(str) > len(catalog.DateLayout) {
		str = str[:len(catalog.DateLayout)]
	}
	return str
}

func parseFloat(value interface{}) (float64, error) {
	str := cell(value)
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}
