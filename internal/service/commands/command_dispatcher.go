package commands

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/appleprotools/resale/internal/catalog"
	"github.com/appleprotools/resale/internal/domain/models"
	"github.com/appleprotools/resale/internal/service/pricing"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// HelpText lists the commands the bot understands.
const HelpText = "Commands:\n" +
	"/price <model> - market prices\n" +
	"/margin <cost> <model> - margin over your cost\n" +
	"/forecast <model> - 7/30/60 day price forecast\n" +
	"/stock <model> - stock level"

// PriceProvider is the pricing surface the bot answers from.
type PriceProvider interface {
	Quote(model string) models.Quote
	AveragePrice(model string) float64
	DepreciationForecast(model string) models.Forecast
}

// InsightProvider classifies the stock level of a model.
type InsightProvider interface {
	StockInsight(model string) []models.Insight
}

// Dispatcher executes parsed commands and renders the reply text.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	catalog  catalog.PriceCatalog
	prices   PriceProvider
	insights InsightProvider
	logger   *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(c catalog.PriceCatalog, prices PriceProvider, insights InsightProvider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:  c,
		prices:   prices,
		insights: insights,
		logger:   logger,
	}
}

// HandleCommand answers one command. Unknown commands get the help text.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandPrice:
		model, err := s.resolveModel(cmd.ArgsText(0))
		if err != nil {
			return "", err
		}
		return formatQuote(s.prices.Quote(model)), nil
	case models.CommandMargin:
		if len(cmd.Args) < 2 {
			return "", ErrInvalidArguments
		}
		cost, err := strconv.ParseFloat(strings.ReplaceAll(cmd.Args[0], ",", "."), 64)
		if err != nil || math.IsNaN(cost) || math.IsInf(cost, 0) {
			return "", ErrInvalidArguments
		}
		model, err := s.resolveModel(cmd.ArgsText(1))
		if err != nil {
			return "", err
		}
		avg := s.prices.AveragePrice(model)
		margin := pricing.Margin(cost, avg)
		return fmt.Sprintf("%s: average R$ %.2f, cost R$ %.2f, margin %.2f%%.", model, avg, cost, margin), nil
	case models.CommandForecast:
		model, err := s.resolveModel(cmd.ArgsText(0))
		if err != nil {
			return "", err
		}
		f := s.prices.DepreciationForecast(model)
		return fmt.Sprintf("%s forecast:\n7 days: R$ %.2f\n30 days: R$ %.2f\n60 days: R$ %.2f", model, f.Days7, f.Days30, f.Days60), nil
	case models.CommandStock:
		name := strings.TrimSpace(cmd.ArgsText(0))
		if name == "" {
			return "", ErrInvalidArguments
		}
		if model, ok := catalog.Resolve(s.catalog, name); ok {
			name = model
		}
		return s.insights.StockInsight(name)[0].Message, nil
	case models.CommandUnknown:
		return HelpText, nil
	default:
		return "", ErrUnsupportedCommand
	}
}

func (s *Service) resolveModel(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrInvalidArguments
	}
	model, ok := catalog.Resolve(s.catalog, name)
	if !ok {
		return "", fmt.Errorf("%w: unknown model %q", ErrInvalidArguments, name)
	}
	return model, nil
}

func formatQuote(q models.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s market prices:", q.Model)
	for _, p := range q.Sources {
		fmt.Fprintf(&b, "\n%s: R$ %.2f", p.Source, p.Price)
	}
	fmt.Fprintf(&b, "\nAverage: R$ %.2f", q.Average)
	return b.String()
}
