// Package market derives ambient market conditions from live gas data so
// risk scoring and advice have a context to work against.
package market

import (
	"context"
	"math/big"

	"github.com/swapsage/swapsage-cli/internal/model"
	"github.com/swapsage/swapsage-cli/internal/providers"
)

// Gas tier boundaries in gwei for the fast lane.
const (
	lowGasGweiMax   = 15
	highGasGweiMin  = 60
	weiPerGwei      = 1_000_000_000
	defaultTrend    = "neutral"
	defaultLiqDepth = 0.5
)

type Service struct {
	agg providers.Aggregator
}

func New(agg providers.Aggregator) *Service {
	return &Service{agg: agg}
}

// Context classifies current gas into low/normal/high and advises whether
// this is a reasonable moment to swap. Volatility and liquidity stay at
// neutral defaults; no venue supplies them directly.
func (s *Service) Context(ctx context.Context, chainID int64) (model.MarketContext, error) {
	tiers, err := s.agg.GasPrice(ctx, chainID)
	if err != nil {
		return model.MarketContext{}, err
	}
	conditions := classifyGas(tiers.Fast)

	action := "swap_now"
	if conditions == model.GasHigh {
		action = "wait"
	}
	return model.MarketContext{
		Volatility:        0,
		GasConditions:     conditions,
		MarketTrend:       defaultTrend,
		LiquidityDepth:    defaultLiqDepth,
		RecommendedAction: action,
	}, nil
}

// classifyGas maps a wei-denominated fast gas price onto a tier. Unparseable
// input counts as normal rather than failing the whole analysis.
func classifyGas(fastWei string) model.GasConditions {
	wei, ok := new(big.Int).SetString(fastWei, 10)
	if !ok || wei.Sign() < 0 {
		return model.GasNormal
	}
	gwei := new(big.Int).Div(wei, big.NewInt(weiPerGwei))
	switch {
	case gwei.Cmp(big.NewInt(lowGasGweiMax)) < 0:
		return model.GasLow
	case gwei.Cmp(big.NewInt(highGasGweiMin)) > 0:
		return model.GasHigh
	default:
		return model.GasNormal
	}
}
