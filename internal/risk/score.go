// Package risk scores a route against deterministic safety rules. Scoring
// never fails: an empty finding list means no rule fired.
package risk

import (
	"fmt"

	"github.com/swapsage/swapsage-cli/internal/model"
)

const (
	slippageHighThreshold = 2.0
	impactWarnThreshold   = 1.0
	impactHighThreshold   = 3.0
	complexRouteHops      = 3
)

// Score evaluates the fixed rule set in order: slippage, gas conditions,
// price impact, route complexity. Pure function of its inputs.
func Score(route model.Route, mctx model.MarketContext) []model.RiskFactor {
	factors := []model.RiskFactor{}

	if route.Slippage > slippageHighThreshold {
		factors = append(factors, model.RiskFactor{
			Type:        model.RiskSlippage,
			Level:       model.RiskHigh,
			Title:       "High slippage tolerance",
			Description: fmt.Sprintf("Slippage tolerance of %.4g%% allows significant price movement before the swap reverts.", route.Slippage),
			Impact:      "The received amount may be well below the quoted amount.",
			Mitigation:  "Use a tighter slippage tolerance or split the trade.",
		})
	}

	if mctx.GasConditions == model.GasHigh {
		factors = append(factors, model.RiskFactor{
			Type:        model.RiskGas,
			Level:       model.RiskMedium,
			Title:       "Elevated network fees",
			Description: "Gas prices are currently high; execution will cost more than usual.",
			Impact:      "A larger share of the trade value is spent on fees.",
			Mitigation:  "Wait for gas prices to drop if the trade is not urgent.",
		})
	}

	if route.PriceImpact > impactWarnThreshold {
		level := model.RiskMedium
		if route.PriceImpact > impactHighThreshold {
			level = model.RiskHigh
		}
		factors = append(factors, model.RiskFactor{
			Type:        model.RiskMarket,
			Level:       level,
			Title:       "Notable price impact",
			Description: fmt.Sprintf("This trade moves the price by an estimated %.2f%%.", route.PriceImpact),
			Impact:      "Larger trades receive a worse effective rate.",
			Mitigation:  "Reduce the trade size or split it across multiple swaps.",
		})
	}

	if len(route.Protocols) > complexRouteHops {
		factors = append(factors, model.RiskFactor{
			Type:        model.RiskSmartContract,
			Level:       model.RiskLow,
			Title:       "Complex route",
			Description: fmt.Sprintf("The route touches %d venues, each adding smart-contract exposure.", len(route.Protocols)),
			Impact:      "More contracts in the path means more places execution can fail.",
			Mitigation:  "Prefer simpler routes when output amounts are close.",
		})
	}

	return factors
}
