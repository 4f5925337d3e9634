package routes

import (
	"math/big"
)

const impactCapPct = 5

// EstimateImpact is a coarse price-impact proxy over raw base-unit amounts:
// the relative deviation of output from input, in percent, capped. With no
// independent mid price at this layer the figure is directional, not exact.
func EstimateImpact(fromAmount, toAmount string) float64 {
	from, okFrom := new(big.Float).SetString(fromAmount)
	to, okTo := new(big.Float).SetString(toAmount)
	if !okFrom || !okTo || from.Sign() == 0 {
		return 0
	}
	ratio := new(big.Float).Quo(to, from)
	dev := new(big.Float).Sub(ratio, big.NewFloat(1))
	dev.Abs(dev)
	pct, _ := new(big.Float).Mul(dev, big.NewFloat(100)).Float64()
	if pct > impactCapPct {
		return impactCapPct
	}
	return pct
}
