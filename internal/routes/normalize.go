package routes

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/swapsage/swapsage-cli/internal/model"
	"github.com/swapsage/swapsage-cli/internal/providers"
)

// Normalize converts one raw swap payload into the canonical route record.
// Price impact and steps are derived here; everything else is copied
// verbatim from the upstream response.
func Normalize(resp providers.SwapResponse, slippage float64) model.Route {
	route := model.Route{
		ID:         newRouteID(),
		FromToken:  resp.FromToken,
		ToToken:    resp.ToToken,
		FromAmount: resp.FromAmount,
		ToAmount:   resp.ToAmount,
		Protocols:  resp.Protocols,
		Gas:        resp.Gas,
		GasPrice:   resp.GasPrice,
		Tx:         resp.Tx,
		Slippage:   slippage,
	}
	route.PriceImpact = EstimateImpact(resp.FromAmount, resp.ToAmount)
	route.Steps = buildSteps(resp)
	return route
}

// buildSteps emits one step per participating protocol. Per-step amounts are
// not reported upstream, so they stay at the "0" sentinel.
func buildSteps(resp providers.SwapResponse) []model.RouteStep {
	steps := make([]model.RouteStep, 0, len(resp.Protocols))
	for _, p := range resp.Protocols {
		steps = append(steps, model.RouteStep{
			Protocol:   p.Name,
			FromToken:  resp.FromToken,
			ToToken:    resp.ToToken,
			FromAmount: "0",
			ToAmount:   "0",
			Part:       p.Part,
		})
	}
	return steps
}

func newRouteID() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("route-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
