// Package routes turns raw aggregator swap payloads into canonical, scored
// route candidates across a set of slippage tolerances.
package routes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/swapsage/swapsage-cli/internal/model"
	"github.com/swapsage/swapsage-cli/internal/providers"
)

type Request struct {
	ChainID         int64
	Src             string
	Dst             string
	AmountBaseUnits string
	FromAddress     string
	Slippages       []float64
}

// Result carries the surviving routes plus the per-branch diagnostics the
// command layer folds into the output envelope.
type Result struct {
	Routes    []model.Route
	Providers []model.ProviderStatus
	Warnings  []string
	Partial   bool
}

type Aggregator struct {
	agg providers.Aggregator
}

func NewAggregator(agg providers.Aggregator) *Aggregator {
	return &Aggregator{agg: agg}
}

type branchResult struct {
	resp      providers.SwapResponse
	err       error
	latencyMS int64
}

// GetRoutes fires one swap request per tolerance and collects whatever
// settles. Branch failures never cancel siblings; they become warnings and
// mark the result partial. All branches failing yields an empty route list,
// not an error.
func (a *Aggregator) GetRoutes(ctx context.Context, req Request) Result {
	results := make([]branchResult, len(req.Slippages))
	var wg sync.WaitGroup
	for i, slippage := range req.Slippages {
		wg.Add(1)
		go func(index int, slippage float64) {
			defer wg.Done()
			start := time.Now()
			resp, err := a.agg.Swap(ctx, providers.SwapRequest{
				ChainID:         req.ChainID,
				Src:             req.Src,
				Dst:             req.Dst,
				AmountBaseUnits: req.AmountBaseUnits,
				FromAddress:     req.FromAddress,
				SlippagePct:     slippage,
			})
			results[index] = branchResult{resp: resp, err: err, latencyMS: time.Since(start).Milliseconds()}
		}(i, slippage)
	}
	wg.Wait()

	out := Result{Routes: []model.Route{}}
	providerName := a.agg.Info().Name
	for i, res := range results {
		status := "ok"
		if res.err != nil {
			status = "error"
			out.Warnings = append(out.Warnings, fmt.Sprintf("route at %.4g%% slippage failed: %v", req.Slippages[i], res.err))
			out.Partial = true
		} else {
			out.Routes = append(out.Routes, Normalize(res.resp, req.Slippages[i]))
		}
		out.Providers = append(out.Providers, model.ProviderStatus{
			Name:      fmt.Sprintf("%s[slippage=%.4g]", providerName, req.Slippages[i]),
			Status:    status,
			LatencyMS: res.latencyMS,
		})
	}
	return out
}
