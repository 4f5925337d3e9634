package routes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/swapsage/swapsage-cli/internal/model"
	"github.com/swapsage/swapsage-cli/internal/providers"
)

type scriptedAggregator struct {
	providers.Aggregator
	responses map[float64]providers.SwapResponse
	failures  map[float64]error
}

func (s *scriptedAggregator) Info() model.ProviderInfo {
	return model.ProviderInfo{Name: "1inch"}
}

func (s *scriptedAggregator) Swap(_ context.Context, req providers.SwapRequest) (providers.SwapResponse, error) {
	if err, ok := s.failures[req.SlippagePct]; ok {
		return providers.SwapResponse{}, err
	}
	resp, ok := s.responses[req.SlippagePct]
	if !ok {
		return providers.SwapResponse{}, errors.New("unexpected slippage")
	}
	return resp, nil
}

func swapResp(toAmount string) providers.SwapResponse {
	return providers.SwapResponse{
		FromToken:  model.Token{Symbol: "ETH", Decimals: 18},
		ToToken:    model.Token{Symbol: "USDC", Decimals: 6},
		FromAmount: "1000000000000000000",
		ToAmount:   toAmount,
		Protocols:  []model.Protocol{{Name: "UNISWAP_V3", Part: 100}},
		Gas:        "210000",
		GasPrice:   "21000000000",
		Tx:         model.SwapTransaction{To: "0x1111111111111111111111111111111111111111"},
	}
}

func TestGetRoutesKeepsToleranceOrder(t *testing.T) {
	agg := &scriptedAggregator{responses: map[float64]providers.SwapResponse{
		0.5: swapResp("3190000000"),
		1:   swapResp("3195000000"),
		2:   swapResp("3200000000"),
		3:   swapResp("3180000000"),
	}}
	got := NewAggregator(agg).GetRoutes(context.Background(), Request{
		ChainID: 1, Src: "a", Dst: "b", AmountBaseUnits: "1000000000000000000",
		Slippages: []float64{0.5, 1, 2, 3},
	})
	if len(got.Routes) != 4 || got.Partial {
		t.Fatalf("expected 4 complete routes, got %d partial=%v", len(got.Routes), got.Partial)
	}
	wantAmounts := []string{"3190000000", "3195000000", "3200000000", "3180000000"}
	for i, route := range got.Routes {
		if route.ToAmount != wantAmounts[i] {
			t.Fatalf("route %d out of order: got %s want %s", i, route.ToAmount, wantAmounts[i])
		}
	}
	wantSlippages := []float64{0.5, 1, 2, 3}
	for i, route := range got.Routes {
		if route.Slippage != wantSlippages[i] {
			t.Fatalf("route %d slippage: got %v want %v", i, route.Slippage, wantSlippages[i])
		}
	}
}

func TestGetRoutesPartialFailureKeepsSurvivors(t *testing.T) {
	agg := &scriptedAggregator{
		responses: map[float64]providers.SwapResponse{
			0.5: swapResp("3190000000"),
			2:   swapResp("3200000000"),
		},
		failures: map[float64]error{
			1: errors.New("rate limited"),
			3: errors.New("rate limited"),
		},
	}
	got := NewAggregator(agg).GetRoutes(context.Background(), Request{
		ChainID: 1, Src: "a", Dst: "b", AmountBaseUnits: "1",
		Slippages: []float64{0.5, 1, 2, 3},
	})
	if len(got.Routes) != 2 {
		t.Fatalf("expected 2 surviving routes, got %d", len(got.Routes))
	}
	if got.Routes[0].Slippage != 0.5 || got.Routes[1].Slippage != 2 {
		t.Fatalf("survivors out of order: %v %v", got.Routes[0].Slippage, got.Routes[1].Slippage)
	}
	if !got.Partial || len(got.Warnings) != 2 {
		t.Fatalf("expected partial with 2 warnings, got partial=%v warnings=%v", got.Partial, got.Warnings)
	}
}

func TestGetRoutesTotalFailureIsEmptyNotError(t *testing.T) {
	agg := &scriptedAggregator{failures: map[float64]error{
		0.5: errors.New("down"), 1: errors.New("down"),
	}}
	got := NewAggregator(agg).GetRoutes(context.Background(), Request{
		ChainID: 1, Src: "a", Dst: "b", AmountBaseUnits: "1",
		Slippages: []float64{0.5, 1},
	})
	if got.Routes == nil || len(got.Routes) != 0 {
		t.Fatalf("expected empty non-nil route slice, got %#v", got.Routes)
	}
	if !got.Partial {
		t.Fatal("expected partial flag on total failure")
	}
	for _, st := range got.Providers {
		if st.Status != "error" {
			t.Fatalf("expected every branch marked error, got %+v", got.Providers)
		}
	}
}

func TestNormalizeDerivesImpactStepsAndID(t *testing.T) {
	route := Normalize(swapResp("3195000000"), 1)
	if !strings.HasPrefix(route.ID, "route-") {
		t.Fatalf("unexpected id: %s", route.ID)
	}
	if len(route.Steps) != 1 || route.Steps[0].Protocol != "UNISWAP_V3" {
		t.Fatalf("unexpected steps: %+v", route.Steps)
	}
	if route.Steps[0].FromAmount != "0" || route.Steps[0].ToAmount != "0" {
		t.Fatalf("step amounts should stay at sentinel: %+v", route.Steps[0])
	}
	if route.PriceImpact != 5 {
		t.Fatalf("raw base-unit ratio should hit the impact cap, got %v", route.PriceImpact)
	}
}

func TestNormalizeIDsAreUnique(t *testing.T) {
	a := Normalize(swapResp("1"), 1)
	b := Normalize(swapResp("1"), 1)
	if a.ID == b.ID {
		t.Fatalf("ids collide: %s", a.ID)
	}
}
