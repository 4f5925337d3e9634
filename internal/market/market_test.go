package market

import (
	"context"
	"testing"

	"github.com/swapsage/swapsage-cli/internal/model"
	"github.com/swapsage/swapsage-cli/internal/providers"
)

type stubAggregator struct {
	providers.Aggregator
	tiers model.GasPriceTiers
	err   error
}

func (s *stubAggregator) GasPrice(_ context.Context, _ int64) (model.GasPriceTiers, error) {
	return s.tiers, s.err
}

func TestClassifyGasTiers(t *testing.T) {
	cases := []struct {
		name string
		wei  string
		want model.GasConditions
	}{
		{"low", "9000000000", model.GasLow},
		{"normal lower bound", "15000000000", model.GasNormal},
		{"normal upper bound", "60000000000", model.GasNormal},
		{"high", "61000000000", model.GasHigh},
		{"unparseable", "not-a-number", model.GasNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyGas(tc.wei); got != tc.want {
				t.Fatalf("classifyGas(%s) = %s, want %s", tc.wei, got, tc.want)
			}
		})
	}
}

func TestContextRecommendsWaitingWhenGasHigh(t *testing.T) {
	svc := New(&stubAggregator{tiers: model.GasPriceTiers{Fast: "90000000000"}})
	got, err := svc.Context(context.Background(), 1)
	if err != nil {
		t.Fatalf("Context failed: %v", err)
	}
	if got.GasConditions != model.GasHigh || got.RecommendedAction != "wait" {
		t.Fatalf("unexpected context: %+v", got)
	}
}

func TestContextRecommendsSwappingOtherwise(t *testing.T) {
	svc := New(&stubAggregator{tiers: model.GasPriceTiers{Fast: "10000000000"}})
	got, err := svc.Context(context.Background(), 1)
	if err != nil {
		t.Fatalf("Context failed: %v", err)
	}
	if got.GasConditions != model.GasLow || got.RecommendedAction != "swap_now" {
		t.Fatalf("unexpected context: %+v", got)
	}
}
