package risk

import (
	"reflect"
	"strings"
	"testing"

	"github.com/swapsage/swapsage-cli/internal/model"
)

func protocols(n int) []model.Protocol {
	out := make([]model.Protocol, n)
	for i := range out {
		out[i] = model.Protocol{Name: "VENUE", Part: 100 / float64(n)}
	}
	return out
}

func TestScoreCleanRouteHasNoFindings(t *testing.T) {
	route := model.Route{Slippage: 0.5, PriceImpact: 0.2, Protocols: protocols(2)}
	got := Score(route, model.MarketContext{GasConditions: model.GasNormal})
	if len(got) != 0 {
		t.Fatalf("expected no findings, got %+v", got)
	}
}

func TestScoreSlippageBoundary(t *testing.T) {
	atThreshold := Score(model.Route{Slippage: 2}, model.MarketContext{})
	if len(atThreshold) != 0 {
		t.Fatalf("slippage exactly 2 should not fire, got %+v", atThreshold)
	}
	above := Score(model.Route{Slippage: 2.0001}, model.MarketContext{})
	if len(above) != 1 || above[0].Type != model.RiskSlippage || above[0].Level != model.RiskHigh {
		t.Fatalf("expected high slippage finding, got %+v", above)
	}
}

func TestScoreImpactBoundaries(t *testing.T) {
	if got := Score(model.Route{PriceImpact: 1}, model.MarketContext{}); len(got) != 0 {
		t.Fatalf("impact exactly 1 should not fire, got %+v", got)
	}
	medium := Score(model.Route{PriceImpact: 1.0001}, model.MarketContext{})
	if len(medium) != 1 || medium[0].Type != model.RiskMarket || medium[0].Level != model.RiskMedium {
		t.Fatalf("expected medium impact finding, got %+v", medium)
	}
	atHigh := Score(model.Route{PriceImpact: 3}, model.MarketContext{})
	if len(atHigh) != 1 || atHigh[0].Level != model.RiskMedium {
		t.Fatalf("impact exactly 3 stays medium, got %+v", atHigh)
	}
	high := Score(model.Route{PriceImpact: 3.0001}, model.MarketContext{})
	if len(high) != 1 || high[0].Level != model.RiskHigh {
		t.Fatalf("expected high impact finding, got %+v", high)
	}
	if !strings.Contains(high[0].Description, "3.00%") {
		t.Fatalf("impact should be printed to 2 decimals: %s", high[0].Description)
	}
}

func TestScoreGasConditions(t *testing.T) {
	got := Score(model.Route{}, model.MarketContext{GasConditions: model.GasHigh})
	if len(got) != 1 || got[0].Type != model.RiskGas || got[0].Level != model.RiskMedium {
		t.Fatalf("expected medium gas finding, got %+v", got)
	}
}

func TestScoreComplexRoute(t *testing.T) {
	if got := Score(model.Route{Protocols: protocols(3)}, model.MarketContext{}); len(got) != 0 {
		t.Fatalf("3 venues should not fire, got %+v", got)
	}
	got := Score(model.Route{Protocols: protocols(4)}, model.MarketContext{})
	if len(got) != 1 || got[0].Type != model.RiskSmartContract || got[0].Level != model.RiskLow {
		t.Fatalf("expected low smart-contract finding, got %+v", got)
	}
}

func TestScoreRuleOrderIsStable(t *testing.T) {
	route := model.Route{Slippage: 3, PriceImpact: 4, Protocols: protocols(5)}
	got := Score(route, model.MarketContext{GasConditions: model.GasHigh})
	wantOrder := []model.RiskType{model.RiskSlippage, model.RiskGas, model.RiskMarket, model.RiskSmartContract}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d findings, got %+v", len(wantOrder), got)
	}
	for i, factor := range got {
		if factor.Type != wantOrder[i] {
			t.Fatalf("finding %d: got %s want %s", i, factor.Type, wantOrder[i])
		}
	}

	again := Score(route, model.MarketContext{GasConditions: model.GasHigh})
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("repeated scoring diverged:\nfirst  %+v\nsecond %+v", got, again)
	}
}
