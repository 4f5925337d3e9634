package advisor

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/swapsage/swapsage-cli/internal/model"
	"github.com/swapsage/swapsage-cli/internal/providers"
)

// Heuristic cost and time figures for candidate strategies. Advisory
// estimates; nothing here executes bridging or settlement.
const (
	directTimeMinutes     = 2
	directCostUSD         = 4.0
	bridgeTimeMinutes     = 20
	bridgeFeeUSD          = 5.0
	bridgeSwapGasUSD      = 3.0
	fusionPlusTimeMinutes = 10
	fusionPlusCostUSD     = 2.0
)

type CrossChainAdvisor struct {
	agg    providers.Aggregator
	logger *logrus.Logger
}

func NewCrossChainAdvisor(agg providers.Aggregator, logger *logrus.Logger) *CrossChainAdvisor {
	return &CrossChainAdvisor{agg: agg, logger: logger}
}

// Advise proposes ranked strategies for moving value between chains. Same
// chain always yields an empty slice. The fusion+ quote branch is
// best-effort: when it fails the candidate is still proposed with the
// heuristic figures.
func (a *CrossChainAdvisor) Advise(ctx context.Context, from, to model.Token, amountBaseUnits string, direct *model.Route) []model.CrossChainOption {
	if from.ChainID == to.ChainID {
		return []model.CrossChainOption{}
	}

	options := []model.CrossChainOption{}

	if direct != nil {
		options = append(options, model.CrossChainOption{
			Type:          model.CrossChainDirect,
			Route:         direct,
			Explanation:   "A direct route already covers both chains; no extra bridging step is needed.",
			EstimatedTime: directTimeMinutes,
			TotalCost:     formatUSD(directCostUSD),
			Pros:          []string{"Single transaction", "Fastest settlement"},
			Cons:          []string{"Not available for every pair"},
		})
	}

	options = append(options, model.CrossChainOption{
		Type: model.CrossChainBridgeSwap,
		Explanation: "Bridge " + from.Symbol + " to the destination chain, then swap into " + to.Symbol +
			" there. Reliable but slower and pays both bridge and swap fees.",
		EstimatedTime: bridgeTimeMinutes,
		TotalCost:     formatUSD(bridgeFeeUSD + bridgeSwapGasUSD),
		Pros:          []string{"Works for any bridgeable token", "Predictable mechanics"},
		Cons:          []string{"Two transactions", "Bridge fee plus destination gas"},
	})

	options = append(options, a.fusionPlusOption(ctx, from, to, amountBaseUnits))

	markRecommended(options)
	return options
}

func (a *CrossChainAdvisor) fusionPlusOption(ctx context.Context, from, to model.Token, amountBaseUnits string) model.CrossChainOption {
	option := model.CrossChainOption{
		Type: model.CrossChainFusionPlus,
		Explanation: "An intent-based cross-chain order: resolvers compete to fill the swap, so there is " +
			"no bridging step and no destination gas for you.",
		EstimatedTime: fusionPlusTimeMinutes,
		TotalCost:     formatUSD(fusionPlusCostUSD),
		Pros:          []string{"No manual bridging", "Gasless on the destination chain", "MEV-protected auction"},
		Cons:          []string{"Fill time depends on resolver interest"},
	}
	quote, err := a.agg.FusionPlusQuote(ctx, providers.FusionPlusQuoteRequest{
		FromChainID: from.ChainID,
		ToChainID:   to.ChainID,
		Src:         from.Address,
		Dst:         to.Address,
		Amount:      amountBaseUnits,
	})
	if err != nil {
		a.logger.WithError(err).Debug("fusion+ quote unavailable, using heuristic estimates")
		return option
	}
	if quote.EstimatedTimeSec > 0 {
		minutes := int(quote.EstimatedTimeSec / 60)
		if minutes < 1 {
			minutes = 1
		}
		option.EstimatedTime = minutes
	}
	if quote.FeeUSD > 0 {
		option.TotalCost = formatUSD(quote.FeeUSD)
	}
	return option
}

// markRecommended flags at most one option: lowest cost, ties broken by
// lowest estimated time.
func markRecommended(options []model.CrossChainOption) {
	best := -1
	for i, option := range options {
		cost, err := strconv.ParseFloat(option.TotalCost, 64)
		if err != nil {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		bestCost, _ := strconv.ParseFloat(options[best].TotalCost, 64)
		if cost < bestCost || (cost == bestCost && option.EstimatedTime < options[best].EstimatedTime) {
			best = i
		}
	}
	if best >= 0 {
		options[best].Recommended = true
	}
}

func formatUSD(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
