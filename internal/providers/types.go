package providers

import (
	"context"

	"github.com/swapsage/swapsage-cli/internal/model"
)

type Provider interface {
	Info() model.ProviderInfo
}

// Aggregator is the capability-typed client for the swap-aggregation API.
// Implementations own transport concerns (auth, retries, timeouts); callers
// treat every method error as an ordinary branch failure.
type Aggregator interface {
	Provider
	Tokens(ctx context.Context, chainID int64) (map[string]model.Token, error)
	Quote(ctx context.Context, req QuoteRequest) (QuoteResponse, error)
	Swap(ctx context.Context, req SwapRequest) (SwapResponse, error)
	Prices(ctx context.Context, chainID int64, addresses []string) (map[string]float64, error)
	Balances(ctx context.Context, chainID int64, wallet string) (map[string]string, error)
	GasPrice(ctx context.Context, chainID int64) (model.GasPriceTiers, error)
	Protocols(ctx context.Context, chainID int64) ([]string, error)
	FusionPlusQuote(ctx context.Context, req FusionPlusQuoteRequest) (FusionPlusQuote, error)
}

// LanguageModel produces one completion for a system/user prompt pair. The
// response is expected, but never assumed, to be parseable JSON.
type LanguageModel interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// MarketData supplies ambient market conditions for risk scoring.
type MarketData interface {
	Context(ctx context.Context, chainID int64) (model.MarketContext, error)
}

type QuoteRequest struct {
	ChainID         int64
	Src             string
	Dst             string
	AmountBaseUnits string
}

// QuoteResponse is a priced quote without transaction data.
type QuoteResponse struct {
	FromToken    model.Token
	ToToken      model.Token
	FromAmount   string
	ToAmount     string
	Protocols    []model.Protocol
	EstimatedGas string
}

type SwapRequest struct {
	ChainID         int64
	Src             string
	Dst             string
	AmountBaseUnits string
	FromAddress     string
	SlippagePct     float64
}

// SwapResponse is a full swap payload including the unsigned transaction.
type SwapResponse struct {
	FromToken  model.Token
	ToToken    model.Token
	FromAmount string
	ToAmount   string
	Protocols  []model.Protocol
	Gas        string
	GasPrice   string
	Tx         model.SwapTransaction
}

type FusionPlusQuoteRequest struct {
	FromChainID int64
	ToChainID   int64
	Src         string
	Dst         string
	Amount      string
}

// FusionPlusQuote is an intent-based cross-chain quote. Advisory only; the
// engine never creates or settles orders.
type FusionPlusQuote struct {
	DstAmount        string
	EstimatedTimeSec int64
	FeeUSD           float64
}
