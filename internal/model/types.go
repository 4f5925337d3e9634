package model

import "time"

const EnvelopeVersion = "v1"

type Envelope struct {
	Version  string       `json:"version"`
	Success  bool         `json:"success"`
	Data     any          `json:"data,omitempty"`
	Error    *ErrorBody   `json:"error"`
	Warnings []string     `json:"warnings,omitempty"`
	Meta     EnvelopeMeta `json:"meta"`
}

type ErrorBody struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type EnvelopeMeta struct {
	RequestID string           `json:"request_id"`
	Timestamp time.Time        `json:"timestamp"`
	Command   string           `json:"command"`
	Providers []ProviderStatus `json:"providers,omitempty"`
	Cache     CacheStatus      `json:"cache"`
	Partial   bool             `json:"partial"`
}

type ProviderStatus struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
}

type CacheStatus struct {
	Status string `json:"status"`
	AgeMS  int64  `json:"age_ms"`
	Stale  bool   `json:"stale"`
}

type ProviderInfo struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	RequiresKey   bool     `json:"requires_key"`
	Capabilities  []string `json:"capabilities"`
	KeyEnvVarName string   `json:"key_env_var,omitempty"`
}

// Token is immutable chain-scoped reference data, identified by
// (chain_id, address).
type Token struct {
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Decimals int     `json:"decimals"`
	LogoURI  string  `json:"logoURI,omitempty"`
	ChainID  int64   `json:"chain_id"`
	Price    float64 `json:"price,omitempty"`
	Balance  string  `json:"balance,omitempty"`
}

// Protocol is one venue participating in a fill. Parts of the protocols at
// the same hop sum to 100.
type Protocol struct {
	Name             string  `json:"name"`
	Part             float64 `json:"part"`
	FromTokenAddress string  `json:"fromTokenAddress"`
	ToTokenAddress   string  `json:"toTokenAddress"`
}

// RouteStep is one hop of execution. Per-step amounts are not derivable
// from aggregator protocol data alone and stay at the "0" sentinel rather
// than being fabricated.
type RouteStep struct {
	Protocol   string  `json:"protocol"`
	FromToken  Token   `json:"from_token"`
	ToToken    Token   `json:"to_token"`
	FromAmount string  `json:"from_amount"`
	ToAmount   string  `json:"to_amount"`
	Part       float64 `json:"part"`
}

type SwapTransaction struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Data     string `json:"data"`
	Value    string `json:"value"`
	GasPrice string `json:"gasPrice"`
	Gas      string `json:"gas"`
}

// Route is one complete, priced, fee-estimated way to exchange FromToken
// for ToToken. PriceImpact and Steps are derived locally, never copied
// from the raw aggregator response. Immutable after normalization.
type Route struct {
	ID          string          `json:"id"`
	FromToken   Token           `json:"from_token"`
	ToToken     Token           `json:"to_token"`
	FromAmount  string          `json:"from_amount"`
	ToAmount    string          `json:"to_amount"`
	Protocols   []Protocol      `json:"protocols"`
	Gas         string          `json:"gas"`
	GasPrice    string          `json:"gas_price"`
	Tx          SwapTransaction `json:"tx"`
	PriceImpact float64         `json:"price_impact"`
	Slippage    float64         `json:"slippage"`
	Steps       []RouteStep     `json:"steps"`
}

type RiskType string

const (
	RiskSlippage      RiskType = "slippage"
	RiskLiquidity     RiskType = "liquidity"
	RiskGas           RiskType = "gas"
	RiskMarket        RiskType = "market"
	RiskSmartContract RiskType = "smart_contract"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskFactor is one discrete, typed finding about a route's safety or cost
// profile. Produced fresh per scoring call, never persisted.
type RiskFactor struct {
	Type        RiskType  `json:"type"`
	Level       RiskLevel `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Impact      string    `json:"impact,omitempty"`
	Mitigation  string    `json:"mitigation,omitempty"`
}

type GasConditions string

const (
	GasLow    GasConditions = "low"
	GasNormal GasConditions = "normal"
	GasHigh   GasConditions = "high"
)

// MarketContext is ambient market state supplied by a collaborator and
// held read-only for the duration of one analysis.
type MarketContext struct {
	Volatility        float64       `json:"volatility"`
	GasConditions     GasConditions `json:"gas_conditions"`
	MarketTrend       string        `json:"market_trend"`
	LiquidityDepth    float64       `json:"liquidity_depth"`
	RecommendedAction string        `json:"recommended_action"`
}

// UserProfile tunes explanation tone only; the engine never mutates it.
type UserProfile struct {
	Address                   string  `json:"address"`
	ExperienceLevel           string  `json:"experience_level"`
	PreferredExplanationStyle string  `json:"preferred_explanation_style"`
	RiskTolerance             string  `json:"risk_tolerance"`
	PreviousSwaps             int     `json:"previous_swaps"`
	PortfolioValue            string  `json:"portfolio_value"`
	PreferredChains           []int64 `json:"preferred_chains"`
}

type AIExplanation struct {
	Summary          string       `json:"summary"`
	RouteExplanation string       `json:"routeExplanation"`
	RiskAnalysis     []RiskFactor `json:"riskAnalysis"`
	Recommendations  []string     `json:"recommendations"`
	GasExplanation   string       `json:"gasExplanation"`
	TimeEstimate     string       `json:"timeEstimate"`
	Confidence       float64      `json:"confidence"`
}

type CrossChainType string

const (
	CrossChainDirect     CrossChainType = "direct"
	CrossChainBridgeSwap CrossChainType = "bridge_then_swap"
	CrossChainFusionPlus CrossChainType = "fusion_plus"
)

// CrossChainOption is an advisory strategy for moving value between two
// chains. No option executes anything; figures are estimates.
type CrossChainOption struct {
	Type          CrossChainType `json:"type"`
	Route         *Route         `json:"route,omitempty"`
	Explanation   string         `json:"explanation"`
	EstimatedTime int            `json:"estimated_time_minutes"`
	TotalCost     string         `json:"total_cost_usd"`
	Recommended   bool           `json:"recommended"`
	Pros          []string       `json:"pros"`
	Cons          []string       `json:"cons"`
}

// QuoteRisk is the compact risk hint attached to single-quote responses.
type QuoteRisk struct {
	PriceImpactBps float64 `json:"price_impact_bps"`
	Slippage       string  `json:"slippage"`
}

// SwapAnalysis is the full output of one analyze call: the selected route,
// its alternatives, risk findings, explanation, and ambient context.
type SwapAnalysis struct {
	Route             Route              `json:"route"`
	Alternatives      []Route            `json:"alternatives"`
	RiskFactors       []RiskFactor       `json:"risk_factors"`
	Explanation       AIExplanation      `json:"explanation"`
	MarketContext     MarketContext      `json:"market_context"`
	CrossChainOptions []CrossChainOption `json:"cross_chain_options,omitempty"`
}

type GasPriceTiers struct {
	Standard string `json:"standard"`
	Fast     string `json:"fast"`
	Instant  string `json:"instant"`
}
