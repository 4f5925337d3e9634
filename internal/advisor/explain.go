// Package advisor produces natural-language explanations and cross-chain
// guidance for scored routes. Every entry point returns a usable answer;
// model failures degrade to deterministic templates, never to errors.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/swapsage/swapsage-cli/internal/model"
	"github.com/swapsage/swapsage-cli/internal/providers"
)

// fallbackConfidence marks template output as visibly less trustworthy than
// a model-generated explanation.
const fallbackConfidence = 30

const (
	defaultExperience    = "intermediate"
	defaultRiskTolerance = "moderate"
)

var systemPrompts = map[string]string{
	"beginner": "You are a patient DeFi guide. Explain the swap in plain language with no jargon. " +
		"Define any technical term you cannot avoid. Respond with a single JSON object with keys: " +
		"summary, routeExplanation, riskAnalysis, recommendations, gasExplanation, timeEstimate, confidence.",
	"intermediate": "You are a DeFi swap analyst. Explain the swap clearly, assuming familiarity with " +
		"slippage and gas but not protocol internals. Respond with a single JSON object with keys: " +
		"summary, routeExplanation, riskAnalysis, recommendations, gasExplanation, timeEstimate, confidence.",
	"advanced": "You are a DeFi execution specialist. Technical detail is welcome: venue split, MEV " +
		"exposure, gas strategy. Respond with a single JSON object with keys: summary, routeExplanation, " +
		"riskAnalysis, recommendations, gasExplanation, timeEstimate, confidence.",
}

type Composer struct {
	llm    providers.LanguageModel
	logger *logrus.Logger
}

func NewComposer(llm providers.LanguageModel, logger *logrus.Logger) *Composer {
	return &Composer{llm: llm, logger: logger}
}

// Explain asks the language model for a structured explanation of the route
// and validates the response shape. Any failure yields the deterministic
// fallback built from the route alone.
func (c *Composer) Explain(ctx context.Context, route model.Route, alternatives []model.Route, profile *model.UserProfile, mctx *model.MarketContext, factors []model.RiskFactor) model.AIExplanation {
	if c.llm == nil {
		return Fallback(route)
	}
	system := systemPrompt(profile)
	user := buildPrompt(route, alternatives, profile, mctx, factors)

	raw, err := c.llm.Complete(ctx, system, user)
	if err != nil {
		c.logger.WithError(err).Warn("explanation model call failed, using fallback")
		return Fallback(route)
	}
	var explanation model.AIExplanation
	if err := json.Unmarshal([]byte(raw), &explanation); err != nil {
		c.logger.WithError(err).Warn("explanation response unparseable, using fallback")
		return Fallback(route)
	}
	if err := validateExplanation(explanation); err != nil {
		c.logger.WithError(err).Warn("explanation response failed validation, using fallback")
		return Fallback(route)
	}
	return explanation
}

func systemPrompt(profile *model.UserProfile) string {
	level := defaultExperience
	if profile != nil && profile.ExperienceLevel != "" {
		if _, ok := systemPrompts[profile.ExperienceLevel]; ok {
			level = profile.ExperienceLevel
		}
	}
	return systemPrompts[level]
}

func buildPrompt(route model.Route, alternatives []model.Route, profile *model.UserProfile, mctx *model.MarketContext, factors []model.RiskFactor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this token swap:\n")
	fmt.Fprintf(&b, "- Swap %s %s for %s %s\n", route.FromAmount, route.FromToken.Symbol, route.ToAmount, route.ToToken.Symbol)
	fmt.Fprintf(&b, "- Slippage tolerance: %.4g%%, estimated price impact: %.2f%%\n", route.Slippage, route.PriceImpact)
	fmt.Fprintf(&b, "- Venues: %s\n", protocolNames(route.Protocols))
	fmt.Fprintf(&b, "- Estimated gas: %s at %s wei\n", route.Gas, route.GasPrice)

	if len(alternatives) > 0 {
		b.WriteString("Alternative routes at other tolerances:\n")
		for _, alt := range alternatives {
			fmt.Fprintf(&b, "- %.4g%% slippage yields %s %s\n", alt.Slippage, alt.ToAmount, alt.ToToken.Symbol)
		}
	}

	tolerance := defaultRiskTolerance
	if profile != nil && profile.RiskTolerance != "" {
		tolerance = profile.RiskTolerance
	}
	fmt.Fprintf(&b, "User risk tolerance: %s\n", tolerance)

	if mctx != nil {
		fmt.Fprintf(&b, "Market conditions: gas %s, trend %s, recommended action %s\n",
			mctx.GasConditions, mctx.MarketTrend, mctx.RecommendedAction)
	}
	if len(factors) > 0 {
		encoded, err := json.Marshal(factors)
		if err == nil {
			fmt.Fprintf(&b, "Identified risk factors: %s\n", encoded)
		}
	}
	return b.String()
}

func protocolNames(protocols []model.Protocol) string {
	if len(protocols) == 0 {
		return "unknown"
	}
	names := make([]string, 0, len(protocols))
	for _, p := range protocols {
		names = append(names, fmt.Sprintf("%s (%.4g%%)", p.Name, p.Part))
	}
	return strings.Join(names, ", ")
}

func validateExplanation(e model.AIExplanation) error {
	for field, value := range map[string]string{
		"summary":          e.Summary,
		"routeExplanation": e.RouteExplanation,
		"gasExplanation":   e.GasExplanation,
		"timeEstimate":     e.TimeEstimate,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("missing required field %s", field)
		}
	}
	if e.Confidence < 0 || e.Confidence > 100 {
		return fmt.Errorf("confidence %v out of range", e.Confidence)
	}
	for i, factor := range e.RiskAnalysis {
		if !knownRiskType(factor.Type) {
			return fmt.Errorf("risk factor %d has unknown type %q", i, factor.Type)
		}
		if !knownRiskLevel(factor.Level) {
			return fmt.Errorf("risk factor %d has unknown level %q", i, factor.Level)
		}
		if strings.TrimSpace(factor.Title) == "" || strings.TrimSpace(factor.Description) == "" {
			return fmt.Errorf("risk factor %d missing title or description", i)
		}
	}
	return nil
}

func knownRiskType(t model.RiskType) bool {
	switch t {
	case model.RiskSlippage, model.RiskLiquidity, model.RiskGas, model.RiskMarket, model.RiskSmartContract:
		return true
	}
	return false
}

func knownRiskLevel(l model.RiskLevel) bool {
	switch l {
	case model.RiskLow, model.RiskMedium, model.RiskHigh:
		return true
	}
	return false
}

// Fallback builds a deterministic explanation from the route alone. Same
// input, same output; no external calls.
func Fallback(route model.Route) model.AIExplanation {
	venueCount := len(route.Protocols)
	routeText := fmt.Sprintf("The swap routes through %d venue(s): %s.", venueCount, protocolNames(route.Protocols))
	recommendations := []string{
		"Review the expected output amount before confirming.",
		fmt.Sprintf("Your slippage tolerance of %.4g%% bounds the worst acceptable rate.", route.Slippage),
	}
	if route.PriceImpact > 1 {
		recommendations = append(recommendations, "Consider splitting the trade to reduce price impact.")
	}
	return model.AIExplanation{
		Summary: fmt.Sprintf("Swapping %s for %s via an aggregated route at %.4g%% slippage tolerance.",
			route.FromToken.Symbol, route.ToToken.Symbol, route.Slippage),
		RouteExplanation: routeText,
		RiskAnalysis:     []model.RiskFactor{},
		Recommendations:  recommendations,
		GasExplanation:   fmt.Sprintf("Estimated gas of %s units at the current gas price.", route.Gas),
		TimeEstimate:     "Typically confirms within a few minutes on-chain.",
		Confidence:       fallbackConfidence,
	}
}
