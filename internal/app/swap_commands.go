package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/swapsage/swapsage-cli/internal/advisor"
	"github.com/swapsage/swapsage-cli/internal/config"
	clierr "github.com/swapsage/swapsage-cli/internal/errors"
	"github.com/swapsage/swapsage-cli/internal/id"
	"github.com/swapsage/swapsage-cli/internal/model"
	"github.com/swapsage/swapsage-cli/internal/providers"
	"github.com/swapsage/swapsage-cli/internal/risk"
	"github.com/swapsage/swapsage-cli/internal/routes"
)

const (
	tokensTTL = 5 * time.Minute
	quoteTTL  = 15 * time.Second
)

func (s *runtimeState) newTokensCommand() *cobra.Command {
	var chainArg string
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List swappable tokens for a chain (1inch key required)",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := id.ParseChain(chainArg)
			if err != nil {
				return err
			}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{"chain": chain.ChainID})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, tokensTTL, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				start := time.Now()
				data, err := s.aggregator.Tokens(ctx, chain.ChainID)
				status := []model.ProviderStatus{{Name: s.aggregator.Info().Name, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
				return data, status, nil, false, err
			})
		},
	}
	cmd.Flags().StringVar(&chainArg, "chain", "", "Chain identifier")
	_ = cmd.MarkFlagRequired("chain")
	return cmd
}

// quoteData is the quote command payload: the raw quote plus the compact
// risk hint the web frontend consumes.
type quoteData struct {
	Quote providers.QuoteResponse `json:"quote"`
	Risk  model.QuoteRisk         `json:"risk"`
}

func (s *runtimeState) newQuoteCommand() *cobra.Command {
	var chainArg, fromArg, toArg string
	var amountBase, amountDecimal string
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Get a single swap quote with a basic risk hint",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, from, to, err := parsePair(chainArg, fromArg, toArg)
			if err != nil {
				return err
			}
			base, _, err := id.NormalizeAmount(amountBase, amountDecimal, tokenDecimals(from))
			if err != nil {
				return err
			}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{
				"chain":  chain.ChainID,
				"from":   from.Address,
				"to":     to.Address,
				"amount": base,
			})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, quoteTTL, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				start := time.Now()
				quote, err := s.aggregator.Quote(ctx, providers.QuoteRequest{
					ChainID:         chain.ChainID,
					Src:             from.Address,
					Dst:             to.Address,
					AmountBaseUnits: base,
				})
				status := []model.ProviderStatus{{Name: s.aggregator.Info().Name, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
				if err != nil {
					return nil, status, nil, false, err
				}
				impactBps := routes.EstimateImpact(quote.FromAmount, quote.ToAmount) * 100
				data := quoteData{
					Quote: quote,
					Risk:  model.QuoteRisk{PriceImpactBps: impactBps, Slippage: slippageHintFromBps(impactBps)},
				}
				return data, status, nil, false, nil
			})
		},
	}
	cmd.Flags().StringVar(&chainArg, "chain", "", "Chain identifier")
	cmd.Flags().StringVar(&fromArg, "from", "", "Input token (symbol or address)")
	cmd.Flags().StringVar(&toArg, "to", "", "Output token (symbol or address)")
	cmd.Flags().StringVar(&amountBase, "amount", "", "Amount in base units")
	cmd.Flags().StringVar(&amountDecimal, "amount-decimal", "", "Amount in decimal units")
	_ = cmd.MarkFlagRequired("chain")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func (s *runtimeState) newRoutesCommand() *cobra.Command {
	var chainArg, fromArg, toArg, walletArg, slippagesArg string
	var amountBase, amountDecimal string
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Fetch routes across the slippage tolerance set",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, from, to, err := parsePair(chainArg, fromArg, toArg)
			if err != nil {
				return err
			}
			if strings.TrimSpace(walletArg) == "" {
				return clierr.New(clierr.CodeUsage, "--wallet is required")
			}
			base, _, err := id.NormalizeAmount(amountBase, amountDecimal, tokenDecimals(from))
			if err != nil {
				return err
			}
			slippages, err := resolveSlippages(slippagesArg, s.settings.Slippages)
			if err != nil {
				return err
			}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{
				"chain":     chain.ChainID,
				"from":      from.Address,
				"to":        to.Address,
				"amount":    base,
				"wallet":    id.NormalizeAddress(walletArg),
				"slippages": slippages,
			})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, quoteTTL, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				result := s.routeAgg.GetRoutes(ctx, routes.Request{
					ChainID:         chain.ChainID,
					Src:             from.Address,
					Dst:             to.Address,
					AmountBaseUnits: base,
					FromAddress:     id.NormalizeAddress(walletArg),
					Slippages:       slippages,
				})
				return result.Routes, result.Providers, result.Warnings, result.Partial, nil
			})
		},
	}
	cmd.Flags().StringVar(&chainArg, "chain", "", "Chain identifier")
	cmd.Flags().StringVar(&fromArg, "from", "", "Input token (symbol or address)")
	cmd.Flags().StringVar(&toArg, "to", "", "Output token (symbol or address)")
	cmd.Flags().StringVar(&amountBase, "amount", "", "Amount in base units")
	cmd.Flags().StringVar(&amountDecimal, "amount-decimal", "", "Amount in decimal units")
	cmd.Flags().StringVar(&walletArg, "wallet", "", "Wallet address originating the swap")
	cmd.Flags().StringVar(&slippagesArg, "slippages", "", "Slippage tolerance set in percent (comma-separated)")
	_ = cmd.MarkFlagRequired("chain")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("wallet")
	return cmd
}

func (s *runtimeState) newAnalyzeCommand() *cobra.Command {
	var chainArg, fromArg, toArg, walletArg string
	var amountBase, amountDecimal string
	var experience, riskTolerance string
	var noAI bool
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Full swap analysis: routes, risk factors, and an explanation",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, from, to, err := parsePair(chainArg, fromArg, toArg)
			if err != nil {
				return err
			}
			if strings.TrimSpace(walletArg) == "" {
				return clierr.New(clierr.CodeUsage, "--wallet is required")
			}
			base, _, err := id.NormalizeAmount(amountBase, amountDecimal, tokenDecimals(from))
			if err != nil {
				return err
			}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{
				"chain":  chain.ChainID,
				"from":   from.Address,
				"to":     to.Address,
				"amount": base,
				"wallet": id.NormalizeAddress(walletArg),
				"no_ai":  noAI,
			})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, quoteTTL, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				return s.runAnalysis(ctx, analysisInput{
					chain:         chain,
					from:          from,
					to:            to,
					base:          base,
					wallet:        id.NormalizeAddress(walletArg),
					experience:    experience,
					riskTolerance: riskTolerance,
					noAI:          noAI,
				})
			})
		},
	}
	cmd.Flags().StringVar(&chainArg, "chain", "", "Chain identifier")
	cmd.Flags().StringVar(&fromArg, "from", "", "Input token (symbol or address)")
	cmd.Flags().StringVar(&toArg, "to", "", "Output token (symbol or address)")
	cmd.Flags().StringVar(&amountBase, "amount", "", "Amount in base units")
	cmd.Flags().StringVar(&amountDecimal, "amount-decimal", "", "Amount in decimal units")
	cmd.Flags().StringVar(&walletArg, "wallet", "", "Wallet address originating the swap")
	cmd.Flags().StringVar(&experience, "experience", "intermediate", "Explanation depth: beginner|intermediate|advanced")
	cmd.Flags().StringVar(&riskTolerance, "risk-tolerance", "moderate", "Risk tolerance embedded in the explanation prompt")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Skip the language model and use the deterministic explanation")
	_ = cmd.MarkFlagRequired("chain")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("wallet")
	return cmd
}

type analysisInput struct {
	chain         id.Chain
	from          id.Token
	to            id.Token
	base          string
	wallet        string
	experience    string
	riskTolerance string
	noAI          bool
}

func (s *runtimeState) runAnalysis(ctx context.Context, in analysisInput) (any, []model.ProviderStatus, []string, bool, error) {
	result := s.routeAgg.GetRoutes(ctx, routes.Request{
		ChainID:         in.chain.ChainID,
		Src:             in.from.Address,
		Dst:             in.to.Address,
		AmountBaseUnits: in.base,
		FromAddress:     in.wallet,
		Slippages:       s.settings.Slippages,
	})
	if len(result.Routes) == 0 {
		return nil, result.Providers, result.Warnings, result.Partial,
			clierr.New(clierr.CodeUnavailable, "no route available for this pair")
	}

	best := result.Routes[0]
	alternatives := result.Routes[1:]
	warnings := result.Warnings
	statuses := result.Providers

	mctx, err := s.marketData.Context(ctx, in.chain.ChainID)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("market context unavailable: %v", err))
		mctx = model.MarketContext{GasConditions: model.GasNormal, MarketTrend: "neutral", RecommendedAction: "swap_now"}
	}

	factors := risk.Score(best, mctx)

	profile := &model.UserProfile{
		Address:         in.wallet,
		ExperienceLevel: in.experience,
		RiskTolerance:   in.riskTolerance,
	}
	var explanation model.AIExplanation
	if in.noAI {
		explanation = advisor.Fallback(best)
	} else {
		explanation = s.composer.Explain(ctx, best, alternatives, profile, &mctx, factors)
	}

	analysis := model.SwapAnalysis{
		Route:         best,
		Alternatives:  alternatives,
		RiskFactors:   factors,
		Explanation:   explanation,
		MarketContext: mctx,
	}
	return analysis, statuses, warnings, result.Partial, nil
}

func (s *runtimeState) newCrossChainCommand() *cobra.Command {
	var fromChainArg, toChainArg, fromArg, toArg string
	var amountBase, amountDecimal string
	cmd := &cobra.Command{
		Use:   "crosschain",
		Short: "Rank cross-chain swap strategies (advisory only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromChain, err := id.ParseChain(fromChainArg)
			if err != nil {
				return err
			}
			toChain, err := id.ParseChain(toChainArg)
			if err != nil {
				return err
			}
			fromToken, err := id.ParseToken(fromArg, fromChain)
			if err != nil {
				return err
			}
			toToken, err := id.ParseToken(toArg, toChain)
			if err != nil {
				return err
			}
			base, _, err := id.NormalizeAmount(amountBase, amountDecimal, tokenDecimals(fromToken))
			if err != nil {
				return err
			}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{
				"from_chain": fromChain.ChainID,
				"to_chain":   toChain.ChainID,
				"from":       fromToken.Address,
				"to":         toToken.Address,
				"amount":     base,
			})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, quoteTTL, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				start := time.Now()
				options := s.crossAdvisor.Advise(ctx,
					toModelToken(fromToken, fromChain.ChainID),
					toModelToken(toToken, toChain.ChainID),
					base, nil)
				status := []model.ProviderStatus{{Name: s.aggregator.Info().Name, Status: "ok", LatencyMS: time.Since(start).Milliseconds()}}
				return options, status, nil, false, nil
			})
		},
	}
	cmd.Flags().StringVar(&fromChainArg, "from-chain", "", "Source chain identifier")
	cmd.Flags().StringVar(&toChainArg, "to-chain", "", "Destination chain identifier")
	cmd.Flags().StringVar(&fromArg, "from", "", "Input token (symbol or address)")
	cmd.Flags().StringVar(&toArg, "to", "", "Output token (symbol or address)")
	cmd.Flags().StringVar(&amountBase, "amount", "", "Amount in base units")
	cmd.Flags().StringVar(&amountDecimal, "amount-decimal", "", "Amount in decimal units")
	_ = cmd.MarkFlagRequired("from-chain")
	_ = cmd.MarkFlagRequired("to-chain")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func parsePair(chainArg, fromArg, toArg string) (id.Chain, id.Token, id.Token, error) {
	chain, err := id.ParseChain(chainArg)
	if err != nil {
		return id.Chain{}, id.Token{}, id.Token{}, err
	}
	from, err := id.ParseToken(fromArg, chain)
	if err != nil {
		return id.Chain{}, id.Token{}, id.Token{}, err
	}
	to, err := id.ParseToken(toArg, chain)
	if err != nil {
		return id.Chain{}, id.Token{}, id.Token{}, err
	}
	return chain, from, to, nil
}

func tokenDecimals(token id.Token) int {
	if token.Decimals > 0 {
		return token.Decimals
	}
	return 18
}

func toModelToken(token id.Token, chainID int64) model.Token {
	return model.Token{
		Address:  token.Address,
		Symbol:   token.Symbol,
		Decimals: token.Decimals,
		ChainID:  chainID,
	}
}

func resolveSlippages(arg string, configured []float64) ([]float64, error) {
	if strings.TrimSpace(arg) == "" {
		return configured, nil
	}
	return config.ParseSlippages(arg)
}

func slippageHintFromBps(impactBps float64) string {
	switch {
	case impactBps < 50:
		return "low"
	case impactBps < 200:
		return "medium"
	default:
		return "high"
	}
}
