package app

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	clierr "github.com/swapsage/swapsage-cli/internal/errors"
	"github.com/swapsage/swapsage-cli/internal/id"
	"github.com/swapsage/swapsage-cli/internal/model"
)

const (
	pricesTTL    = 30 * time.Second
	balancesTTL  = 30 * time.Second
	gasTTL       = 15 * time.Second
	protocolsTTL = 5 * time.Minute
)

func (s *runtimeState) newPricesCommand() *cobra.Command {
	var chainArg, tokensArg string
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "USD prices for a set of tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := id.ParseChain(chainArg)
			if err != nil {
				return err
			}
			addresses, err := resolveTokenList(tokensArg, chain)
			if err != nil {
				return err
			}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{"chain": chain.ChainID, "tokens": addresses})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, pricesTTL, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				start := time.Now()
				data, err := s.aggregator.Prices(ctx, chain.ChainID, addresses)
				status := []model.ProviderStatus{{Name: s.aggregator.Info().Name, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
				return data, status, nil, false, err
			})
		},
	}
	cmd.Flags().StringVar(&chainArg, "chain", "", "Chain identifier")
	cmd.Flags().StringVar(&tokensArg, "tokens", "", "Token symbols or addresses (comma-separated)")
	_ = cmd.MarkFlagRequired("chain")
	_ = cmd.MarkFlagRequired("tokens")
	return cmd
}

func (s *runtimeState) newBalancesCommand() *cobra.Command {
	var chainArg, walletArg string
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Token balances for a wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := id.ParseChain(chainArg)
			if err != nil {
				return err
			}
			if strings.TrimSpace(walletArg) == "" {
				return clierr.New(clierr.CodeUsage, "--wallet is required")
			}
			wallet := id.NormalizeAddress(walletArg)
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{"chain": chain.ChainID, "wallet": wallet})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, balancesTTL, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				start := time.Now()
				data, err := s.aggregator.Balances(ctx, chain.ChainID, wallet)
				status := []model.ProviderStatus{{Name: s.aggregator.Info().Name, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
				return data, status, nil, false, err
			})
		},
	}
	cmd.Flags().StringVar(&chainArg, "chain", "", "Chain identifier")
	cmd.Flags().StringVar(&walletArg, "wallet", "", "Wallet address")
	_ = cmd.MarkFlagRequired("chain")
	_ = cmd.MarkFlagRequired("wallet")
	return cmd
}

// gasData pairs the raw tiers with the derived market read so agents get
// both figures from one call.
type gasData struct {
	Tiers   model.GasPriceTiers `json:"tiers"`
	Context model.MarketContext `json:"context"`
}

func (s *runtimeState) newGasCommand() *cobra.Command {
	var chainArg string
	cmd := &cobra.Command{
		Use:   "gas",
		Short: "Gas price tiers and derived market conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := id.ParseChain(chainArg)
			if err != nil {
				return err
			}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{"chain": chain.ChainID})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, gasTTL, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				start := time.Now()
				tiers, err := s.aggregator.GasPrice(ctx, chain.ChainID)
				status := []model.ProviderStatus{{Name: s.aggregator.Info().Name, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
				if err != nil {
					return nil, status, nil, false, err
				}
				mctx, err := s.marketData.Context(ctx, chain.ChainID)
				if err != nil {
					return nil, status, nil, false, err
				}
				return gasData{Tiers: tiers, Context: mctx}, status, nil, false, nil
			})
		},
	}
	cmd.Flags().StringVar(&chainArg, "chain", "", "Chain identifier")
	_ = cmd.MarkFlagRequired("chain")
	return cmd
}

func (s *runtimeState) newProtocolsCommand() *cobra.Command {
	var chainArg string
	cmd := &cobra.Command{
		Use:   "protocols",
		Short: "Liquidity sources available for routing",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := id.ParseChain(chainArg)
			if err != nil {
				return err
			}
			key := cacheKey(trimRootPath(cmd.CommandPath()), map[string]any{"chain": chain.ChainID})
			return s.runCachedCommand(trimRootPath(cmd.CommandPath()), key, protocolsTTL, func(ctx context.Context) (any, []model.ProviderStatus, []string, bool, error) {
				start := time.Now()
				data, err := s.aggregator.Protocols(ctx, chain.ChainID)
				status := []model.ProviderStatus{{Name: s.aggregator.Info().Name, Status: statusFromErr(err), LatencyMS: time.Since(start).Milliseconds()}}
				return data, status, nil, false, err
			})
		},
	}
	cmd.Flags().StringVar(&chainArg, "chain", "", "Chain identifier")
	_ = cmd.MarkFlagRequired("chain")
	return cmd
}

func resolveTokenList(input string, chain id.Chain) ([]string, error) {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		token, err := id.ParseToken(trimmed, chain)
		if err != nil {
			return nil, err
		}
		out = append(out, token.Address)
	}
	if len(out) == 0 {
		return nil, clierr.New(clierr.CodeUsage, "at least one token is required")
	}
	return out, nil
}
