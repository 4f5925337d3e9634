package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	clierr "github.com/swapsage/swapsage-cli/internal/errors"
)

// NativeTokenAddress is the 1inch sentinel for a chain's gas token.
const NativeTokenAddress = "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"

type Chain struct {
	Name    string
	Slug    string
	ChainID int64
}

type Token struct {
	Symbol   string
	Address  string
	Decimals int
}

var chainBySlug = map[string]Chain{
	"ethereum":  {Name: "Ethereum", Slug: "ethereum", ChainID: 1},
	"mainnet":   {Name: "Ethereum", Slug: "ethereum", ChainID: 1},
	"optimism":  {Name: "Optimism", Slug: "optimism", ChainID: 10},
	"bsc":       {Name: "BSC", Slug: "bsc", ChainID: 56},
	"polygon":   {Name: "Polygon", Slug: "polygon", ChainID: 137},
	"base":      {Name: "Base", Slug: "base", ChainID: 8453},
	"arbitrum":  {Name: "Arbitrum", Slug: "arbitrum", ChainID: 42161},
	"avalanche": {Name: "Avalanche", Slug: "avalanche", ChainID: 43114},
}

var chainByID = func() map[int64]Chain {
	out := make(map[int64]Chain, len(chainBySlug))
	for _, chain := range chainBySlug {
		out[chain.ChainID] = chain
	}
	return out
}()

// Small bootstrap registry for deterministic symbol resolution on Tier-1
// chains. Anything else resolves through the aggregator's token list.
var tokenRegistry = map[int64][]Token{
	1: {
		{Symbol: "ETH", Address: NativeTokenAddress, Decimals: 18},
		{Symbol: "USDC", Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Decimals: 6},
		{Symbol: "USDT", Address: "0xdac17f958d2ee523a2206206994597c13d831ec7", Decimals: 6},
		{Symbol: "DAI", Address: "0x6b175474e89094c44da98b954eedeac495271d0f", Decimals: 18},
		{Symbol: "WETH", Address: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", Decimals: 18},
	},
	10: {
		{Symbol: "ETH", Address: NativeTokenAddress, Decimals: 18},
		{Symbol: "USDC", Address: "0x7f5c764cbc14f9669b88837ca1490cca17c31607", Decimals: 6},
		{Symbol: "DAI", Address: "0xda10009cbd5d07dd0cecc66161fc93d7c9000da1", Decimals: 18},
		{Symbol: "WETH", Address: "0x4200000000000000000000000000000000000006", Decimals: 18},
	},
	56: {
		{Symbol: "BNB", Address: NativeTokenAddress, Decimals: 18},
		{Symbol: "USDC", Address: "0x8ac76a51cc950d9822d68b83fe1ad97b32cd580d", Decimals: 18},
		{Symbol: "USDT", Address: "0x55d398326f99059ff775485246999027b3197955", Decimals: 18},
	},
	137: {
		{Symbol: "POL", Address: NativeTokenAddress, Decimals: 18},
		{Symbol: "USDC", Address: "0x3c499c542cef5e3811e1192ce70d8cc03d5c3359", Decimals: 6},
		{Symbol: "USDT", Address: "0xc2132d05d31c914a87c6611c10748aeb04b58e8f", Decimals: 6},
		{Symbol: "WETH", Address: "0x7ceb23fd6bc0add59e62ac25578270cff1b9f619", Decimals: 18},
	},
	8453: {
		{Symbol: "ETH", Address: NativeTokenAddress, Decimals: 18},
		{Symbol: "USDC", Address: "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913", Decimals: 6},
		{Symbol: "WETH", Address: "0x4200000000000000000000000000000000000006", Decimals: 18},
	},
	42161: {
		{Symbol: "ETH", Address: NativeTokenAddress, Decimals: 18},
		{Symbol: "USDC", Address: "0xaf88d065e77c8cc2239327c5edb3a432268e5831", Decimals: 6},
		{Symbol: "USDT", Address: "0xfd086bc7cd5c481dcc9c85ebe478a1c0b69fcbb9", Decimals: 6},
		{Symbol: "WETH", Address: "0x82af49447d8a07e3bd95bd0d56f35241523fbab1", Decimals: 18},
	},
	43114: {
		{Symbol: "AVAX", Address: NativeTokenAddress, Decimals: 18},
		{Symbol: "USDC", Address: "0xb97ef9ef8734c71904d8002f8b6bc66dd9c48a6e", Decimals: 6},
		{Symbol: "USDT", Address: "0x9702230a8ea53601f5cd2dc00fdbc13d4df4a8c7", Decimals: 6},
	},
}

// ParseChain accepts a numeric chain ID or a known slug.
func ParseChain(input string) (Chain, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Chain{}, clierr.New(clierr.CodeUsage, "chain is required")
	}
	norm := strings.ToLower(raw)

	if chain, ok := chainBySlug[norm]; ok {
		return chain, nil
	}
	if chainID, err := strconv.ParseInt(norm, 10, 64); err == nil && chainID > 0 {
		if chain, ok := chainByID[chainID]; ok {
			return chain, nil
		}
		return Chain{Name: fmt.Sprintf("EVM-%d", chainID), Slug: fmt.Sprintf("evm-%d", chainID), ChainID: chainID}, nil
	}
	return Chain{}, clierr.New(clierr.CodeUsage, fmt.Sprintf("unsupported chain input: %s", input))
}

// ParseToken resolves a symbol or hex address to a registry token. Address
// inputs are accepted even when unknown to the registry; the aggregator's
// token list fills in metadata later.
func ParseToken(input string, chain Chain) (Token, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Token{}, clierr.New(clierr.CodeUsage, "token is required")
	}

	if common.IsHexAddress(raw) {
		addr := NormalizeAddress(raw)
		if token, ok := LookupByAddress(chain.ChainID, addr); ok {
			return token, nil
		}
		return Token{Address: addr}, nil
	}

	matches := findTokensBySymbol(chain.ChainID, raw)
	if len(matches) == 0 {
		return Token{}, clierr.New(clierr.CodeUsage, fmt.Sprintf("symbol %s not found in registry for chain %d, use the token address", input, chain.ChainID))
	}
	return matches[0], nil
}

// NormalizeAddress lowercases a hex address so registry and aggregator
// addresses compare equal regardless of checksum casing.
func NormalizeAddress(address string) string {
	if !common.IsHexAddress(address) {
		return strings.ToLower(strings.TrimSpace(address))
	}
	return strings.ToLower(common.HexToAddress(address).Hex())
}

func AddressEqual(a, b string) bool {
	return NormalizeAddress(a) == NormalizeAddress(b)
}

func LookupByAddress(chainID int64, address string) (Token, bool) {
	for _, t := range tokenRegistry[chainID] {
		if AddressEqual(t.Address, address) {
			return t, true
		}
	}
	return Token{}, false
}

func findTokensBySymbol(chainID int64, symbol string) []Token {
	matches := []Token{}
	for _, t := range tokenRegistry[chainID] {
		if strings.EqualFold(t.Symbol, symbol) {
			matches = append(matches, t)
		}
	}
	return matches
}

func KnownToken(chainID int64, symbol string) (Token, bool) {
	matches := findTokensBySymbol(chainID, symbol)
	if len(matches) != 1 {
		return Token{}, false
	}
	return matches[0], true
}
