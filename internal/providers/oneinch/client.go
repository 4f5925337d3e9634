// Package oneinch implements the swap-aggregation capability against the
// 1inch developer API (swap v6.0, price v1.1, balance v1.2, gas-price v1.4,
// fusion-plus v1.0).
package oneinch

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	clierr "github.com/swapsage/swapsage-cli/internal/errors"
	"github.com/swapsage/swapsage-cli/internal/httpx"
	"github.com/swapsage/swapsage-cli/internal/id"
	"github.com/swapsage/swapsage-cli/internal/model"
	"github.com/swapsage/swapsage-cli/internal/providers"
)

const defaultBase = "https://api.1inch.dev"

const keyEnvVar = "SWAPSAGE_1INCH_API_KEY"

type Client struct {
	http    *httpx.Client
	baseURL string
	apiKey  string
}

func New(httpClient *httpx.Client, apiKey string) *Client {
	return &Client{http: httpClient, baseURL: defaultBase, apiKey: apiKey}
}

func (c *Client) Info() model.ProviderInfo {
	return model.ProviderInfo{
		Name:          "1inch",
		Type:          "aggregator",
		RequiresKey:   true,
		KeyEnvVarName: keyEnvVar,
		Capabilities: []string{
			"swap.tokens",
			"swap.quote",
			"swap.swap",
			"swap.protocols",
			"price.current",
			"balance.wallet",
			"gas.price",
			"fusion-plus.quote",
		},
	}
}

func (c *Client) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.apiKey}
}

func (c *Client) requireKey() error {
	if c.apiKey == "" {
		return clierr.New(clierr.CodeAuth, fmt.Sprintf("missing required API key for 1inch (%s)", keyEnvVar))
	}
	return nil
}

type rawToken struct {
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Decimals int     `json:"decimals"`
	LogoURI  string  `json:"logoURI"`
	ChainID  int64   `json:"chainId"`
	Price    float64 `json:"price"`
}

func (t rawToken) toModel(chainID int64) model.Token {
	cid := t.ChainID
	if cid == 0 {
		cid = chainID
	}
	return model.Token{
		Address:  id.NormalizeAddress(t.Address),
		Symbol:   t.Symbol,
		Name:     t.Name,
		Decimals: t.Decimals,
		LogoURI:  t.LogoURI,
		ChainID:  cid,
		Price:    t.Price,
	}
}

type tokensResponse struct {
	Tokens map[string]rawToken `json:"tokens"`
}

func (c *Client) Tokens(ctx context.Context, chainID int64) (map[string]model.Token, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/swap/v6.0/%d/tokens", c.baseURL, chainID)
	var resp tokensResponse
	if err := c.http.GetJSON(ctx, endpoint, c.headers(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Tokens) == 0 {
		return nil, clierr.New(clierr.CodeValidation, "1inch token list is empty")
	}
	out := make(map[string]model.Token, len(resp.Tokens))
	for addr, token := range resp.Tokens {
		out[id.NormalizeAddress(addr)] = token.toModel(chainID)
	}
	return out, nil
}

type rawProtocolHop struct {
	Name             string  `json:"name"`
	Part             float64 `json:"part"`
	FromTokenAddress string  `json:"fromTokenAddress"`
	ToTokenAddress   string  `json:"toTokenAddress"`
}

// Protocols arrive as a nested [route][hop][split] array; flattened here
// because the normalizer works on the split list only.
type rawProtocols [][][]rawProtocolHop

func (p rawProtocols) flatten() []model.Protocol {
	out := []model.Protocol{}
	for _, route := range p {
		for _, hop := range route {
			for _, split := range hop {
				out = append(out, model.Protocol{
					Name:             split.Name,
					Part:             split.Part,
					FromTokenAddress: id.NormalizeAddress(split.FromTokenAddress),
					ToTokenAddress:   id.NormalizeAddress(split.ToTokenAddress),
				})
			}
		}
	}
	return out
}

type quoteResponse struct {
	FromToken rawToken     `json:"fromToken"`
	ToToken   rawToken     `json:"toToken"`
	DstAmount string       `json:"dstAmount"`
	Protocols rawProtocols `json:"protocols"`
	Gas       float64      `json:"gas"`
}

func (c *Client) Quote(ctx context.Context, req providers.QuoteRequest) (providers.QuoteResponse, error) {
	if err := c.requireKey(); err != nil {
		return providers.QuoteResponse{}, err
	}
	vals := url.Values{}
	vals.Set("src", req.Src)
	vals.Set("dst", req.Dst)
	vals.Set("amount", req.AmountBaseUnits)
	vals.Set("includeTokensInfo", "true")
	vals.Set("includeProtocols", "true")
	vals.Set("includeGas", "true")

	endpoint := fmt.Sprintf("%s/swap/v6.0/%d/quote?%s", c.baseURL, req.ChainID, vals.Encode())
	var resp quoteResponse
	if err := c.http.GetJSON(ctx, endpoint, c.headers(), &resp); err != nil {
		return providers.QuoteResponse{}, err
	}
	if resp.DstAmount == "" {
		return providers.QuoteResponse{}, clierr.New(clierr.CodeValidation, "1inch quote missing destination amount")
	}
	return providers.QuoteResponse{
		FromToken:    resp.FromToken.toModel(req.ChainID),
		ToToken:      resp.ToToken.toModel(req.ChainID),
		FromAmount:   req.AmountBaseUnits,
		ToAmount:     resp.DstAmount,
		Protocols:    resp.Protocols.flatten(),
		EstimatedGas: strconv.FormatInt(int64(resp.Gas), 10),
	}, nil
}

type rawTx struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Data     string `json:"data"`
	Value    string `json:"value"`
	GasPrice string `json:"gasPrice"`
	Gas      any    `json:"gas"`
}

type swapResponse struct {
	FromToken rawToken     `json:"fromToken"`
	ToToken   rawToken     `json:"toToken"`
	DstAmount string       `json:"dstAmount"`
	Protocols rawProtocols `json:"protocols"`
	Tx        rawTx        `json:"tx"`
}

func (c *Client) Swap(ctx context.Context, req providers.SwapRequest) (providers.SwapResponse, error) {
	if err := c.requireKey(); err != nil {
		return providers.SwapResponse{}, err
	}
	vals := url.Values{}
	vals.Set("src", req.Src)
	vals.Set("dst", req.Dst)
	vals.Set("amount", req.AmountBaseUnits)
	vals.Set("from", req.FromAddress)
	vals.Set("slippage", strconv.FormatFloat(req.SlippagePct, 'f', -1, 64))
	vals.Set("includeTokensInfo", "true")
	vals.Set("includeProtocols", "true")
	vals.Set("disableEstimate", "false")
	vals.Set("allowPartialFill", "true")

	endpoint := fmt.Sprintf("%s/swap/v6.0/%d/swap?%s", c.baseURL, req.ChainID, vals.Encode())
	var resp swapResponse
	if err := c.http.GetJSON(ctx, endpoint, c.headers(), &resp); err != nil {
		return providers.SwapResponse{}, err
	}
	if resp.DstAmount == "" || resp.Tx.To == "" {
		return providers.SwapResponse{}, clierr.New(clierr.CodeValidation, "1inch swap response missing amount or transaction")
	}
	gas := formatGas(resp.Tx.Gas)
	return providers.SwapResponse{
		FromToken:  resp.FromToken.toModel(req.ChainID),
		ToToken:    resp.ToToken.toModel(req.ChainID),
		FromAmount: req.AmountBaseUnits,
		ToAmount:   resp.DstAmount,
		Protocols:  resp.Protocols.flatten(),
		Gas:        gas,
		GasPrice:   resp.Tx.GasPrice,
		Tx: model.SwapTransaction{
			From:     id.NormalizeAddress(resp.Tx.From),
			To:       id.NormalizeAddress(resp.Tx.To),
			Data:     resp.Tx.Data,
			Value:    resp.Tx.Value,
			GasPrice: resp.Tx.GasPrice,
			Gas:      gas,
		},
	}, nil
}

// Gas arrives as a JSON number or a string depending on endpoint version.
func formatGas(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	default:
		return "0"
	}
}

func (c *Client) Prices(ctx context.Context, chainID int64, addresses []string) (map[string]float64, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, clierr.New(clierr.CodeUsage, "at least one token address is required")
	}
	normalized := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		normalized = append(normalized, id.NormalizeAddress(addr))
	}
	endpoint := fmt.Sprintf("%s/price/v1.1/%d/%s?currency=USD", c.baseURL, chainID, strings.Join(normalized, ","))
	raw := map[string]string{}
	if err := c.http.GetJSON(ctx, endpoint, c.headers(), &raw); err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(raw))
	for addr, priceStr := range raw {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return nil, clierr.Wrap(clierr.CodeValidation, fmt.Sprintf("parse price for %s", addr), err)
		}
		out[id.NormalizeAddress(addr)] = price
	}
	return out, nil
}

func (c *Client) Balances(ctx context.Context, chainID int64, wallet string) (map[string]string, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/balance/v1.2/%d/balances/%s", c.baseURL, chainID, id.NormalizeAddress(wallet))
	raw := map[string]string{}
	if err := c.http.GetJSON(ctx, endpoint, c.headers(), &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for addr, balance := range raw {
		out[id.NormalizeAddress(addr)] = balance
	}
	return out, nil
}

type gasPriceResponse struct {
	Standard string `json:"standard"`
	Fast     string `json:"fast"`
	Instant  string `json:"instant"`
}

func (c *Client) GasPrice(ctx context.Context, chainID int64) (model.GasPriceTiers, error) {
	if err := c.requireKey(); err != nil {
		return model.GasPriceTiers{}, err
	}
	endpoint := fmt.Sprintf("%s/gas-price/v1.4/%d", c.baseURL, chainID)
	var resp gasPriceResponse
	if err := c.http.GetJSON(ctx, endpoint, c.headers(), &resp); err != nil {
		return model.GasPriceTiers{}, err
	}
	if resp.Fast == "" && resp.Standard == "" {
		return model.GasPriceTiers{}, clierr.New(clierr.CodeValidation, "1inch gas price response is empty")
	}
	return model.GasPriceTiers{Standard: resp.Standard, Fast: resp.Fast, Instant: resp.Instant}, nil
}

type protocolsResponse struct {
	Protocols []struct {
		ID string `json:"id"`
	} `json:"protocols"`
}

func (c *Client) Protocols(ctx context.Context, chainID int64) ([]string, error) {
	if err := c.requireKey(); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/swap/v6.0/%d/liquidity-sources", c.baseURL, chainID)
	var resp protocolsResponse
	if err := c.http.GetJSON(ctx, endpoint, c.headers(), &resp); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(resp.Protocols))
	for _, p := range resp.Protocols {
		out = append(out, p.ID)
	}
	return out, nil
}

type fusionPlusQuoteResponse struct {
	DstTokenAmount    string `json:"dstTokenAmount"`
	RecommendedPreset string `json:"recommendedPreset"`
	Presets           map[string]struct {
		AuctionDuration int64 `json:"auctionDuration"`
	} `json:"presets"`
}

func (c *Client) FusionPlusQuote(ctx context.Context, req providers.FusionPlusQuoteRequest) (providers.FusionPlusQuote, error) {
	if err := c.requireKey(); err != nil {
		return providers.FusionPlusQuote{}, err
	}
	vals := url.Values{}
	vals.Set("srcChain", strconv.FormatInt(req.FromChainID, 10))
	vals.Set("dstChain", strconv.FormatInt(req.ToChainID, 10))
	vals.Set("srcTokenAddress", req.Src)
	vals.Set("dstTokenAddress", req.Dst)
	vals.Set("amount", req.Amount)

	endpoint := fmt.Sprintf("%s/fusion-plus/quoter/v1.0/quote/receive?%s", c.baseURL, vals.Encode())
	var resp fusionPlusQuoteResponse
	if err := c.http.GetJSON(ctx, endpoint, c.headers(), &resp); err != nil {
		return providers.FusionPlusQuote{}, err
	}
	if resp.DstTokenAmount == "" {
		return providers.FusionPlusQuote{}, clierr.New(clierr.CodeValidation, "fusion+ quote missing destination amount")
	}
	duration := int64(0)
	if preset, ok := resp.Presets[resp.RecommendedPreset]; ok {
		duration = preset.AuctionDuration
	}
	return providers.FusionPlusQuote{
		DstAmount:        resp.DstTokenAmount,
		EstimatedTimeSec: duration,
	}, nil
}
