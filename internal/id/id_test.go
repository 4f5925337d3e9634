package id

import "testing"

func TestParseChainAcceptsSlugAndNumericID(t *testing.T) {
	bySlug, err := ParseChain("ethereum")
	if err != nil {
		t.Fatalf("parse slug: %v", err)
	}
	byID, err := ParseChain("1")
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	if bySlug.ChainID != 1 || byID.ChainID != 1 {
		t.Fatalf("expected chain id 1, got %d and %d", bySlug.ChainID, byID.ChainID)
	}
}

func TestParseChainUnknownIDStillResolves(t *testing.T) {
	chain, err := ParseChain("167000")
	if err != nil {
		t.Fatalf("parse unknown id: %v", err)
	}
	if chain.ChainID != 167000 {
		t.Fatalf("unexpected chain: %+v", chain)
	}
}

func TestParseChainRejectsGarbage(t *testing.T) {
	if _, err := ParseChain("not-a-chain"); err == nil {
		t.Fatal("expected error for unknown slug")
	}
}

func TestParseTokenResolvesSymbol(t *testing.T) {
	chain, _ := ParseChain("ethereum")
	token, err := ParseToken("usdc", chain)
	if err != nil {
		t.Fatalf("parse symbol: %v", err)
	}
	if token.Decimals != 6 || token.Address == "" {
		t.Fatalf("unexpected token: %+v", token)
	}
}

func TestParseTokenAcceptsUnknownAddress(t *testing.T) {
	chain, _ := ParseChain("ethereum")
	token, err := ParseToken("0x1F9840a85d5aF5bf1D1762F925BDADdC4201F984", chain)
	if err != nil {
		t.Fatalf("parse address: %v", err)
	}
	if token.Address != "0x1f9840a85d5af5bf1d1762f925bdaddc4201f984" {
		t.Fatalf("address not normalized: %s", token.Address)
	}
}

func TestParseTokenUnknownSymbolFails(t *testing.T) {
	chain, _ := ParseChain("ethereum")
	if _, err := ParseToken("NOPE", chain); err == nil {
		t.Fatal("expected error for unknown symbol")
	}
}

func TestAddressEqualIgnoresCase(t *testing.T) {
	if !AddressEqual("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2") {
		t.Fatal("expected case-insensitive equality")
	}
}
