package id

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	clierr "github.com/swapsage/swapsage-cli/internal/errors"
)

var decimalPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// NormalizeAmount accepts either a base-unit integer string or a decimal
// human amount (exactly one of the two) and returns both representations.
func NormalizeAmount(baseUnits, decimal string, decimals int) (string, string, error) {
	if baseUnits != "" && decimal != "" {
		return "", "", clierr.New(clierr.CodeUsage, "use either --amount or --amount-decimal, not both")
	}
	if baseUnits == "" && decimal == "" {
		return "", "", clierr.New(clierr.CodeUsage, "amount is required")
	}
	if decimals < 0 {
		return "", "", clierr.New(clierr.CodeUsage, "decimals must be >= 0")
	}

	if baseUnits != "" {
		n, ok := new(big.Int).SetString(baseUnits, 10)
		if !ok || n.Sign() < 0 {
			return "", "", clierr.New(clierr.CodeUsage, "--amount must be a non-negative integer string")
		}
		return baseUnits, FormatDecimal(baseUnits, decimals), nil
	}

	if !decimalPattern.MatchString(decimal) {
		return "", "", clierr.New(clierr.CodeUsage, "--amount-decimal must be in decimal form like 1.23")
	}
	base, err := BaseUnits(decimal, decimals)
	if err != nil {
		return "", "", err
	}
	return base, normalizeDecimal(decimal), nil
}

// FormatDecimal renders a base-unit integer string as a human decimal
// amount with trailing zeros trimmed. Invalid input renders as "0".
func FormatDecimal(baseUnits string, decimals int) string {
	n, ok := new(big.Int).SetString(strings.TrimSpace(baseUnits), 10)
	if !ok {
		return "0"
	}
	if decimals == 0 {
		return n.String()
	}

	s := n.String()
	if len(s) <= decimals {
		pad := strings.Repeat("0", decimals-len(s)+1)
		s = pad + s
	}
	intPart := s[:len(s)-decimals]
	fracPart := strings.TrimRight(s[len(s)-decimals:], "0")
	if fracPart == "" {
		return intPart
	}
	return intPart + "." + fracPart
}

// BaseUnits converts a decimal human amount to a base-unit integer string.
func BaseUnits(decimal string, decimals int) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(decimal), ".", 2)
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if len(fracPart) > decimals {
		return "", clierr.New(clierr.CodeUsage, fmt.Sprintf("decimal precision exceeds token decimals (%d)", decimals))
	}

	fracPart += strings.Repeat("0", decimals-len(fracPart))
	combined := strings.TrimLeft(intPart+fracPart, "0")
	if combined == "" {
		combined = "0"
	}
	if _, ok := new(big.Int).SetString(combined, 10); !ok {
		return "", clierr.New(clierr.CodeUsage, "invalid decimal amount")
	}
	return combined, nil
}

func normalizeDecimal(decimal string) string {
	decimal = strings.TrimSpace(decimal)
	if !strings.Contains(decimal, ".") {
		trimmed := strings.TrimLeft(decimal, "0")
		if trimmed == "" {
			return "0"
		}
		return trimmed
	}
	decimal = strings.TrimLeft(decimal, "0")
	decimal = strings.TrimRight(decimal, "0")
	decimal = strings.TrimSuffix(decimal, ".")
	if decimal == "" || strings.HasPrefix(decimal, ".") {
		decimal = "0" + decimal
	}
	return decimal
}
