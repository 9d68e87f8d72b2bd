package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatBigInt converts a big.Int value to a human-readable string,
// considering the given number of decimals.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals uint8) (string, error) {
	if amount == nil {
		return "0", nil
	}
	if decimals == 0 {
		return amount.String(), nil
	}

	negative := amount.Sign() < 0
	abs := new(big.Int).Abs(amount)

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, divisor, new(big.Int))

	fracStr := frac.String()
	if len(fracStr) > int(decimals) {
		return "", fmt.Errorf("fractional part %s exceeds %d decimals", fracStr, decimals)
	}
	fracStr = strings.Repeat("0", int(decimals)-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")

	formatted := whole.String()
	if fracStr != "" {
		formatted += "." + fracStr
	}
	if negative && formatted != "0" {
		formatted = "-" + formatted
	}
	return formatted, nil
}

// BatchStrings splits items into consecutive batches of at most batchSize elements.
func BatchStrings(items []string, batchSize int) [][]string {
	if batchSize <= 0 {
		batchSize = len(items)
	}
	if len(items) == 0 {
		return [][]string{}
	}

	var batches [][]string
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[i:end])
	}
	return batches
}
