package utils

import (
	"math/big"
	"strings"
)

// GweiDecimals is the number of decimals between wei and gwei.
const GweiDecimals uint8 = 9

// FormatBigInt converts a base-unit amount to a decimal string with the given number of decimals.
// Trailing zeros are trimmed. Example: amount=1234500000000000000, decimals=18 => "1.2345".
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(new(big.Int).Abs(amount), divisor, new(big.Int))

	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}

	fracStr := strings.TrimRight(leftPad(frac.String(), int(decimals)), "0")
	if fracStr == "" {
		return sign + whole.String()
	}
	return sign + whole.String() + "." + fracStr
}

// FormatGwei renders a wei amount in gwei.
func FormatGwei(wei *big.Int) string {
	return FormatBigInt(wei, GweiDecimals)
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
