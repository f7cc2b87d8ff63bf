package fixedpoint

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// On-chain amounts are scaled integers with 6 implied fractional digits
// (USDC convention).
const Decimals = 6

// FromRaw converts a ledger-native scaled integer into its exact decimal
// value. No rounding occurs: 1 → 0.000001.
func FromRaw(raw *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(raw, -Decimals)
}

// FromRawHex parses a 0x-prefixed (or bare) hex quantity, as found in log
// data words, and converts it like FromRaw.
func FromRawHex(h string) (decimal.Decimal, error) {
	s := strings.TrimPrefix(strings.TrimSpace(h), "0x")
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty hex quantity")
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("invalid hex quantity %q", h)
	}
	return FromRaw(n), nil
}

// ToRaw is the inverse of FromRaw. It errors when d carries more than 6
// fractional digits, since that value has no scaled-integer representation.
func ToRaw(d decimal.Decimal) (*big.Int, error) {
	shifted := d.Shift(Decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("%s has more than %d fractional digits", d, Decimals)
	}
	return shifted.BigInt(), nil
}
