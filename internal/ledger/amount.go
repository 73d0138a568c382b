package ledger

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/govalues/money"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "USD"

// ZeroAmount returns a zero balance in curr.
func ZeroAmount(curr string) (money.Amount, error) {
	return money.NewAmountFromMinorUnits(curr, 0)
}

// AmountFromFloat converts a JSON number into an Amount in curr.
// NaN and infinities are rejected.
func AmountFromFloat(curr string, f float64) (money.Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return money.Amount{}, strconv.ErrRange
	}
	return money.ParseAmount(curr, strconv.FormatFloat(f, 'f', -1, 64))
}

// AmountToFloat renders an Amount as a JSON number.
func AmountToFloat(a money.Amount) float64 {
	f, _ := strconv.ParseFloat(a.Decimal().String(), 64)
	return f
}

// AmountFromNumber converts a decoded JSON number without a float round trip.
// Exponent forms the decimal parser rejects fall back to AmountFromFloat.
func AmountFromNumber(curr string, n json.Number) (money.Amount, error) {
	if a, err := money.ParseAmount(curr, n.String()); err == nil {
		return a, nil
	}
	f, err := n.Float64()
	if err != nil {
		return money.Amount{}, err
	}
	return AmountFromFloat(curr, f)
}
