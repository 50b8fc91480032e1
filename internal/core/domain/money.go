package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxMoneyScale matches the four decimal places of the amount columns.
const MaxMoneyScale = 4

// MoneyScale is the number of decimal places of the smallest currency unit.
// It is set once at start-up through SetMoneyScale.
var MoneyScale int32 = 2

// SetMoneyScale sets the currency scale used by every rounding helper.
func SetMoneyScale(scale int) error {
	if scale < 0 || scale > MaxMoneyScale {
		return fmt.Errorf("currency scale %d outside 0..%d", scale, MaxMoneyScale)
	}
	MoneyScale = int32(scale)
	return nil
}

// SmallestUnit returns 10^-MoneyScale.
func SmallestUnit() decimal.Decimal {
	return decimal.New(1, -MoneyScale)
}

// RoundMoney rounds half away from zero to the currency scale.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// TruncateMoney drops everything below the smallest currency unit.
func TruncateMoney(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(MoneyScale)
}

// Percent applies a percentage (e.g. 2.5 for 2.5%) and rounds to the currency scale.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(pct).Div(decimal.NewFromInt(100)))
}
