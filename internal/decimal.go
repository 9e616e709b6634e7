package internal

import (
	"github.com/cockroachdb/apd/v3"
)

type Decimal struct {
	value apd.Decimal
}

func NewDecimalFromInt(i int) Decimal {
	var d apd.Decimal
	d.SetInt64(int64(i))
	return Decimal{value: d}
}

func (d Decimal) String() string {
	return d.value.String()
}

func (d Decimal) IsZero() bool {
	return d.value.IsZero()
}

// Div returns the quotient of d divided by other.
// Division by zero yields zero; callers guard the denominator.
func (d Decimal) Div(other Decimal) Decimal {
	if other.IsZero() {
		return Decimal{}
	}
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Quo(&result, &d.value, &other.value)
	return Decimal{value: result}
}

// Round returns d rounded to places decimal digits, halves away from zero.
func (d Decimal) Round(places int32) Decimal {
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Rounding = apd.RoundHalfUp
	ctx.Quantize(&result, &d.value, -places)
	return Decimal{value: result}
}

// Float64 converts d to the nearest float64.
func (d Decimal) Float64() float64 {
	f, err := d.value.Float64()
	if err != nil {
		return 0
	}
	return f
}

// ratio returns numerator/denominator rounded to places, or zero when the
// denominator is zero.
func ratio(numerator, denominator int, places int32) Decimal {
	if denominator == 0 {
		return NewDecimalFromInt(0).Round(places)
	}
	return NewDecimalFromInt(numerator).Div(NewDecimalFromInt(denominator)).Round(places)
}
