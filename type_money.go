package depreciation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used when none is configured.
const DefaultCurrency = "EUR"

// Currency is the unit amounts are expressed in.
//
// Only its subunit matters to a schedule: amounts are rounded to 10^-Fraction.
type Currency struct {
	code     string
	fraction int32
}

// ParseCurrency returns the ISO 4217 currency for code, case insensitive.
func ParseCurrency(code string) (Currency, error) {
	c := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code)))
	if c == nil {
		return Currency{}, fmt.Errorf("unknown currency %q", code)
	}
	return Currency{code: c.Code, fraction: int32(c.Fraction)}, nil
}

// MustCurrency is like ParseCurrency but panics on error.
func MustCurrency(code string) Currency {
	c, err := ParseCurrency(code)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// Code returns the ISO 4217 code.
func (c Currency) Code() string { return c.code }

// Fraction returns the number of subunit digits.
func (c Currency) Fraction() int32 { return c.fraction }

func (c Currency) String() string { return c.code }

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   Currency
}

func M[T float64 | int | int64 | decimal.Decimal](value T, cur Currency) Money {
	return Money{value: newDecimal(value), cur: cur}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// ParseMoney parses a decimal amount such as "1500", "1500.00" or "-3.125".
//
// The text is kept exact, it is not rounded to the currency subunit.
func ParseMoney(str string, cur Currency) (Money, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(str))
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", str, err)
	}
	return Money{value: v, cur: cur}, nil
}

// Currency returns the money's currency
func (m Money) Currency() Currency { return m.cur }

// Decimal returns the exact value in major units.
func (m Money) Decimal() decimal.Decimal { return m.value }

// Round returns m rounded to the currency subunit, half away from zero.
func (m Money) Round() Money { return Money{value: m.value.Round(m.cur.fraction), cur: m.cur} }

// MulDivRound returns m×num/den rounded to the currency subunit.
// The product is divided exactly before rounding so no precision is lost.
func (m Money) MulDivRound(num, den int64) Money {
	v := m.value.Mul(decimal.NewFromInt(num)).DivRound(decimal.NewFromInt(den), m.cur.fraction)
	return Money{value: v, cur: m.cur}
}

// Div returns m/n, not rounded to the subunit.
func (m Money) Div(n int64) Money { return Money{value: m.value.Div(decimal.NewFromInt(n)), cur: m.cur} }

func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the zero currency totally weak.
func cur(a, b Money) Currency {
	if a.cur == (Currency{}) {
		return b.cur
	}
	if b.cur == (Currency{}) {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur.code + "!=" + b.cur.code)
	}
	return a.cur
}

// Fixed formats the value rounded with exactly the currency subunit digits, without
// grouping or symbol: "1234.50".
func (m Money) Fixed() string { return m.value.StringFixed(m.cur.fraction) }

// String returns the display representation of the money value, e.g. "€1,234.50".
func (m Money) String() string {
	c := money.GetCurrency(m.cur.code)
	if c == nil {
		return m.Fixed()
	}
	return c.Formatter().Format(m.value.Shift(m.cur.fraction).Round(0).IntPart())
}

// MarshalJSON writes the amount as a JSON number with the currency subunit digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(json.Number(m.Fixed()))
}
