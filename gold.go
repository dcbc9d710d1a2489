package tradingpost

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// The trading post currency has three tiers.
const (
	SilverPerGold   = 100
	CopperPerSilver = 100
	CopperPerGold   = SilverPerGold * CopperPerSilver
)

// copperDigits is the number of decimal digits of a gold amount held by copper.
const copperDigits = 4

// ErrInvalidGold is returned when a text cannot be parsed into Gold.
var ErrInvalidGold = errors.New("invalid gold amount")

// currency describes gold to go-money. Amounts are handed over in copper.
var currency = money.Currency{
	Code:     "GLD",
	Grapheme: "g",
	Template: "1$",
	Decimal:  ".",
	Thousand: ",",
	Fraction: copperDigits,
}

// Gold represents an amount of trading post currency, as a value in gold
// (the major unit). It is exact: fractional silver and copper are kept as
// decimal digits, never as binary floating point.
type Gold struct {
	value decimal.Decimal // in gold
}

// G creates a Gold amount from a value in gold.
func G[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Gold {
	return Gold{value: newDecimal(value)}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// FromCopper creates a Gold amount from a number of copper coins, the unit in
// which the trading post API reports prices.
func FromCopper(copper int64) Gold { return Gold{value: decimal.New(copper, -copperDigits)} }

// FromDenominations returns gold + silver/100 + copper/10000.
//
// silver and copper are expected in [0, 99]; values outside that range are
// not rejected and simply carry into the upper tiers.
func FromDenominations(gold, silver, copper int64) Gold {
	return FromCopper(gold*CopperPerGold + silver*CopperPerSilver + copper)
}

func (g Gold) Decimal() decimal.Decimal     { return g.value }
func (g Gold) Equal(h Gold) bool            { return g.value.Equal(h.value) }
func (g Gold) Cmp(h Gold) int               { return g.value.Cmp(h.value) }
func (g Gold) IsZero() bool                 { return g.value.IsZero() }
func (g Gold) IsPositive() bool             { return g.value.IsPositive() }
func (g Gold) IsNegative() bool             { return g.value.IsNegative() }
func (g Gold) LessThan(h Gold) bool         { return g.value.LessThan(h.value) }
func (g Gold) GreaterThan(h Gold) bool      { return g.value.GreaterThan(h.value) }
func (g Gold) Add(h Gold) Gold              { return Gold{value: g.value.Add(h.value)} }
func (g Gold) Sub(h Gold) Gold              { return Gold{value: g.value.Sub(h.value)} }
func (g Gold) Neg() Gold                    { return Gold{value: g.value.Neg()} }
func (g Gold) Abs() Gold                    { return Gold{value: g.value.Abs()} }
func (g Gold) Mul(n int) Gold               { return Gold{value: g.value.Mul(decimal.NewFromInt(int64(n)))} }
func (g Gold) Scale(r decimal.Decimal) Gold { return Gold{value: g.value.Mul(r)} }
func (g Gold) Div(n int) Gold               { return Gold{value: g.value.Div(decimal.NewFromInt(int64(n)))} }
func (g Gold) Ratio(h Gold) decimal.Decimal { return g.value.Div(h.value) }

// Float64 returns the nearest float64 value. It is meant for metrics and
// charts, never for further arithmetic.
func (g Gold) Float64() float64 { return g.value.InexactFloat64() }

// Copper returns the amount rounded to the nearest copper coin.
func (g Gold) Copper() int64 { return g.value.Shift(copperDigits).Round(0).IntPart() }

// Denominations splits the absolute amount into gold, silver and copper,
// truncating toward zero at each tier: digits beyond copper are dropped.
//
// It is a lossy display conversion: FromDenominations reconstructs the
// amount up to 4 decimal places only. The sign is not part of the result.
func (g Gold) Denominations() (gold, silver, copper int64) {
	v := g.value.Abs()
	gold = v.IntPart()
	silver = v.Shift(2).IntPart() % SilverPerGold
	copper = v.Shift(copperDigits).IntPart() % CopperPerSilver
	return gold, silver, copper
}

// Format renders the amount as "{gold}g {silver}s {copper}c", rounding to the
// nearest copper. Intermediate tiers are never rounded on their own, so
// 2.999999 renders as "3g 0s 0c". Negative amounts are prefixed with "-".
func (g Gold) Format() string {
	total := g.value.Abs().Shift(copperDigits).Round(0).IntPart()
	sign := ""
	if g.value.IsNegative() && total != 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%dg %ds %dc", sign, total/CopperPerGold, total%CopperPerGold/CopperPerSilver, total%CopperPerSilver)
}

// SignedFormat is like Format but always carries a sign, "-" for zero.
func (g Gold) SignedFormat() string {
	if g.Copper() == 0 {
		return "-"
	}
	if g.value.IsPositive() {
		return "+" + g.Format()
	}
	return g.Format()
}

// String returns the compact representation of the amount, in gold with the
// copper digits, like "1.2345g".
func (g Gold) String() string {
	return currency.Formatter().Format(g.Copper())
}

// MarshalJSON writes the exact amount in gold as a JSON number.
func (g Gold) MarshalJSON() ([]byte, error) {
	return []byte(g.value.String()), nil
}

// UnmarshalJSON reads an amount in gold from a JSON number. Quoted amounts
// are rejected.
func (g *Gold) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGold, err)
	}
	n, ok := v.(json.Number)
	if !ok {
		return fmt.Errorf("%w: expected a number, got %s", ErrInvalidGold, data)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrInvalidGold, n, err)
	}
	g.value = d
	return nil
}

var denominationsRegexp = regexp.MustCompile(`^(-)?\s*(?:(\d+)\s*g)?\s*(?:(\d+)\s*s)?\s*(?:(\d+)\s*c)?$`)

// ParseGold parses an amount either as a decimal value in gold ("1.2345") or
// in the denominations form ("1g 23s 45c", every tier optional, "-" prefix
// allowed). Silver and copper must be in [0, 99].
func ParseGold(s string) (Gold, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Gold{}, fmt.Errorf("%w: empty", ErrInvalidGold)
	}
	if !strings.ContainsAny(s, "gsc") {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Gold{}, fmt.Errorf("%w %q: %v", ErrInvalidGold, s, err)
		}
		return Gold{value: d}, nil
	}

	m := denominationsRegexp.FindStringSubmatch(s)
	if m == nil || (m[2] == "" && m[3] == "" && m[4] == "") {
		return Gold{}, fmt.Errorf("%w %q: expected a form like '1g 23s 45c'", ErrInvalidGold, s)
	}
	var tiers [3]int64
	for i, txt := range m[2:] {
		if txt == "" {
			continue
		}
		n, err := strconv.ParseInt(txt, 10, 64)
		if err != nil {
			return Gold{}, fmt.Errorf("%w %q: %v", ErrInvalidGold, s, err)
		}
		tiers[i] = n
	}
	if tiers[1] >= SilverPerGold {
		return Gold{}, fmt.Errorf("%w %q: silver must be in [0, 99]", ErrInvalidGold, s)
	}
	if tiers[2] >= CopperPerSilver {
		return Gold{}, fmt.Errorf("%w %q: copper must be in [0, 99]", ErrInvalidGold, s)
	}
	g := FromDenominations(tiers[0], tiers[1], tiers[2])
	if m[1] == "-" {
		g = g.Neg()
	}
	return g, nil
}
