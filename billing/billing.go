package billing

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Entry is one billable line item. Duration and Price keep the raw text the
// user typed; they are only coerced to numbers at export time.
type Entry struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Price    string `json:"price"`
}

// Field names one editable column of an Entry.
type Field int

const (
	FieldTitle Field = iota
	FieldDuration
	FieldPrice
)

var fieldNames = map[string]Field{
	"title":    FieldTitle,
	"duration": FieldDuration,
	"price":    FieldPrice,
}

var fieldSetters = map[Field]func(*Entry, string){
	FieldTitle:    func(e *Entry, v string) { e.Title = v },
	FieldDuration: func(e *Entry, v string) { e.Duration = v },
	FieldPrice:    func(e *Entry, v string) { e.Price = v },
}

// ParseField resolves a field name. Matching is exact.
func ParseField(name string) (Field, bool) {
	field, ok := fieldNames[name]
	return field, ok
}

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldDuration:
		return "duration"
	case FieldPrice:
		return "price"
	default:
		return "unknown"
	}
}

// ParseNumberOrZero converts user-entered text to a number. Empty or
// non-numeric text yields zero, and so does text outside the float64 range:
// it overflows to infinity or underflows to zero as a float.
func ParseNumberOrZero(text string) decimal.Decimal {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return decimal.Zero
	}
	approx, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(approx, 0) || math.IsNaN(approx) || approx == 0 {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// LineTotal is duration x price rounded to two decimals.
func LineTotal(entry Entry) decimal.Decimal {
	return ParseNumberOrZero(entry.Duration).Mul(ParseNumberOrZero(entry.Price)).Round(2)
}

// GrandTotal sums the already rounded line totals and rounds the sum again.
func GrandTotal(entries []Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, entry := range entries {
		sum = sum.Add(LineTotal(entry))
	}
	return sum.Round(2)
}
