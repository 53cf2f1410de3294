package billing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseNumberOrZero(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  string
	}{
		{input: "120", want: "120"},
		{input: " 2.5 ", want: "2.5"},
		{input: "-4", want: "-4"},
		{input: "1e2", want: "100"},
		{input: "", want: "0"},
		{input: "   ", want: "0"},
		{input: "abc", want: "0"},
		{input: "12abc", want: "0"},
		{input: "1,5", want: "0"},
		{input: "0.000", want: "0"},
		{input: "1e99999999", want: "0"},
		{input: "1e-99999999", want: "0"},
		{input: "1e400", want: "0"},
		{input: "-1e400", want: "0"},
		{input: "1e308", want: "1e308"},
		{input: "Inf", want: "0"},
		{input: "NaN", want: "0"},
		{input: "0x1p4", want: "0"},
	}

	for _, tc := range cases {
		got := ParseNumberOrZero(tc.input)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("ParseNumberOrZero(%q): expected %s, got %s", tc.input, tc.want, got)
		}
	}
}

func TestLineTotal_RoundsToTwoDecimals(t *testing.T) {
	t.Parallel()

	cases := []struct {
		entry Entry
		want  string
	}{
		{entry: Entry{Duration: "120", Price: "2"}, want: "240"},
		{entry: Entry{Duration: "abc", Price: "10"}, want: "0"},
		{entry: Entry{Duration: "", Price: ""}, want: "0"},
		{entry: Entry{Duration: "1", Price: "1.005"}, want: "1.01"},
		{entry: Entry{Duration: "3", Price: "0.333"}, want: "1"},
		{entry: Entry{Duration: "0.1", Price: "0.3"}, want: "0.03"},
		{entry: Entry{Duration: "1e99999999", Price: "1"}, want: "0"},
		{entry: Entry{Duration: "2", Price: "1e-99999999"}, want: "0"},
	}

	for _, tc := range cases {
		got := LineTotal(tc.entry)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("LineTotal(%+v): expected %s, got %s", tc.entry, tc.want, got)
		}
	}
}

func TestGrandTotal_RoundsRowsBeforeSumming(t *testing.T) {
	t.Parallel()

	// Each row is 0.333 * 1 = 0.333 -> 0.33; unrounded sum would be 0.999 -> 1.00.
	entries := []Entry{
		{Duration: "1", Price: "0.333"},
		{Duration: "1", Price: "0.333"},
		{Duration: "1", Price: "0.333"},
	}

	got := GrandTotal(entries)
	if !got.Equal(decimal.RequireFromString("0.99")) {
		t.Fatalf("expected grand total 0.99, got %s", got)
	}
}

func TestGrandTotal_TwoEntries(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Duration: "10", Price: "3"},
		{Duration: "5", Price: "4"},
	}

	if got := GrandTotal(entries); !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected grand total 50, got %s", got)
	}
	if got := GrandTotal(nil); !got.IsZero() {
		t.Fatalf("expected zero grand total for no entries, got %s", got)
	}
}

func TestParseField(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]Field{"title": FieldTitle, "duration": FieldDuration, "price": FieldPrice} {
		got, ok := ParseField(name)
		if !ok || got != want {
			t.Fatalf("ParseField(%q): expected %v, got %v (ok=%t)", name, want, got, ok)
		}
		if got.String() != name {
			t.Fatalf("expected String() %q, got %q", name, got.String())
		}
	}

	for _, name := range []string{"", "Title", "total", "constructor"} {
		if _, ok := ParseField(name); ok {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}
