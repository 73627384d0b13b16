package types

import (
	"encoding/json"
	"testing"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"number", `42.5`, "42.5"},
		{"integer", `100`, "100"},
		{"negative number", `-12.34`, "-12.34"},
		{"numeric string", `"99.95"`, "99.95"},
		{"scientific notation string", `"1e2"`, "100"},
		{"null", `null`, "0"},
		{"empty string", `""`, "0"},
		{"whitespace string", `"  "`, "0"},
		{"garbage string", `"abc"`, "0"},
		{"padded numeric string", `" 7.5 "`, "7.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tt.raw), &a); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.String() != tt.want {
				t.Errorf("Amount(%s) = %s, want %s", tt.raw, a.String(), tt.want)
			}
		})
	}
}

func TestAmountUnmarshal_WrongTypeDecodesToZero(t *testing.T) {
	// Fields of unexpected JSON types never fail the order decode.
	var s struct {
		Price Amount `json:"price"`
	}
	for _, raw := range []string{
		`{"price": true}`,
		`{"price": {}}`,
		`{"price": []}`,
		`{}`,
	} {
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if !s.Price.IsZero() {
			t.Errorf("decode %s: price = %s, want 0", raw, s.Price)
		}
	}
}

func TestAmountMarshalRoundTrip(t *testing.T) {
	a := NewAmount(42.5)
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "42.5" {
		t.Errorf("marshal = %s, want 42.5", b)
	}
}

func TestAmountPredicates(t *testing.T) {
	if !NewAmount(0).IsZero() {
		t.Error("0 should be zero")
	}
	if NewAmount(-5).IsPositive() {
		t.Error("-5 should not be positive")
	}
	if got := NewAmount(-5).Abs(); got.String() != "5" {
		t.Errorf("Abs(-5) = %s", got)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"-2.555", "-2.56"},
		{"10", "10.00"},
	}
	for _, tt := range tests {
		got := Round2(MustMoney(tt.in))
		if got.StringFixed(2) != tt.want {
			t.Errorf("Round2(%s) = %s, want %s", tt.in, got.StringFixed(2), tt.want)
		}
	}
}

func TestNonNeg(t *testing.T) {
	if got := NonNeg(MustMoney("-3.50")); got.StringFixed(2) != "3.50" {
		t.Errorf("NonNeg(-3.50) = %s", got)
	}
	if got := NonNeg(MustMoney("3.50")); got.StringFixed(2) != "3.50" {
		t.Errorf("NonNeg(3.50) = %s", got)
	}
}
