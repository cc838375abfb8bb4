package domain

import "testing"

func TestNewAmountFromFloat(t *testing.T) {
	cases := []struct {
		value float64
		cents int64
	}{
		{0, 0},
		{0.1, 10},
		{19.99, 1999},
		{1094.95, 109495},
		{-5.5, -550},
	}

	for _, c := range cases {
		if got := NewAmountFromFloat(c.value); int64(got) != c.cents {
			t.Errorf("NewAmountFromFloat(%v) = %d cents, expected %d", c.value, got, c.cents)
		}
	}
}

func TestAmount_Float64Roundtrip(t *testing.T) {
	amount := NewAmountFromFloat(129.99)
	if got := amount.Float64(); got != 129.99 {
		t.Fatalf("expected 129.99, got %v", got)
	}
}

func TestAmount_Arithmetic(t *testing.T) {
	a := NewAmountFromCents(1000)
	b := NewAmountFromCents(550)

	if got := a.Add(b); int64(got) != 1550 {
		t.Fatalf("expected 1550 cents, got %d", got)
	}
	if got := a.Multiply(3); int64(got) != 3000 {
		t.Fatalf("expected 3000 cents, got %d", got)
	}
}

func TestNewID(t *testing.T) {
	first := NewID()
	second := NewID()

	if first == second {
		t.Fatal("expected distinct ids")
	}
	if !ValidateID(string(first)) {
		t.Fatalf("expected %q to be a valid id", first)
	}
}

func TestValidateID(t *testing.T) {
	if ValidateID("not-an-id") {
		t.Fatal("expected invalid id to be rejected")
	}
}
