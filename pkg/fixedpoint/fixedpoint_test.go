package fixedpoint

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromRaw_Exact(t *testing.T) {
	cases := []struct {
		raw  int64
		want string
	}{
		{5_000_000_000, "5000"},
		{1, "0.000001"},
		{0, "0"},
		{5_500_000_000, "5500"},
		{1_000_000, "1"},
		{999_999, "0.999999"},
	}
	for _, c := range cases {
		got := FromRaw(big.NewInt(c.raw))
		if !got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("FromRaw(%d) = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestFromRaw_SixFractionalDigits(t *testing.T) {
	got := FromRaw(big.NewInt(5_000_000_000))
	if s := got.StringFixed(6); s != "5000.000000" {
		t.Fatalf("StringFixed = %s, want 5000.000000", s)
	}
	if s := FromRaw(big.NewInt(1)).StringFixed(6); s != "0.000001" {
		t.Fatalf("StringFixed = %s, want 0.000001", s)
	}
}

func TestFromRawHex(t *testing.T) {
	// 0x12a05f200 = 5_000_000_000
	d, err := FromRawHex("0x12a05f200")
	if err != nil {
		t.Fatalf("FromRawHex: %v", err)
	}
	if !d.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("got %s, want 5000", d)
	}
	if _, err := FromRawHex("0x"); err == nil {
		t.Fatal("expected error for empty quantity")
	}
	if _, err := FromRawHex("0xzz"); err == nil {
		t.Fatal("expected error for invalid hex")
	}
}

func TestRoundTrip(t *testing.T) {
	// Boundary values plus a spread of random raws, up into the billions
	// of base units.
	raws := []int64{0, 1, 999_999, 1_000_000, 5_500_000_000}
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		raws = append(raws, r.Int63n(1_000_000_000_000_000))
	}
	for _, raw := range raws {
		d := FromRaw(big.NewInt(raw))
		back, err := ToRaw(d)
		if err != nil {
			t.Fatalf("ToRaw(%s): %v", d, err)
		}
		if back.Int64() != raw {
			t.Fatalf("round trip %d -> %s -> %d", raw, d, back.Int64())
		}
	}
}

func TestToRaw_RejectsSubMicro(t *testing.T) {
	if _, err := ToRaw(decimal.RequireFromString("0.0000001")); err == nil {
		t.Fatal("expected error for 7 fractional digits")
	}
}
