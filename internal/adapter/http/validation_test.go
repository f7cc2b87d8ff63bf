package http

import (
	"errors"
	"strings"
	"testing"
)

func TestEthAddrValidation(t *testing.T) {
	type P struct {
		UserAddress string `validate:"ethaddr"`
	}
	cv := NewValidator()

	for _, s := range []string{
		"0x" + strings.Repeat("a", 40),
		"0x" + strings.Repeat("A", 40),
		"0xAbC0000000000000000000000000000000000001",
	} {
		if err := cv.Validate(P{UserAddress: s}); err != nil {
			t.Fatalf("expected valid address %q, got err: %v", s, err)
		}
	}

	for _, s := range []string{
		"",                             // empty
		strings.Repeat("a", 42),        // missing 0x
		"0x" + strings.Repeat("a", 39), // too short
		"0x" + strings.Repeat("a", 41), // too long
		"0x" + strings.Repeat("g", 40), // non-hex char
	} {
		err := cv.Validate(P{UserAddress: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "UserAddress", "0x-prefixed 40-hex address") {
			t.Fatalf("expected ethaddr message for %q, got: %+v", s, fe)
		}
	}
}

func TestTxTypeValidation(t *testing.T) {
	type P struct {
		TransactionType string `validate:"txtype"`
	}
	cv := NewValidator()

	for _, s := range []string{"repay", "loan_issued", "borrow", "withdraw"} {
		if err := cv.Validate(P{TransactionType: s}); err != nil {
			t.Fatalf("expected valid type %q, got err: %v", s, err)
		}
	}
	for _, s := range []string{"", strings.Repeat("x", 21)} {
		err := cv.Validate(P{TransactionType: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "TransactionType", "short non-empty type") {
			t.Fatalf("expected txtype message for %q, got: %+v", s, fe)
		}
	}
}

func TestRequiredMapping(t *testing.T) {
	type P struct {
		Name string `validate:"required"`
	}
	cv := NewValidator()

	err := cv.Validate(P{})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
