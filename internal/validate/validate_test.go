package validate

import "testing"

func TestEmail(t *testing.T) {
	good := []string{"a@b.co", "mai.tran+shop@example.com"}
	bad := []string{"", "not-an-email", "a@b", "@example.com", "a b@example.com"}
	for _, s := range good {
		if _, ok := Email(s); !ok {
			t.Errorf("Email(%q) should pass", s)
		}
	}
	for _, s := range bad {
		if _, ok := Email(s); ok {
			t.Errorf("Email(%q) should fail", s)
		}
	}
}

func TestPhone(t *testing.T) {
	if _, ok := Phone("0900000001"); !ok {
		t.Error("local number should pass")
	}
	if _, ok := Phone("+84900000001"); !ok {
		t.Error("international prefix should pass")
	}
	for _, s := range []string{"", "123", "09-000-000", "abcdefgh"} {
		if _, ok := Phone(s); ok {
			t.Errorf("Phone(%q) should fail", s)
		}
	}
}

func TestCode(t *testing.T) {
	if got, ok := Code(" 15012026-ab12cd "); !ok || got != "15012026-AB12CD" {
		t.Errorf("Code should trim and uppercase, got %q ok=%v", got, ok)
	}
	for _, s := range []string{"", "ab", "has space 123", "lower!case"} {
		if _, ok := Code(s); ok {
			t.Errorf("Code(%q) should fail", s)
		}
	}
}

func TestQtyClamps(t *testing.T) {
	cases := map[string]int{"3": 3, "0": 1, "-2": 1, "junk": 1, "999": 50, "50": 50}
	for in, want := range cases {
		if got := Qty(in); got != want {
			t.Errorf("Qty(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestPassword(t *testing.T) {
	good := []string{"Passw0rd!", "Sunny1Day", "aB3defgh"}
	bad := []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere", ""}
	for _, s := range good {
		if !Password(s) {
			t.Errorf("Password(%q) should pass", s)
		}
	}
	for _, s := range bad {
		if Password(s) {
			t.Errorf("Password(%q) should fail", s)
		}
	}
}
