package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseAccountID checks that parsing never panics and that accepted ids
// round-trip through String.
func FuzzParseAccountID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE accounts;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseAccountID(input)
		if err == nil {
			roundTrip, err2 := ParseAccountID(id.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("round-trip changed ID value")
			}
		}
		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

// FuzzParseProjectID checks that accepted project ids never carry control characters.
func FuzzParseProjectID(f *testing.F) {
	f.Add("proj-1")
	f.Add("")
	f.Add("a\x00b")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseProjectID(input)
		if err != nil {
			return
		}
		for _, r := range id.String() {
			if r < 0x20 || r == 0x7f {
				t.Fatalf("accepted control character in %q", id)
			}
		}
	})
}
