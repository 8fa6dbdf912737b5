package uuid

import "testing"

func TestNew_VersionAndVariant(t *testing.T) {
	u, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := u[6] >> 4; got != 4 {
		t.Fatalf("version nibble = %d, want 4", got)
	}
	if got := u[8] >> 6; got != 2 {
		t.Fatalf("variant bits = %b, want 10", got)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	u, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	parsed, err := Parse(u.String())
	if err != nil {
		t.Fatalf("Parse(%q): %v", u.String(), err)
	}
	if parsed != u {
		t.Fatalf("round trip mismatch: %s vs %s", parsed, u)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "not-a-uuid", "00000000000000000000000000000000"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) should fail", s)
		}
	}
}
