package links

import (
	"net/url"
	"strings"
	"testing"
)

func TestDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+91 98765 43210", "919876543210"},
		{"(080) 2345-6789", "08023456789"},
		{"9876543210", "9876543210"},
	}

	for _, c := range cases {
		if got := Digits(c.in); got != c.want {
			t.Fatalf("Digits(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCall(t *testing.T) {
	if got := Call("+919876543210"); got != "tel:+919876543210" {
		t.Fatalf("unexpected call link: %s", got)
	}
}

func TestWhatsApp(t *testing.T) {
	t.Setenv("FO_LINK_BASE_URL", "https://pod.example.com")

	got := WhatsApp("+91 98765 43210", "TRP-1001")

	if !strings.HasPrefix(got, "https://wa.me/919876543210?text=") {
		t.Fatalf("unexpected wa.me prefix: %s", got)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	text := u.Query().Get("text")
	want := "Hi, Please provide POD for Trip TRP-1001. Link: https://pod.example.com/fo/TRP-1001"
	if text != want {
		t.Fatalf("message = %q, want %q", text, want)
	}
}

func TestMapsEscapesAddress(t *testing.T) {
	got := Maps("12/4 Industrial Area, Phase 2, Bangalore")

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if u.Query().Get("q") != "12/4 Industrial Area, Phase 2, Bangalore" {
		t.Fatalf("address mangled: %s", got)
	}
}
