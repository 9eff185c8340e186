package client

import "testing"

func TestResolveChainID_KnownNames(t *testing.T) {
	cases := map[string]string{
		"eth":       "0x1",
		"ethereum":  "0x1",
		"mainnet":   "0x1",
		"polygon":   "0x89",
		"matic":     "0x89",
		"bsc":       "0x38",
		"arbitrum":  "0xa4b1",
		"avalanche": "0xa86a",
		"optimism":  "0xa",
		"base":      "0x2105",
		"fantom":    "0xfa",
	}
	for name, want := range cases {
		if got := ResolveChainID(name); got != want {
			t.Errorf("ResolveChainID(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestResolveChainID_DefaultsToMainnet(t *testing.T) {
	for _, chain := range []string{"", "  ", "dogecoin", "solana"} {
		if got := ResolveChainID(chain); got != DefaultChainID {
			t.Errorf("ResolveChainID(%q) = %q, want %q", chain, got, DefaultChainID)
		}
	}
}

func TestResolveChainID_HexPassthrough(t *testing.T) {
	if got := ResolveChainID("0x89"); got != "0x89" {
		t.Errorf("hex id should pass through, got %q", got)
	}
	if got := ResolveChainID("0xdeadbeef"); got != "0xdeadbeef" {
		t.Errorf("unknown hex id should pass through, got %q", got)
	}
}

func TestResolveChainID_CaseAndWhitespace(t *testing.T) {
	if got := ResolveChainID("  Polygon "); got != "0x89" {
		t.Errorf("expected trimming and lowercasing, got %q", got)
	}
}
