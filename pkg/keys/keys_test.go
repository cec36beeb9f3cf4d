package keys

import (
	"strings"
	"testing"
)

func TestNewCarriesPrefix(t *testing.T) {
	k := New(AccountPrefix)
	if !strings.HasPrefix(k, "acc_") {
		t.Fatalf("expected acc_ prefix, got %s", k)
	}
}

func TestNewUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		k := New(OfferPrefix)
		if seen[k] {
			t.Fatalf("duplicate key %s", k)
		}
		seen[k] = true
	}
}
