package sigtoken

import (
	"testing"
	"time"
)

func TestGenerateDeterministic(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := Generate("acc_1", "Org1MSP", "fp", at)
	b := Generate("acc_1", "Org1MSP", "fp", at)
	if a != b {
		t.Fatalf("expected deterministic token")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256 token, got len %d", len(a))
	}
}

func TestGenerateVariesByInput(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	base := Generate("acc_1", "Org1MSP", "fp", at)
	if Generate("acc_2", "Org1MSP", "fp", at) == base {
		t.Fatalf("expected account id to affect token")
	}
	if Generate("acc_1", "Org2MSP", "fp", at) == base {
		t.Fatalf("expected msp id to affect token")
	}
	if Generate("acc_1", "Org1MSP", "other", at) == base {
		t.Fatalf("expected fingerprint to affect token")
	}
}

func TestVerify(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tok := Generate("acc_1", "Org1MSP", "fp", at)
	if !Verify(tok, "acc_1", "Org1MSP", "fp", at) {
		t.Fatalf("expected token to verify")
	}
	if Verify(tok, "acc_1", "Org1MSP", "fp", at.Add(time.Second)) {
		t.Fatalf("expected timestamp mismatch to fail")
	}
	if Verify("deadbeef", "acc_1", "Org1MSP", "fp", at) {
		t.Fatalf("expected invalid token to fail")
	}
}
