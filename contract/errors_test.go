package contract

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorRendersCode(t *testing.T) {
	err := NotFoundf("asset %s does not exist", "acc_1")
	if err.Error() != "NOT_FOUND: asset acc_1 does not exist" {
		t.Fatalf("unexpected rendering: %s", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(Validationf("bad")) != CodeValidation {
		t.Fatalf("expected VALIDATION")
	}
	if CodeOf(fmt.Errorf("wrapped: %w", Conflictf("clash"))) != CodeConflict {
		t.Fatalf("expected CONFLICT through wrapping")
	}
	if CodeOf(errors.New("disk on fire")) != CodeStore {
		t.Fatalf("expected STORE_ERROR default")
	}
}

func TestParseCode(t *testing.T) {
	cases := map[string]Code{
		"NOT_FOUND: asset re_1 does not exist":                       CodeNotFound,
		"rpc error: chaincode says INSUFFICIENT_FUNDS: buyer broke":  CodeInsufficientFunds,
		"PRECONDITION_FAILED: both parties need to sign offer first": CodePreconditionFailed,
		"something exploded":                                         CodeStore,
	}
	for message, want := range cases {
		if got := ParseCode(message); got != want {
			t.Fatalf("ParseCode(%q) = %s, want %s", message, got, want)
		}
	}
}
