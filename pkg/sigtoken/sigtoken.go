// Package sigtoken derives the signature tokens attached to offers. The
// token is an HMAC-SHA256 keyed by the caller's certificate fingerprint
// over `<accountID>.<mspID>.<timestamp>`, so it binds the signing party's
// identity to the account being signed for at a point in time.
package sigtoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

func Generate(accountID, mspID, fingerprint string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(fingerprint))
	_, _ = mac.Write([]byte(accountID + "." + mspID + "." + at.UTC().Format(time.RFC3339)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the token and compares in constant time.
func Verify(token, accountID, mspID, fingerprint string, at time.Time) bool {
	expected := Generate(accountID, mspID, fingerprint, at)
	got, err := hex.DecodeString(token)
	if err != nil {
		return false
	}
	want, _ := hex.DecodeString(expected)
	return hmac.Equal(got, want)
}
