// Package payload decodes the opaque string argument carried by create
// transactions. Payloads that are not valid JSON are accepted as-is rather
// than rejected; Decode reports which path was taken so callers can log it.
package payload

import "encoding/json"

// Decode unmarshals raw into dst and reports whether raw was valid JSON.
// On failure dst is left untouched and the transaction proceeds with
// whatever zero values it already holds.
func Decode(raw string, dst any) bool {
	return json.Unmarshal([]byte(raw), dst) == nil
}
