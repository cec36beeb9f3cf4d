// Package keys produces the opaque ledger keys under which every record is
// stored. A key is `<prefix>_<uuid-v4>`, with the prefix identifying the
// record category.
package keys

import "github.com/google/uuid"

const (
	AccountPrefix    = "acc"
	OfferPrefix      = "of"
	RealEstatePrefix = "re"
)

func New(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
