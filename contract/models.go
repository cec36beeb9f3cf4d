package contract

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const (
	StatusPendingSignatures = "PENDING_SIGNATURES"
	StatusCompleted         = "COMPLETED"
)

// Number is a float64 that also accepts quoted numeric strings on decode,
// matching the loose coercion the wire format allows for amounts and prices.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var q string
		if err := json.Unmarshal(b, &q); err != nil {
			return err
		}
		if strings.TrimSpace(q) == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
		if err != nil {
			return err
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

type Account struct {
	ID        string    `json:"id"`
	OwnerName string    `json:"ownerName"`
	Balance   Number    `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RealEstate struct {
	ID             string    `json:"id"`
	Description    string    `json:"description"`
	Price          Number    `json:"price"`
	Address        string    `json:"address"`
	TotalArea      string    `json:"totalArea"`
	OwnerAccountID string    `json:"ownerAccountId"`
	Offers         []string  `json:"offers"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type Offer struct {
	ID              string    `json:"id"`
	Amount          Number    `json:"amount"`
	Status          string    `json:"status"`
	RealEstateID    string    `json:"realEstateId"`
	SellerAccountID string    `json:"sellerAccountId"`
	BuyerAccountID  string    `json:"buyerAccountId"`
	SellerSignature string    `json:"sellerSignature,omitempty"`
	BuyerSignature  string    `json:"buyerSignature,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
