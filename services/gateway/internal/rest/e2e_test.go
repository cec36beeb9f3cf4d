package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/contract"
	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/services/gateway/internal/localclient"
)

// Drives the whole sale through the REST surface with the contract running
// in-process: two accounts, a deposit, a listing, a signed offer, and the
// final transfer.
func TestEndToEndSaleThroughREST(t *testing.T) {
	router := NewRouter(localclient.New(nil), nil)

	decode := func(t *testing.T, body []byte, dst any) {
		t.Helper()
		if err := json.Unmarshal(body, dst); err != nil {
			t.Fatalf("decode %s: %v", body, err)
		}
	}

	var sellerAcc, buyerAcc contract.Account
	rec := doRequest(t, router, "POST", "/accounts", []byte(`{"ownerName":"A"}`))
	if rec.Code != 201 {
		t.Fatalf("create seller: %d %s", rec.Code, rec.Body.String())
	}
	decode(t, rec.Body.Bytes(), &sellerAcc)

	rec = doRequest(t, router, "POST", "/accounts", []byte(`{"ownerName":"B"}`))
	decode(t, rec.Body.Bytes(), &buyerAcc)

	rec = doRequest(t, router, "POST", "/accounts/"+buyerAcc.ID+"/deposits", []byte(`{"amount":1000}`))
	if rec.Code != 200 {
		t.Fatalf("deposit: %d %s", rec.Code, rec.Body.String())
	}

	var estate contract.RealEstate
	rec = doRequest(t, router, "POST", "/real_estate", []byte(fmt.Sprintf(`{"description":"house","ownerAccountId":%q}`, sellerAcc.ID)))
	if rec.Code != 201 {
		t.Fatalf("create real estate: %d %s", rec.Code, rec.Body.String())
	}
	decode(t, rec.Body.Bytes(), &estate)

	var offer contract.Offer
	rec = doRequest(t, router, "POST", "/offers", []byte(fmt.Sprintf(`{"amount":500,"realEstateId":%q,"buyerAccountId":%q}`, estate.ID, buyerAcc.ID)))
	if rec.Code != 201 {
		t.Fatalf("create offer: %d %s", rec.Code, rec.Body.String())
	}
	decode(t, rec.Body.Bytes(), &offer)
	if offer.SellerAccountID != sellerAcc.ID {
		t.Fatalf("expected seller snapshot %s, got %s", sellerAcc.ID, offer.SellerAccountID)
	}

	// Transfer before signatures must fail and change nothing.
	rec = doRequest(t, router, "POST", "/real_estate/"+estate.ID+"/transfers", []byte(fmt.Sprintf(`{"offerId":%q}`, offer.ID)))
	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected 412 before signatures, got %d", rec.Code)
	}

	for _, signee := range []string{"buyer", "seller"} {
		rec = doRequest(t, router, "POST", "/offers/"+offer.ID+"/signatures", []byte(fmt.Sprintf(`{"signee":%q}`, signee)))
		if rec.Code != 200 {
			t.Fatalf("sign as %s: %d %s", signee, rec.Code, rec.Body.String())
		}
	}

	rec = doRequest(t, router, "POST", "/real_estate/"+estate.ID+"/transfers", []byte(fmt.Sprintf(`{"offerId":%q}`, offer.ID)))
	if rec.Code != 200 {
		t.Fatalf("transfer: %d %s", rec.Code, rec.Body.String())
	}

	var sellerAfter, buyerAfter contract.Account
	rec = doRequest(t, router, "GET", "/accounts/"+sellerAcc.ID, nil)
	decode(t, rec.Body.Bytes(), &sellerAfter)
	rec = doRequest(t, router, "GET", "/accounts/"+buyerAcc.ID, nil)
	decode(t, rec.Body.Bytes(), &buyerAfter)

	if sellerAfter.Balance != 500 || buyerAfter.Balance != 500 {
		t.Fatalf("expected 500/500 after sale, got %v/%v", sellerAfter.Balance, buyerAfter.Balance)
	}

	var offerAfter contract.Offer
	rec = doRequest(t, router, "GET", "/offers/"+offer.ID, nil)
	decode(t, rec.Body.Bytes(), &offerAfter)
	if offerAfter.Status != contract.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", offerAfter.Status)
	}

	var estateAfter contract.RealEstate
	rec = doRequest(t, router, "GET", "/real_estate/"+estate.ID, nil)
	decode(t, rec.Body.Bytes(), &estateAfter)
	if estateAfter.OwnerAccountID != buyerAcc.ID {
		t.Fatalf("expected owner %s, got %s", buyerAcc.ID, estateAfter.OwnerAccountID)
	}
}
