// Package contract implements the escrow workflow for real-estate sales:
// accounts holding cash balances, real-estate records with an owner, and
// offers that collect a buyer and a seller signature before an atomic
// transfer of funds and ownership.
//
// The package is platform-agnostic. Every operation runs against the Ctx
// capability surface supplied by the host platform, which buffers all
// writes of one invocation and commits them together or not at all.
package contract

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/pkg/keys"
	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/pkg/payload"
	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/pkg/sigtoken"
)

// Ctx is the per-invocation capability surface supplied by the platform:
// buffered world-state access, the caller's identity material, and the
// invocation's logical timestamp.
type Ctx interface {
	GetState(key string) ([]byte, error)
	PutState(key string, value []byte) error
	DelState(key string) error
	MSPID() (string, error)
	CertFingerprint() (string, error)
	TxTimestamp() (time.Time, error)
}

type Contract struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Contract {
	if log == nil {
		log = zap.NewNop()
	}
	return &Contract{log: log}
}

// Exists reports whether the ledger holds a non-empty value under key.
func (c *Contract) Exists(ctx Ctx, key string) (bool, error) {
	value, err := ctx.GetState(key)
	if err != nil {
		return false, Errorf(CodeStore, "failed to read %s: %v", key, err)
	}
	return len(value) > 0, nil
}

// GetByID returns the raw document stored under key.
func (c *Contract) GetByID(ctx Ctx, key string) (json.RawMessage, error) {
	value, err := ctx.GetState(key)
	if err != nil {
		return nil, Errorf(CodeStore, "failed to read %s: %v", key, err)
	}
	if len(value) == 0 {
		return nil, NotFoundf("asset %s does not exist", key)
	}
	return json.RawMessage(value), nil
}

func (c *Contract) CreateAccount(ctx Ctx, rawPayload string) (*Account, error) {
	now, err := c.txTime(ctx)
	if err != nil {
		return nil, err
	}

	var account Account
	if !payload.Decode(rawPayload, &account) {
		c.log.Warn("account payload is not valid JSON, creating record from zero values")
	}

	account.ID = keys.New(keys.AccountPrefix)
	account.Balance = 0
	account.CreatedAt = now
	account.UpdatedAt = now

	if err := c.put(ctx, account.ID, &account); err != nil {
		c.log.Error("failed to create account", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

func (c *Contract) CreateRealEstate(ctx Ctx, rawPayload string) (*RealEstate, error) {
	now, err := c.txTime(ctx)
	if err != nil {
		return nil, err
	}

	var realEstate RealEstate
	if !payload.Decode(rawPayload, &realEstate) {
		c.log.Warn("real estate payload is not valid JSON, creating record from zero values")
	}

	realEstate.ID = keys.New(keys.RealEstatePrefix)
	realEstate.Offers = []string{}
	realEstate.CreatedAt = now
	realEstate.UpdatedAt = now

	if err := c.put(ctx, realEstate.ID, &realEstate); err != nil {
		c.log.Error("failed to create real estate", zap.Error(err))
		return nil, err
	}
	return &realEstate, nil
}

// CreateOffer validates the offer against the current ledger state and
// persists it with the seller snapshotted from the real estate's current
// owner. Nothing is written on any failure path.
func (c *Contract) CreateOffer(ctx Ctx, rawPayload string) (*Offer, error) {
	now, err := c.txTime(ctx)
	if err != nil {
		return nil, err
	}

	var offer Offer
	if !payload.Decode(rawPayload, &offer) {
		c.log.Warn("offer payload is not valid JSON, creating record from zero values")
	}

	offer.ID = keys.New(keys.OfferPrefix)
	offer.Status = StatusPendingSignatures
	offer.CreatedAt = now
	offer.UpdatedAt = now

	if offer.Amount <= 0 {
		return nil, Validationf("invalid amount for offer")
	}

	buyerExists, err := c.Exists(ctx, offer.BuyerAccountID)
	if err != nil {
		return nil, err
	}
	if !buyerExists {
		return nil, NotFoundf("buyer account %s does not exist", offer.BuyerAccountID)
	}

	var realEstate RealEstate
	if err := c.get(ctx, offer.RealEstateID, &realEstate); err != nil {
		return nil, err
	}
	if realEstate.OwnerAccountID == offer.BuyerAccountID {
		return nil, Conflictf("owner cannot buy its own real estate")
	}

	// The seller is fixed at offer time, not re-derived later.
	offer.SellerAccountID = realEstate.OwnerAccountID

	if err := c.put(ctx, offer.ID, &offer); err != nil {
		c.log.Error("failed to create offer", zap.Error(err))
		return nil, err
	}
	return &offer, nil
}

// DepositToAccount adds amount to the account's balance. Negative amounts
// are accepted without a guard, as the network has always behaved.
func (c *Contract) DepositToAccount(ctx Ctx, accountKey, rawAmount string) (*Account, error) {
	now, err := c.txTime(ctx)
	if err != nil {
		return nil, err
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64)
	if err != nil {
		return nil, Validationf("invalid deposit amount %q", rawAmount)
	}

	var account Account
	if err := c.get(ctx, accountKey, &account); err != nil {
		return nil, err
	}

	account.Balance += Number(amount)
	account.UpdatedAt = now

	if err := c.put(ctx, account.ID, &account); err != nil {
		c.log.Error("failed to complete deposit", zap.Error(err))
		return nil, err
	}
	return &account, nil
}

// AddBuyerSignatureToOffer derives a signature token for the offer's buyer
// from the calling identity and stores it on the offer. Signing again
// overwrites the previous token.
func (c *Contract) AddBuyerSignatureToOffer(ctx Ctx, offerKey string) (*Offer, error) {
	return c.addSignature(ctx, offerKey, func(offer *Offer, token string) {
		offer.BuyerSignature = token
	}, func(offer *Offer) string { return offer.BuyerAccountID })
}

// AddSellerSignatureToOffer is the seller-side counterpart of
// AddBuyerSignatureToOffer.
func (c *Contract) AddSellerSignatureToOffer(ctx Ctx, offerKey string) (*Offer, error) {
	return c.addSignature(ctx, offerKey, func(offer *Offer, token string) {
		offer.SellerSignature = token
	}, func(offer *Offer) string { return offer.SellerAccountID })
}

func (c *Contract) addSignature(ctx Ctx, offerKey string, assign func(*Offer, string), accountOf func(*Offer) string) (*Offer, error) {
	now, err := c.txTime(ctx)
	if err != nil {
		return nil, err
	}

	var offer Offer
	if err := c.get(ctx, offerKey, &offer); err != nil {
		return nil, err
	}

	mspID, err := ctx.MSPID()
	if err != nil {
		return nil, Errorf(CodeStore, "failed to resolve caller msp id: %v", err)
	}
	fingerprint, err := ctx.CertFingerprint()
	if err != nil {
		return nil, Errorf(CodeStore, "failed to resolve caller certificate fingerprint: %v", err)
	}

	assign(&offer, sigtoken.Generate(accountOf(&offer), mspID, fingerprint, now))
	offer.UpdatedAt = now

	if err := c.put(ctx, offer.ID, &offer); err != nil {
		c.log.Error("failed to add signature", zap.Error(err))
		return nil, err
	}
	return &offer, nil
}

// TransferRealEstateOwnership settles a fully signed offer: it credits the
// seller, debits the buyer, completes the offer, and moves ownership of the
// real estate to the buyer. All validation happens before the first write;
// the platform commits the four writes together or not at all.
func (c *Contract) TransferRealEstateOwnership(ctx Ctx, realEstateKey, offerKey string) (*RealEstate, error) {
	now, err := c.txTime(ctx)
	if err != nil {
		return nil, err
	}

	var offer Offer
	if err := c.get(ctx, offerKey, &offer); err != nil {
		return nil, err
	}
	var realEstate RealEstate
	if err := c.get(ctx, realEstateKey, &realEstate); err != nil {
		return nil, err
	}

	if offer.BuyerSignature == "" || offer.SellerSignature == "" {
		return nil, Errorf(CodePreconditionFailed, "both parties need to sign offer before transferring real estate ownership")
	}
	if offer.RealEstateID != realEstateKey {
		return nil, Conflictf("offer does not match specified real estate")
	}

	var buyerAccount Account
	if err := c.get(ctx, offer.BuyerAccountID, &buyerAccount); err != nil {
		return nil, err
	}
	var sellerAccount Account
	if err := c.get(ctx, offer.SellerAccountID, &sellerAccount); err != nil {
		return nil, err
	}

	if buyerAccount.Balance < offer.Amount {
		c.log.Error("insufficient balance",
			zap.Float64("buyer_balance", float64(buyerAccount.Balance)),
			zap.Float64("offer_amount", float64(offer.Amount)),
		)
		return nil, Errorf(CodeInsufficientFunds, "buyer does not have sufficient balance to pay for real estate")
	}

	sellerAccount.Balance += offer.Amount
	buyerAccount.Balance -= offer.Amount
	offer.Status = StatusCompleted
	realEstate.OwnerAccountID = buyerAccount.ID

	sellerAccount.UpdatedAt = now
	buyerAccount.UpdatedAt = now
	offer.UpdatedAt = now
	realEstate.UpdatedAt = now

	if err := c.put(ctx, sellerAccount.ID, &sellerAccount); err != nil {
		return nil, err
	}
	if err := c.put(ctx, buyerAccount.ID, &buyerAccount); err != nil {
		return nil, err
	}
	if err := c.put(ctx, offer.ID, &offer); err != nil {
		return nil, err
	}
	if err := c.put(ctx, realEstate.ID, &realEstate); err != nil {
		return nil, err
	}
	return &realEstate, nil
}

func (c *Contract) get(ctx Ctx, key string, dst any) error {
	raw, err := c.GetByID(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return Errorf(CodeStore, "failed to decode %s: %v", key, err)
	}
	return nil
}

func (c *Contract) put(ctx Ctx, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return Errorf(CodeStore, "failed to encode %s: %v", key, err)
	}
	if err := ctx.PutState(key, value); err != nil {
		return Errorf(CodeStore, "failed to write %s: %v", key, err)
	}
	return nil
}

func (c *Contract) txTime(ctx Ctx) (time.Time, error) {
	now, err := ctx.TxTimestamp()
	if err != nil {
		return time.Time{}, Errorf(CodeStore, "failed to resolve transaction timestamp: %v", err)
	}
	return now.UTC(), nil
}
