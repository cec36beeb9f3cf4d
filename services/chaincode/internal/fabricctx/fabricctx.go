// Package fabricctx adapts the Fabric chaincode stub and client identity to
// the capability surface the core contract consumes.
package fabricctx

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
)

type Ctx struct {
	stub shim.ChaincodeStubInterface
}

func New(stub shim.ChaincodeStubInterface) *Ctx {
	return &Ctx{stub: stub}
}

func (c *Ctx) GetState(key string) ([]byte, error) {
	return c.stub.GetState(key)
}

func (c *Ctx) PutState(key string, value []byte) error {
	return c.stub.PutState(key, value)
}

func (c *Ctx) DelState(key string) error {
	return c.stub.DelState(key)
}

func (c *Ctx) MSPID() (string, error) {
	return cid.GetMSPID(c.stub)
}

// CertFingerprint is the hex SHA-256 of the caller's DER-encoded
// enrollment certificate.
func (c *Ctx) CertFingerprint() (string, error) {
	cert, err := cid.GetX509Certificate(c.stub)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(cert.Raw)
	return hex.EncodeToString(sum[:]), nil
}

func (c *Ctx) TxTimestamp() (time.Time, error) {
	ts, err := c.stub.GetTxTimestamp()
	if err != nil {
		return time.Time{}, err
	}
	return ts.AsTime(), nil
}
