// Package fabricclient connects the gateway to a Fabric peer and submits
// contract invocations over the Gateway API.
package fabricclient

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hyperledger/fabric-gateway/pkg/client"
	"github.com/hyperledger/fabric-gateway/pkg/identity"
	"github.com/hyperledger/fabric-protos-go-apiv2/peer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/contract"
	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/services/gateway/internal/config"
)

type Invoker struct {
	conn     *grpc.ClientConn
	gateway  *client.Gateway
	contract *client.Contract
}

func Connect(cfg config.Fabric) (*Invoker, error) {
	tlsPEM, err := os.ReadFile(cfg.TLSCertPath)
	if err != nil {
		return nil, fmt.Errorf("read peer tls certificate: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(tlsPEM) {
		return nil, errors.New("peer tls certificate is not valid PEM")
	}
	conn, err := grpc.NewClient(cfg.PeerEndpoint,
		grpc.WithTransportCredentials(credentials.NewClientTLSFromCert(pool, cfg.GatewayPeer)),
	)
	if err != nil {
		return nil, fmt.Errorf("dial peer %s: %w", cfg.PeerEndpoint, err)
	}

	certPEM, err := os.ReadFile(cfg.CertPath)
	if err != nil {
		return nil, fmt.Errorf("read client certificate: %w", err)
	}
	cert, err := identity.CertificateFromPEM(certPEM)
	if err != nil {
		return nil, fmt.Errorf("parse client certificate: %w", err)
	}
	id, err := identity.NewX509Identity(cfg.MSPID, cert)
	if err != nil {
		return nil, fmt.Errorf("build identity: %w", err)
	}

	keyPEM, err := os.ReadFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("read client key: %w", err)
	}
	key, err := identity.PrivateKeyFromPEM(keyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse client key: %w", err)
	}
	sign, err := identity.NewPrivateKeySign(key)
	if err != nil {
		return nil, fmt.Errorf("build signer: %w", err)
	}

	gateway, err := client.Connect(id,
		client.WithSign(sign),
		client.WithClientConnection(conn),
		client.WithEvaluateTimeout(5*time.Second),
		client.WithEndorseTimeout(15*time.Second),
		client.WithSubmitTimeout(5*time.Second),
		client.WithCommitStatusTimeout(time.Minute),
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect gateway: %w", err)
	}

	return &Invoker{
		conn:     conn,
		gateway:  gateway,
		contract: gateway.GetNetwork(cfg.Channel).GetContract(cfg.Chaincode),
	}, nil
}

func (i *Invoker) Submit(ctx context.Context, name string, args ...string) ([]byte, error) {
	result, err := i.contract.SubmitTransaction(name, args...)
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

func (i *Invoker) Evaluate(ctx context.Context, name string, args ...string) ([]byte, error) {
	result, err := i.contract.EvaluateTransaction(name, args...)
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

func (i *Invoker) Close() error {
	i.gateway.Close()
	return i.conn.Close()
}

// translate surfaces platform write-set collisions as the retryable
// CONCURRENCY_CONFLICT category instead of a business failure.
func translate(err error) error {
	var commitErr *client.CommitError
	if errors.As(err, &commitErr) {
		switch commitErr.Code {
		case peer.TxValidationCode_MVCC_READ_CONFLICT, peer.TxValidationCode_PHANTOM_READ_CONFLICT:
			return contract.Errorf(contract.CodeConcurrencyConflict,
				"transaction %s was invalidated by a conflicting commit, retry the request", commitErr.TransactionID)
		}
	}
	return err
}
