// Package localclient runs the contract in-process against an in-memory
// ledger. It gives the gateway a no-peer development mode with the same
// invocation semantics as the real network.
package localclient

import (
	"context"

	"go.uber.org/zap"

	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/contract"
	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/pkg/memledger"
)

type Invoker struct {
	ledger *memledger.Ledger
	core   *contract.Contract
}

func New(log *zap.Logger) *Invoker {
	return &Invoker{
		ledger: memledger.New(),
		core:   contract.New(log),
	}
}

func (i *Invoker) Submit(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out []byte
	err := i.ledger.Invoke(func(c contract.Ctx) error {
		result, err := i.core.Invoke(c, name, args...)
		if err != nil {
			return err
		}
		out = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (i *Invoker) Evaluate(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out []byte
	err := i.ledger.Query(func(c contract.Ctx) error {
		result, err := i.core.Invoke(c, name, args...)
		if err != nil {
			return err
		}
		out = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
