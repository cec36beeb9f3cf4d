// Package memledger is an in-memory world state with the platform's commit
// semantics: every invocation runs against a buffered view, and its writes
// apply atomically only if the invocation returns without error. It backs
// the contract test suite and the gateway's local mode.
package memledger

import (
	"sync"
	"time"

	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/contract"
)

type Ledger struct {
	mu    sync.Mutex
	state map[string][]byte

	// Identity material and clock handed to invocations. Overridable so
	// tests can pin deterministic values.
	MSP         string
	Fingerprint string
	Now         func() time.Time
}

func New() *Ledger {
	return &Ledger{
		state:       map[string][]byte{},
		MSP:         "Org1MSP",
		Fingerprint: "memledger-dev-fingerprint",
		Now:         time.Now,
	}
}

// Invoke runs fn against a buffered view of the ledger. If fn returns an
// error the buffer is discarded; otherwise all buffered writes and deletes
// commit together.
func (l *Ledger) Invoke(fn func(ctx contract.Ctx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := &txCtx{
		ledger:  l,
		writes:  map[string][]byte{},
		deletes: map[string]bool{},
		at:      l.Now(),
	}
	if err := fn(tx); err != nil {
		return err
	}
	for key := range tx.deletes {
		delete(l.state, key)
	}
	for key, value := range tx.writes {
		l.state[key] = append([]byte(nil), value...)
	}
	return nil
}

// Query runs fn against a buffered view and always discards the buffer,
// the way a platform evaluates read-only transactions without ordering
// them.
func (l *Ledger) Query(fn func(ctx contract.Ctx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := &txCtx{
		ledger:  l,
		writes:  map[string][]byte{},
		deletes: map[string]bool{},
		at:      l.Now(),
	}
	return fn(tx)
}

// Get reads committed state, bypassing any invocation buffer. Intended for
// assertions in tests.
func (l *Ledger) Get(key string) ([]byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	value, ok := l.state[key]
	return append([]byte(nil), value...), ok
}

// Len reports the number of committed keys.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.state)
}

type txCtx struct {
	ledger  *Ledger
	writes  map[string][]byte
	deletes map[string]bool
	at      time.Time
}

func (t *txCtx) GetState(key string) ([]byte, error) {
	if t.deletes[key] {
		return nil, nil
	}
	if value, ok := t.writes[key]; ok {
		return append([]byte(nil), value...), nil
	}
	value := t.ledger.state[key]
	return append([]byte(nil), value...), nil
}

func (t *txCtx) PutState(key string, value []byte) error {
	delete(t.deletes, key)
	t.writes[key] = append([]byte(nil), value...)
	return nil
}

func (t *txCtx) DelState(key string) error {
	delete(t.writes, key)
	t.deletes[key] = true
	return nil
}

func (t *txCtx) MSPID() (string, error) { return t.ledger.MSP, nil }

func (t *txCtx) CertFingerprint() (string, error) { return t.ledger.Fingerprint, nil }

func (t *txCtx) TxTimestamp() (time.Time, error) { return t.at, nil }
