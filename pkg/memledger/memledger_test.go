package memledger

import (
	"errors"
	"testing"

	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/contract"
)

func TestInvokeCommitsOnSuccess(t *testing.T) {
	l := New()
	err := l.Invoke(func(ctx contract.Ctx) error {
		return ctx.PutState("k1", []byte("v1"))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := l.Get("k1")
	if !ok || string(v) != "v1" {
		t.Fatalf("expected committed value, got %q ok=%v", v, ok)
	}
}

func TestInvokeDiscardsOnError(t *testing.T) {
	l := New()
	err := l.Invoke(func(ctx contract.Ctx) error {
		if err := ctx.PutState("k1", []byte("v1")); err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := l.Get("k1"); ok {
		t.Fatalf("expected no committed state after failed invocation")
	}
}

func TestReadsSeeOwnWrites(t *testing.T) {
	l := New()
	_ = l.Invoke(func(ctx contract.Ctx) error {
		_ = ctx.PutState("k1", []byte("v1"))
		v, err := ctx.GetState("k1")
		if err != nil || string(v) != "v1" {
			t.Fatalf("expected buffered read, got %q err=%v", v, err)
		}
		return nil
	})
}

func TestDeleteWithinInvocation(t *testing.T) {
	l := New()
	_ = l.Invoke(func(ctx contract.Ctx) error { return ctx.PutState("k1", []byte("v1")) })
	_ = l.Invoke(func(ctx contract.Ctx) error {
		if err := ctx.DelState("k1"); err != nil {
			return err
		}
		v, _ := ctx.GetState("k1")
		if len(v) != 0 {
			t.Fatalf("expected delete to shadow committed value")
		}
		return nil
	})
	if _, ok := l.Get("k1"); ok {
		t.Fatalf("expected key deleted after commit")
	}
}
