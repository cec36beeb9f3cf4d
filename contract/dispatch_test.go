package contract_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/contract"
)

func TestInvokeUnknownOperation(t *testing.T) {
	c := contract.New(nil)
	l := newLedger()

	err := l.Invoke(func(ctx contract.Ctx) error {
		_, err := c.Invoke(ctx, "mintGold", "x")
		return err
	})
	require.Error(t, err)
	assert.Equal(t, contract.CodeValidation, contract.CodeOf(err))
}

func TestInvokeArityMismatch(t *testing.T) {
	c := contract.New(nil)
	l := newLedger()

	err := l.Invoke(func(ctx contract.Ctx) error {
		_, err := c.Invoke(ctx, "depositToAccount", "acc_1")
		return err
	})
	require.Error(t, err)
	assert.Equal(t, contract.CodeValidation, contract.CodeOf(err))
}

func TestInvokeRoutesToHandlers(t *testing.T) {
	c := contract.New(nil)
	l := newLedger()

	var created contract.Account
	require.NoError(t, l.Invoke(func(ctx contract.Ctx) error {
		out, err := c.Invoke(ctx, "createAccount", `{"ownerName":"alice"}`)
		if err != nil {
			return err
		}
		return json.Unmarshal(out, &created)
	}))
	assert.Equal(t, "alice", created.OwnerName)

	require.NoError(t, l.Invoke(func(ctx contract.Ctx) error {
		out, err := c.Invoke(ctx, "doesKeyExists", created.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, "true", string(out))
		return nil
	}))

	require.NoError(t, l.Invoke(func(ctx contract.Ctx) error {
		out, err := c.Invoke(ctx, "getAssetById", created.ID)
		if err != nil {
			return err
		}
		var fetched contract.Account
		if err := json.Unmarshal(out, &fetched); err != nil {
			return err
		}
		assert.Equal(t, created.ID, fetched.ID)
		return nil
	}))
}
