package contract

import "encoding/json"

// The invocation surface is a static table mapping operation names to
// handlers; the platform adapter and the in-process gateway mode both route
// through it.
type operation struct {
	arity   int
	handler func(c *Contract, ctx Ctx, args []string) (any, error)
}

var operations = map[string]operation{
	"doesKeyExists": {1, func(c *Contract, ctx Ctx, args []string) (any, error) {
		return c.Exists(ctx, args[0])
	}},
	"getAssetById": {1, func(c *Contract, ctx Ctx, args []string) (any, error) {
		return c.GetByID(ctx, args[0])
	}},
	"createAccount": {1, func(c *Contract, ctx Ctx, args []string) (any, error) {
		return c.CreateAccount(ctx, args[0])
	}},
	"createRealEstate": {1, func(c *Contract, ctx Ctx, args []string) (any, error) {
		return c.CreateRealEstate(ctx, args[0])
	}},
	"createOffer": {1, func(c *Contract, ctx Ctx, args []string) (any, error) {
		return c.CreateOffer(ctx, args[0])
	}},
	"depositToAccount": {2, func(c *Contract, ctx Ctx, args []string) (any, error) {
		return c.DepositToAccount(ctx, args[0], args[1])
	}},
	"addBuyerSignatureToOffer": {1, func(c *Contract, ctx Ctx, args []string) (any, error) {
		return c.AddBuyerSignatureToOffer(ctx, args[0])
	}},
	"addSellerSignatureToOffer": {1, func(c *Contract, ctx Ctx, args []string) (any, error) {
		return c.AddSellerSignatureToOffer(ctx, args[0])
	}},
	"transferRealEstateOwnership": {2, func(c *Contract, ctx Ctx, args []string) (any, error) {
		return c.TransferRealEstateOwnership(ctx, args[0], args[1])
	}},
}

// Invoke routes a named invocation to its handler and returns the result
// serialized as JSON.
func (c *Contract) Invoke(ctx Ctx, name string, args ...string) ([]byte, error) {
	op, ok := operations[name]
	if !ok {
		return nil, Validationf("unknown operation %q", name)
	}
	if len(args) != op.arity {
		return nil, Validationf("operation %s expects %d argument(s), got %d", name, op.arity, len(args))
	}
	result, err := op.handler(c, ctx, args)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}
