package main

import (
	"fmt"
	"os"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"go.uber.org/zap"

	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/contract"
	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/services/chaincode/internal/fabricctx"
)

// realEstateChaincode routes every Fabric invocation through the contract's
// static dispatch table.
type realEstateChaincode struct {
	core *contract.Contract
	log  *zap.Logger
}

func (cc *realEstateChaincode) Init(stub shim.ChaincodeStubInterface) pb.Response {
	return shim.Success(nil)
}

func (cc *realEstateChaincode) Invoke(stub shim.ChaincodeStubInterface) pb.Response {
	name, args := stub.GetFunctionAndParameters()
	result, err := cc.core.Invoke(fabricctx.New(stub), name, args...)
	if err != nil {
		cc.log.Error("invocation failed",
			zap.String("operation", name),
			zap.String("tx_id", stub.GetTxID()),
			zap.Error(err),
		)
		return shim.Error(err.Error())
	}
	return shim.Success(result)
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cc := &realEstateChaincode{core: contract.New(logger), log: logger}

	// External chaincode service when an address is configured, classic
	// peer-launched mode otherwise.
	if address := os.Getenv("CHAINCODE_SERVER_ADDRESS"); address != "" {
		server := &shim.ChaincodeServer{
			CCID:     os.Getenv("CHAINCODE_ID"),
			Address:  address,
			CC:       cc,
			TLSProps: shim.TLSProperties{Disabled: true},
		}
		logger.Info("starting chaincode server", zap.String("address", address))
		if err := server.Start(); err != nil {
			logger.Fatal("chaincode server stopped", zap.Error(err))
		}
		return
	}
	if err := shim.Start(cc); err != nil {
		logger.Fatal("chaincode stopped", zap.Error(err))
	}
}
