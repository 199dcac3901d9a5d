package main

import (
	"log"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/farmnet/farmledger/chaincode/farm"
)

func main() {
	cc, err := contractapi.NewChaincode(&farm.FarmContract{})
	if err != nil {
		log.Panicf("error creating farm chaincode: %v", err)
	}
	if err := cc.Start(); err != nil {
		log.Panicf("error starting farm chaincode: %v", err)
	}
}
