package configs

import (
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

var (
	midtransSnapClient    snap.Client
	midtransCoreAPIClient coreapi.Client
)

func InitMidtransClient() {
	midtransSnapClient.New(LoadENV.MidtransServerKey, midtrans.Sandbox)
	midtransCoreAPIClient.New(LoadENV.MidtransServerKey, midtrans.Sandbox)
	midtrans.ClientKey = LoadENV.MidtransClientKey
	midtrans.ServerKey = LoadENV.MidtransServerKey
	midtrans.Environment = midtrans.Sandbox
	log.Println("✅ Midtrans clients initialized.")
}

func GetMidtransSnapClient() snap.Client {
	return midtransSnapClient
}

func GetMidtransCoreAPIClient() coreapi.Client {
	return midtransCoreAPIClient
}
