package utils

import (
	"errors"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"academy/config"
)

var snapClient snap.Client

// InitMidtrans configures the payment gateway client. Called once at boot;
// a missing server key leaves the gateway disabled.
func InitMidtrans() {
	if config.AppConfig.MidtransServerKey == "" {
		return
	}
	if config.AppConfig.MidtransProduction {
		snapClient.New(config.AppConfig.MidtransServerKey, midtrans.Production)
	} else {
		snapClient.New(config.AppConfig.MidtransServerKey, midtrans.Sandbox)
	}
}

// CreateSnapToken creates a gateway transaction for a course fee and returns
// the snap token and redirect URL.
func CreateSnapToken(orderID string, amount int64, customerName, customerEmail, itemName string) (string, string, error) {
	if config.AppConfig.MidtransServerKey == "" {
		return "", "", errors.New("payment gateway is not configured")
	}
	if amount <= 0 {
		return "", "", errors.New("invalid payment amount")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customerName,
			Email: customerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       orderID,
				Price:    amount,
				Qty:      1,
				Name:     itemName,
				Category: "COURSE_FEE",
			},
		},
	}

	resp, err := snapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}
