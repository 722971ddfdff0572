// Copyright (c) 2026 ApnaBasera. All rights reserved.

/*
Package payment implements the Razorpay payment flow for ApnaBasera.

It covers order creation, local signature verification of completed
checkouts, refunds, and the admin order/payment lookups.

# Architecture

The Razorpay SDK is wrapped behind the small [Gateway] interface so the
service and its tests never touch the network. Signature verification is a
pure local computation and lives in the service, not the gateway.
*/
package payment

import (
	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway is the subset of Razorpay operations the platform uses.
//
// The SDK is callback-free and context-free; amounts are in paise.
type Gateway interface {
	// CreateOrder creates a payment order and returns the raw order object.
	CreateOrder(data map[string]interface{}) (map[string]interface{}, error)

	// FetchPayment returns the raw payment object for a payment ID.
	FetchPayment(paymentID string) (map[string]interface{}, error)

	// RefundPayment initiates a refund for a payment. amount is in paise and
	// must be positive; the SDK always sends the amount field, so callers
	// resolve full refunds to the captured amount first.
	RefundPayment(paymentID string, amount int, notes map[string]interface{}) (map[string]interface{}, error)

	// ListOrders returns the raw order collection for the given options.
	ListOrders(options map[string]interface{}) (map[string]interface{}, error)
}

// RazorpayGateway adapts the official SDK client to [Gateway].
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway creates a gateway around a keyed SDK client.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder implements [Gateway].
func (gateway *RazorpayGateway) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return gateway.client.Order.Create(data, nil)
}

// FetchPayment implements [Gateway].
func (gateway *RazorpayGateway) FetchPayment(paymentID string) (map[string]interface{}, error) {
	return gateway.client.Payment.Fetch(paymentID, nil, nil)
}

// RefundPayment implements [Gateway].
func (gateway *RazorpayGateway) RefundPayment(paymentID string, amount int, notes map[string]interface{}) (map[string]interface{}, error) {
	data := map[string]interface{}{}
	if len(notes) > 0 {
		data["notes"] = notes
	}
	return gateway.client.Payment.Refund(paymentID, amount, data, nil)
}

// ListOrders implements [Gateway].
func (gateway *RazorpayGateway) ListOrders(options map[string]interface{}) (map[string]interface{}, error) {
	return gateway.client.Order.All(options, nil)
}
