// Copyright (c) 2026 ApnaBasera. All rights reserved.

package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/apnabasera/basera/internal/platform/apperr"
)

// Service implements the payment use cases.
type Service struct {
	gateway   Gateway
	keyID     string
	keySecret string
}

// NewService constructs a new payment [Service].
//
// keyID is exposed to clients so the checkout widget can initialize;
// keySecret never leaves the server and signs the verification HMAC.
func NewService(gateway Gateway, keyID, keySecret string) *Service {
	return &Service{gateway: gateway, keyID: keyID, keySecret: keySecret}
}

// KeyID returns the public Razorpay key for checkout initialization.
func (service *Service) KeyID() string {
	return service.keyID
}

// # Order Flow

// OrderInput holds the data to open a checkout order.
type OrderInput struct {
	Amount   float64 // rupees; converted to paise for the gateway
	Currency string  // defaults to INR
	Receipt  string  // defaults to a timestamped receipt id
}

/*
CreateOrder opens a payment order with the gateway.

Description: Validates the amount, converts rupees to paise, and relays the
order to Razorpay with a creation timestamp note.

Parameters:
  - input: OrderInput

Returns:
  - map[string]interface{}: Raw gateway order object
  - error: ValidationError or gateway failures
*/
func (service *Service) CreateOrder(input OrderInput) (map[string]interface{}, error) {
	if input.Amount <= 0 {
		return nil, apperr.ValidationError("Valid amount is required")
	}

	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}

	receipt := input.Receipt
	if receipt == "" {
		receipt = fmt.Sprintf("receipt_order_%d", time.Now().UnixMilli())
	}

	order, err := service.gateway.CreateOrder(map[string]interface{}{
		"amount":   int(input.Amount * 100), // paise
		"currency": currency,
		"receipt":  receipt,
		"notes": map[string]interface{}{
			"created_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, apperr.InternalWithMessage(err, "Error creating payment order")
	}

	return order, nil
}

// # Verification Flow

// VerifyInput carries the three checkout callback parameters.
type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

/*
VerifySignature checks a completed checkout's signature locally.

Description: Recomputes HMAC-SHA256 over "orderID|paymentID" with the key
secret, hex encodes it, and compares in constant time. No network call.

Parameters:
  - input: VerifyInput

Returns:
  - bool: Whether the signature is authentic
  - error: ValidationError when parameters are missing
*/
func (service *Service) VerifySignature(input VerifyInput) (bool, error) {
	if input.OrderID == "" || input.PaymentID == "" || input.Signature == "" {
		return false, apperr.ValidationError("Missing required payment verification parameters")
	}

	mac := hmac.New(sha256.New, []byte(service.keySecret))
	mac.Write([]byte(input.OrderID + "|" + input.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(input.Signature)), nil
}

// # Refunds & Lookups

// RefundInput holds the data to initiate a refund.
type RefundInput struct {
	PaymentID string
	Amount    float64 // rupees; zero means a full refund
	Reason    string
}

/*
Refund initiates a refund for a captured payment.

Description: When no amount is given the refund covers the full captured
amount. The gateway API treats an explicit zero amount as invalid rather
than "everything", so a full refund first fetches the payment and refunds
its captured amount explicitly.

Parameters:
  - input: RefundInput

Returns:
  - map[string]interface{}: Raw gateway refund object
  - error: ValidationError or gateway failures
*/
func (service *Service) Refund(input RefundInput) (map[string]interface{}, error) {
	if input.PaymentID == "" {
		return nil, apperr.ValidationError("Payment ID is required")
	}

	reason := input.Reason
	if reason == "" {
		reason = "Refund requested by customer"
	}

	paise := int(input.Amount * 100)
	if paise <= 0 {
		payment, err := service.gateway.FetchPayment(input.PaymentID)
		if err != nil {
			return nil, apperr.InternalWithMessage(err, "Error processing refund")
		}
		paise = capturedPaise(payment)
		if paise <= 0 {
			return nil, apperr.InternalWithMessage(
				fmt.Errorf("payment %s carries no refundable amount", input.PaymentID),
				"Error processing refund",
			)
		}
	}

	refund, err := service.gateway.RefundPayment(
		input.PaymentID,
		paise,
		map[string]interface{}{
			"reason":      reason,
			"refund_date": time.Now().UTC().Format(time.RFC3339),
		},
	)
	if err != nil {
		return nil, apperr.InternalWithMessage(err, "Error processing refund")
	}

	return refund, nil
}

// capturedPaise extracts the paise amount from a raw gateway payment object.
// The SDK decodes JSON numbers as float64.
func capturedPaise(payment map[string]interface{}) int {
	switch amount := payment["amount"].(type) {
	case float64:
		return int(amount)
	case int:
		return amount
	}
	return 0
}

/*
Details fetches the raw payment object for a payment ID.

Parameters:
  - paymentID: string

Returns:
  - map[string]interface{}: Raw gateway payment object
  - error: Gateway failures
*/
func (service *Service) Details(paymentID string) (map[string]interface{}, error) {
	payment, err := service.gateway.FetchPayment(paymentID)
	if err != nil {
		return nil, apperr.InternalWithMessage(err, "Error fetching payment details")
	}
	return payment, nil
}

/*
Orders lists gateway orders with count/skip windowing.

Parameters:
  - count: int (defaults to 10)
  - skip: int

Returns:
  - map[string]interface{}: Raw gateway order collection
  - error: Gateway failures
*/
func (service *Service) Orders(count, skip int) (map[string]interface{}, error) {
	if count <= 0 {
		count = 10
	}
	if skip < 0 {
		skip = 0
	}

	orders, err := service.gateway.ListOrders(map[string]interface{}{
		"count": count,
		"skip":  skip,
	})
	if err != nil {
		return nil, apperr.InternalWithMessage(err, "Error fetching orders")
	}

	return orders, nil
}
