// Copyright (c) 2026 ApnaBasera. All rights reserved.

// HTTP delivery layer for the payment flow.

package payment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apnabasera/basera/internal/platform/apperr"
	requestutil "github.com/apnabasera/basera/internal/platform/request"
	"github.com/apnabasera/basera/internal/platform/respond"
	"github.com/apnabasera/basera/internal/platform/validate"
	"github.com/apnabasera/basera/pkg/convert"
)

// # Definitions & Constructors

// Handler implements payment-related HTTP endpoints.
type Handler struct {
	paymentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{paymentService: service}
}

// Routes returns a [chi.Router] configured with payment routes.
//
// # Endpoints
//   - POST /order                : Opens a checkout order.
//   - POST /verify               : Verifies a completed checkout signature.
//   - GET  /details/{paymentId}  : Fetches a payment object.
//   - POST /refund               : Initiates a refund.
//   - GET  /orders               : Lists orders (count/skip).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/order", handler.createOrder)
	router.Post("/verify", handler.verify)
	router.Get("/details/{paymentId}", handler.details)
	router.Post("/refund", handler.refund)
	router.Get("/orders", handler.orders)

	return router
}

// # Request Payloads

type orderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

type verifyRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

type refundRequest struct {
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
}

/*
createOrder opens a checkout order with the gateway.

POST /api/payment/order

Request:
  - Body: orderRequest (Amount in rupees; Currency and Receipt optional)

Response:
  - 200: {success, order, key_id} — key_id lets the client initialize checkout
  - 400: "Valid amount is required"
*/
func (handler *Handler) createOrder(writer http.ResponseWriter, request *http.Request) {
	var input orderRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	order, err := handler.paymentService.CreateOrder(OrderInput{
		Amount:   input.Amount,
		Currency: input.Currency,
		Receipt:  input.Receipt,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		"success": true,
		"order":   order,
		"key_id":  handler.paymentService.KeyID(),
	})
}

/*
verify checks a completed checkout's signature.

POST /api/payment/verify

Request:
  - Body: verifyRequest (razorpay_order_id, razorpay_payment_id, razorpay_signature)

Response:
  - 200: {success, message, payment_id, order_id} when authentic
  - 400: "Missing required payment verification parameters" or
    "Payment verification failed"
*/
func (handler *Handler) verify(writer http.ResponseWriter, request *http.Request) {
	var input verifyRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	authentic, err := handler.paymentService.VerifySignature(VerifyInput{
		OrderID:   input.OrderID,
		PaymentID: input.PaymentID,
		Signature: input.Signature,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if !authentic {
		respond.Error(writer, request, apperr.ValidationError("Payment verification failed"))
		return
	}

	respond.OK(writer, map[string]interface{}{
		"success":    true,
		"message":    "Payment verified successfully",
		"payment_id": input.PaymentID,
		"order_id":   input.OrderID,
	})
}

/*
details fetches a payment object from the gateway.

GET /api/payment/details/{paymentId}

Response:
  - 200: {success, payment}
*/
func (handler *Handler) details(writer http.ResponseWriter, request *http.Request) {
	payment, err := handler.paymentService.Details(requestutil.Param(request, "paymentId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		"success": true,
		"payment": payment,
	})
}

/*
refund initiates a refund for a captured payment.

POST /api/payment/refund

Request:
  - Body: refundRequest (payment_id required; amount in rupees optional)

Response:
  - 200: {success, message, refund}
  - 400: "Payment ID is required"
*/
func (handler *Handler) refund(writer http.ResponseWriter, request *http.Request) {
	var input refundRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	refund, err := handler.paymentService.Refund(RefundInput{
		PaymentID: input.PaymentID,
		Amount:    input.Amount,
		Reason:    input.Reason,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		"success": true,
		"message": "Refund initiated successfully",
		"refund":  refund,
	})
}

/*
orders lists gateway orders.

GET /api/payment/orders?count=10&skip=0

Response:
  - 200: {success, orders}
*/
func (handler *Handler) orders(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	orders, err := handler.paymentService.Orders(
		convert.ToIntD(query.Get("count"), 10),
		convert.ToInt(query.Get("skip")),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}
