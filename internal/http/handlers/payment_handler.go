package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"chargebay/internal/payment"
)

// NewPaymentOrderHandler handles POST /api/payment/create-order. The amount
// arrives in rupees and is converted to minor units for the gateway.
func NewPaymentOrderHandler(client *payment.Client) http.HandlerFunc {
	type request struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Amount <= 0 {
			writeError(w, http.StatusBadRequest, "amount must be positive")
			return
		}

		order, err := client.CreateOrder(r.Context(), int64(math.Round(req.Amount*100)), req.Currency)
		if err != nil {
			writeError(w, http.StatusBadGateway, "failed to create payment order")
			return
		}
		writeJSON(w, http.StatusCreated, order)
	}
}

// NewPaymentVerifyHandler handles POST /api/payment/verify.
func NewPaymentVerifyHandler(client *payment.Client) http.HandlerFunc {
	type request struct {
		OrderID   string `json:"order_id"`
		PaymentID string `json:"payment_id"`
		Signature string `json:"signature"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
			writeError(w, http.StatusBadRequest, "order_id, payment_id and signature are required")
			return
		}

		if !client.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
			writeError(w, http.StatusBadRequest, "signature mismatch")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
	}
}
