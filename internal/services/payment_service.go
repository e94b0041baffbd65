package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"zarika/internal/apperr"
	"zarika/internal/payment"
	"zarika/internal/repos"
)

type PaymentService struct {
	Gateway payment.Gateway
	Orders  *repos.OrderRepo
	Secret  string // server-held signing secret shared with the gateway
}

func NewPaymentService(gw payment.Gateway, orders *repos.OrderRepo, secret string) *PaymentService {
	return &PaymentService{Gateway: gw, Orders: orders, Secret: secret}
}

// CreateIntent registers a payment intent with the gateway for the given
// amount (major units, converted to minor). Pure proxy; no local state.
func (s *PaymentService) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (payment.GatewayOrder, error) {
	if !amount.IsPositive() {
		return payment.GatewayOrder{}, apperr.Validation("amount must be positive")
	}
	if currency == "" {
		currency = "INR"
	}
	minor := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	receipt := fmt.Sprintf("rcpt_%d", time.Now().UnixNano())

	gw, err := s.Gateway.CreateOrder(ctx, minor, currency, receipt)
	if err != nil {
		return payment.GatewayOrder{}, apperr.ExternalService("payment gateway order creation failed", err)
	}
	return gw, nil
}

type VerifyInput struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	PaymentID      string `json:"paymentId"`
	Signature      string `json:"signature"`
	OrderID        string `json:"orderId"`
}

// Sign computes the gateway's confirmation signature:
// HMAC-SHA256(secret, gatewayOrderID + "|" + paymentID), hex encoded.
func Sign(secret, gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the client-supplied signature against the recomputed one.
// The signature is a capability token, so the comparison must be constant
// time (hmac.Equal). A match marks the order PAID and advances
// PENDING -> PROCESSING; a mismatch mutates nothing, leaving the order PENDING
// so the customer can retry.
func (s *PaymentService) Verify(in VerifyInput) error {
	if in.GatewayOrderID == "" || in.PaymentID == "" || in.Signature == "" || in.OrderID == "" {
		return apperr.Validation("gatewayOrderId, paymentId, signature and orderId are required")
	}

	expected := Sign(s.Secret, in.GatewayOrderID, in.PaymentID)
	if !hmac.Equal([]byte(expected), []byte(in.Signature)) {
		return apperr.SignatureMismatch()
	}

	if _, err := s.Orders.Get(in.OrderID); errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("order")
	} else if err != nil {
		return err
	}

	return s.Orders.MarkPaid(in.OrderID, in.GatewayOrderID, in.PaymentID)
}
