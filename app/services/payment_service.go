package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/soundstitch/storefront/app/models"
	"github.com/soundstitch/storefront/app/repositories"
)

var ErrOrderNotFound = errors.New("payment: order not found")

// CoreAPIClient verifies transaction status with Midtrans. Webhook
// payloads are never trusted on their own; the status is always
// re-checked against the API.
type CoreAPIClient interface {
	CheckTransaction(orderID string) (*coreapi.TransactionStatusResponse, *midtrans.Error)
}

// NotificationPayload is the Midtrans HTTP notification body.
type NotificationPayload struct {
	TransactionStatus string `json:"transaction_status"`
	OrderID           string `json:"order_id"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	Currency          string `json:"currency"`
}

type PaymentService struct {
	carts       *CartService
	orderRepo   repositories.OrderRepository
	detailsRepo repositories.CheckoutDetailsRepository
	coreClient  CoreAPIClient
}

func NewPaymentService(
	carts *CartService,
	orderRepo repositories.OrderRepository,
	detailsRepo repositories.CheckoutDetailsRepository,
	coreClient CoreAPIClient,
) *PaymentService {
	return &PaymentService{
		carts:       carts,
		orderRepo:   orderRepo,
		detailsRepo: detailsRepo,
		coreClient:  coreClient,
	}
}

// ProcessNotification verifies and applies a payment status change. On
// settlement the order's items are appended to the purchase history and
// the cart is cleared; other statuses only move the order status.
func (s *PaymentService) ProcessNotification(ctx context.Context, payload NotificationPayload) error {
	log.Printf("PaymentService: notification received for OrderCode: %s, Status: %s, FraudStatus: %s",
		payload.OrderID, payload.TransactionStatus, payload.FraudStatus)

	status, midtransErr := s.coreClient.CheckTransaction(payload.OrderID)
	if midtransErr != nil {
		return fmt.Errorf("failed to verify transaction with Midtrans: %w", midtransErr.RawError)
	}
	if status == nil {
		return errors.New("invalid transaction status from Midtrans API (nil response)")
	}

	order, err := s.orderRepo.GetByCode(ctx, payload.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", payload.OrderID, err)
	}
	if order == nil {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, payload.OrderID)
	}

	switch status.TransactionStatus {
	case "capture", "settlement":
		if status.TransactionStatus == "capture" && status.FraudStatus != "accept" {
			log.Printf("PaymentService: capture held for review, order %s left pending", order.OrderCode)
			return nil
		}
		if order.Status == models.OrderStatusPaid {
			// Midtrans retries notifications; settling twice is a no-op.
			return nil
		}
		if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, "Paid", models.OrderStatusPaid); err != nil {
			return fmt.Errorf("failed to mark order %s paid: %w", order.OrderCode, err)
		}
		s.settle(ctx, order)
		return nil

	case "deny", "cancel":
		return s.orderRepo.UpdatePaymentStatus(ctx, order.ID, "Cancelled", models.OrderStatusCancelled)

	case "expire":
		return s.orderRepo.UpdatePaymentStatus(ctx, order.ID, "Expired", models.OrderStatusExpired)

	case "pending":
		return nil

	default:
		log.Printf("PaymentService: unhandled transaction status %q for order %s", status.TransactionStatus, order.OrderCode)
		return nil
	}
}

// settle records the purchase in the cart's history and empties the
// cart. Purchased items are rebuilt from the serialized order lines.
func (s *PaymentService) settle(ctx context.Context, order *models.Order) {
	var purchased []models.CartItem
	for _, line := range order.OrderItems {
		items, err := models.DecodeCartItems([]byte(line.Payload))
		if err != nil {
			log.Printf("PaymentService: skipping unreadable order line %s on order %s: %v", line.ID, order.OrderCode, err)
			continue
		}
		purchased = append(purchased, items...)
	}

	store := s.carts.StoreFor(ctx, order.CartKey)
	store.RecordPurchase(purchased)
	s.carts.Reset(ctx, order.CartKey)

	if err := s.detailsRepo.Delete(ctx, order.CartKey); err != nil {
		log.Printf("PaymentService: failed to drop checkout details for cart %s: %v", order.CartKey, err)
	}
	log.Printf("PaymentService: order %s settled, cart %s cleared", order.OrderCode, order.CartKey)
}
