package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"github.com/soundstitch/storefront/app/models"
	"github.com/soundstitch/storefront/app/repositories"
	"github.com/soundstitch/storefront/app/utils/calc"
	"github.com/soundstitch/storefront/app/utils/format"
)

var (
	ErrCartEmpty      = errors.New("checkout: cart is empty")
	ErrDetailsMissing = errors.New("checkout: order details are missing")
)

var checkoutValidate = validator.New()

// SnapClient creates hosted-payment transactions. *snap.Client
// satisfies it; tests use a fake.
type SnapClient interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// CheckoutDetailsInput is the contact form submitted before payment.
type CheckoutDetailsInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address" validate:"required"`
}

// PreviewLine is one priced cart line in an order preview.
type PreviewLine struct {
	ID                 string          `json:"id"`
	Type               models.ItemType `json:"type"`
	Name               string          `json:"name"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	Qty                int             `json:"qty"`
	LineTotal          decimal.Decimal `json:"lineTotal"`
	FormattedLineTotal string          `json:"formattedLineTotal"`
}

// OrderPreview is the non-committing, server-computed quote for the
// current cart contents.
type OrderPreview struct {
	Lines               []PreviewLine   `json:"lines"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	TaxPercent          decimal.Decimal `json:"taxPercent"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	GrandTotal          decimal.Decimal `json:"grandTotal"`
	FormattedSubtotal   string          `json:"formattedSubtotal"`
	FormattedGrandTotal string          `json:"formattedGrandTotal"`
}

type CheckoutService struct {
	carts       *CartService
	orderRepo   repositories.OrderRepository
	detailsRepo repositories.CheckoutDetailsRepository
	snapClient  SnapClient
	baseURL     string
}

func NewCheckoutService(
	carts *CartService,
	orderRepo repositories.OrderRepository,
	detailsRepo repositories.CheckoutDetailsRepository,
	snapClient SnapClient,
	baseURL string,
) *CheckoutService {
	return &CheckoutService{
		carts:       carts,
		orderRepo:   orderRepo,
		detailsRepo: detailsRepo,
		snapClient:  snapClient,
		baseURL:     baseURL,
	}
}

// SaveDetails stores the shopper's contact details for the cart.
func (s *CheckoutService) SaveDetails(ctx context.Context, cartKey string, input CheckoutDetailsInput) error {
	if err := checkoutValidate.Struct(input); err != nil {
		return fmt.Errorf("invalid checkout details: %w", err)
	}
	details := &models.CheckoutDetails{
		CartKey: cartKey,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.detailsRepo.Upsert(ctx, details); err != nil {
		return fmt.Errorf("failed to save checkout details: %w", err)
	}
	return nil
}

// Summary computes the order preview for the cart. It requires a
// non-empty cart and saved details, mirroring the page flow: no details
// saved means back to the details step.
func (s *CheckoutService) Summary(ctx context.Context, cartKey string) (*OrderPreview, error) {
	state := s.carts.StoreFor(ctx, cartKey).Snapshot()
	if len(state.Items) == 0 {
		return nil, ErrCartEmpty
	}

	details, err := s.detailsRepo.GetByCartKey(ctx, cartKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout details: %w", err)
	}
	if details == nil {
		return nil, ErrDetailsMissing
	}

	return buildPreview(state.Items), nil
}

// CreateOrder freezes the cart into an order, creates the Midtrans Snap
// transaction, and returns the order plus the hosted-payment redirect
// URL. The cart itself is untouched; it is cleared only when the
// payment notification settles.
func (s *CheckoutService) CreateOrder(ctx context.Context, cartKey string) (*models.Order, string, error) {
	details, err := s.detailsRepo.GetByCartKey(ctx, cartKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load checkout details: %w", err)
	}
	if details == nil {
		return nil, "", ErrDetailsMissing
	}

	state := s.carts.StoreFor(ctx, cartKey).Snapshot()
	if len(state.Items) == 0 {
		return nil, "", ErrCartEmpty
	}

	preview := buildPreview(state.Items)

	order := &models.Order{
		ID:            uuid.New().String(),
		CartKey:       cartKey,
		OrderCode:     fmt.Sprintf("ORDER-%d-%s", time.Now().Unix(), uuid.New().String()[:8]),
		OrderDate:     time.Now(),
		Subtotal:      preview.Subtotal,
		TaxPercent:    preview.TaxPercent,
		TaxAmount:     preview.TaxAmount,
		GrandTotal:    preview.GrandTotal,
		CustomerName:  details.Name,
		CustomerEmail: details.Email,
		CustomerPhone: details.Phone,

		ShippingAddress: details.Address,
		PaymentStatus:   "Pending",
		Status:          models.OrderStatusPending,
	}

	for i, item := range state.Items {
		payload, err := models.EncodeCartItems([]models.CartItem{item})
		if err != nil {
			return nil, "", fmt.Errorf("failed to serialize order item %s: %w", item.ItemID(), err)
		}
		line := preview.Lines[i]
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			OrderID:   order.ID,
			ItemID:    item.ItemID(),
			ItemType:  string(item.Kind()),
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Qty:       line.Qty,
			LineTotal: line.LineTotal,
			Payload:   string(payload),
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, "", fmt.Errorf("failed to create order: %w", err)
	}

	snapReq := buildSnapRequest(order, details, s.baseURL)
	snapResp, errMidtrans := s.snapClient.CreateTransaction(snapReq)
	if errMidtrans != nil {
		log.Printf("Midtrans CreateTransaction Error: %v", errMidtrans)
		if delErr := s.orderRepo.Delete(ctx, order.ID); delErr != nil {
			log.Printf("CheckoutService: failed to discard order %s after payment error: %v", order.ID, delErr)
		}
		return nil, "", fmt.Errorf("failed to initiate Midtrans transaction: %w", errMidtrans)
	}
	if snapResp == nil || snapResp.RedirectURL == "" || snapResp.Token == "" {
		log.Printf("Midtrans CreateTransaction returned empty or invalid response for OrderCode: %s. Response: %+v", order.OrderCode, snapResp)
		if delErr := s.orderRepo.Delete(ctx, order.ID); delErr != nil {
			log.Printf("CheckoutService: failed to discard order %s after invalid payment response: %v", order.ID, delErr)
		}
		return nil, "", errors.New("midtrans transaction initiated but returned invalid response (missing redirect URL or token)")
	}

	if err := s.orderRepo.SetPaymentRef(ctx, order.ID, snapResp.Token, snapResp.RedirectURL); err != nil {
		return nil, "", fmt.Errorf("failed to store payment reference: %w", err)
	}
	order.MidtransTransactionID = snapResp.Token
	order.MidtransPaymentURL = snapResp.RedirectURL

	log.Printf("SUCCESS: Order %s created, Midtrans Snap initiated. Redirect URL: %s", order.OrderCode, snapResp.RedirectURL)
	return order, snapResp.RedirectURL, nil
}

// Orders returns the purchase history recorded for the cart key, newest
// first.
func (s *CheckoutService) Orders(ctx context.Context, cartKey string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByCartKey(ctx, cartKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

func buildPreview(items []models.CartItem) *OrderPreview {
	preview := &OrderPreview{
		Lines:      make([]PreviewLine, 0, len(items)),
		TaxPercent: calc.GetTaxPercent(),
	}

	for _, item := range items {
		lineTotal := calc.ItemLineTotal(item)
		preview.Lines = append(preview.Lines, PreviewLine{
			ID:                 item.ItemID(),
			Type:               item.Kind(),
			Name:               itemDisplayName(item),
			UnitPrice:          calc.ItemUnitPrice(item),
			Qty:                item.Qty(),
			LineTotal:          lineTotal,
			FormattedLineTotal: format.USD(lineTotal),
		})
	}

	preview.Subtotal = calc.CartSubtotal(items)
	preview.TaxAmount = calc.CalculateTax(preview.Subtotal)
	preview.GrandTotal = calc.CalculateGrandTotal(preview.Subtotal, preview.TaxAmount)
	preview.FormattedSubtotal = format.USD(preview.Subtotal)
	preview.FormattedGrandTotal = format.USD(preview.GrandTotal)
	return preview
}

func itemDisplayName(item models.CartItem) string {
	switch it := item.(type) {
	case *models.ClothesItem:
		garment := it.Garment
		if garment == "" {
			garment = "garment"
		}
		if it.Color != "" {
			return fmt.Sprintf("Custom %s (%s)", garment, it.Color)
		}
		return fmt.Sprintf("Custom %s", garment)
	case *models.SampleItem:
		return it.Name
	case *models.PackItem:
		return it.Name
	default:
		return item.ItemID()
	}
}

// buildSnapRequest maps the order onto Midtrans item details. Midtrans
// wants whole-unit integer prices, so each line is rounded and a final
// adjustment line reconciles the sum with the rounded grand total.
func buildSnapRequest(order *models.Order, details *models.CheckoutDetails, baseURL string) *snap.Request {
	var itemDetails []midtrans.ItemDetails

	for _, line := range order.OrderItems {
		name := line.Name
		if len(name) > 50 {
			name = name[:50]
		}
		itemDetails = append(itemDetails, midtrans.ItemDetails{
			ID:    line.ItemID,
			Name:  name,
			Price: line.UnitPrice.Round(0).IntPart(),
			Qty:   int32(line.Qty),
		})
	}

	itemDetails = append(itemDetails, midtrans.ItemDetails{
		ID:    "TAX",
		Name:  fmt.Sprintf("Tax (%s%%)", order.TaxPercent.String()),
		Price: order.TaxAmount.Round(0).IntPart(),
		Qty:   1,
	})

	itemsTotal := decimal.Zero
	for _, item := range itemDetails {
		itemsTotal = itemsTotal.Add(decimal.NewFromInt(item.Price).Mul(decimal.NewFromInt32(item.Qty)))
	}
	targetGrossAmount := order.GrandTotal.Round(0)
	difference := targetGrossAmount.Sub(itemsTotal)
	if difference.Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
		itemDetails = append(itemDetails, midtrans.ItemDetails{
			ID:    "ADJUSTMENT",
			Name:  "Price rounding adjustment",
			Price: difference.IntPart(),
			Qty:   1,
		})
	}

	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderCode,
			GrossAmt: targetGrossAmount.IntPart(),
		},
		Items: &itemDetails,
		CustomerDetail: &midtrans.CustomerDetails{
			FName: details.Name,
			Email: details.Email,
			Phone: details.Phone,
			BillAddr: &midtrans.CustomerAddress{
				FName:   details.Name,
				Address: details.Address,
				Phone:   details.Phone,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
		Callbacks: &snap.Callbacks{
			Finish: baseURL + "/checkout/finish?order_code=" + order.OrderCode,
		},
	}
}
